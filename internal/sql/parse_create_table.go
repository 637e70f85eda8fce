package sql

import (
	"fmt"
	"regexp"
	"strings"
)

var createTableRe = regexp.MustCompile(`(?is)CREATE\s+TABLE\s+([\p{L}\p{N}_]+)\s*\((.*)\)`)

// parseCreateTable parses:
//
//	CREATE TABLE name (col TYPE, col TYPE, ...)
//
// Tokens after the type in a column clause are ignored. Type names are not
// validated here; unknown names become TypeUnknown and are rejected by the
// storage layer.
func parseCreateTable(query string) (Statement, error) {
	m := createTableRe.FindStringSubmatch(query)
	if m == nil {
		return nil, fmt.Errorf("%w: invalid CREATE TABLE", ErrSyntax)
	}

	tableName := m[1]
	colDefs := strings.Split(m[2], ",")

	columns := make([]Column, 0, len(colDefs))
	for _, def := range colDefs {
		def = strings.TrimSpace(def)

		parts := strings.Fields(def)
		if len(parts) < 2 {
			return nil, fmt.Errorf("%w: invalid column definition %q", ErrSyntax, def)
		}

		columns = append(columns, Column{
			Name: parts[0],
			Type: ParseDataType(parts[1]),
		})
	}

	return &CreateTableStmt{
		TableName: tableName,
		Columns:   columns,
	}, nil
}
