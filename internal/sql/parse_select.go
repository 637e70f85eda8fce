package sql

import (
	"fmt"
	"regexp"
	"strings"
)

var selectRe = regexp.MustCompile(`(?is)SELECT\s+(.*?)\s+FROM\s+([\p{L}\p{N}_]+)`)

// parseSelect parses:
//
//	SELECT * FROM users
//	SELECT name, age FROM users
func parseSelect(query string) (Statement, error) {
	m := selectRe.FindStringSubmatch(query)
	if m == nil {
		return nil, fmt.Errorf("%w: invalid SELECT", ErrSyntax)
	}

	stmt := &SelectStmt{TableName: m[2]}

	colsPart := strings.TrimSpace(m[1])
	if colsPart == "*" {
		return stmt, nil
	}

	for _, c := range strings.Split(colsPart, ",") {
		stmt.Columns = append(stmt.Columns, strings.TrimSpace(c))
	}
	return stmt, nil
}
