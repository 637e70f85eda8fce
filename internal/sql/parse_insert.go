package sql

import (
	"fmt"
	"regexp"
)

var insertRe = regexp.MustCompile(`(?is)INSERT\s+INTO\s+([\p{L}\p{N}_]+)\s+VALUES\s*\((.*)\)`)

// parseInsert parses an INSERT INTO ... VALUES (...) statement.
// Example supported syntax:
//
//	INSERT INTO users VALUES ('Alice, Jr.', 30, true)
func parseInsert(query string) (Statement, error) {
	m := insertRe.FindStringSubmatch(query)
	if m == nil {
		return nil, fmt.Errorf("%w: invalid INSERT", ErrSyntax)
	}

	rawVals := splitValues(m[2])

	vals := make([]Value, 0, len(rawVals))
	for _, rv := range rawVals {
		vals = append(vals, parseLiteral(rv))
	}

	return &InsertStmt{
		TableName: m[1],
		Values:    vals,
	}, nil
}
