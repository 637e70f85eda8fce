package sql

import (
	"fmt"
	"strings"
)

// Verbs are the statement keywords recognised by Parse, in the order they
// are listed in help output.
var Verbs = []string{"CREATE", "DROP", "INSERT", "SELECT", "DESCRIBE"}

// Clean trims surrounding whitespace and strips one trailing ';'.
func Clean(query string) string {
	q := strings.TrimSpace(query)
	if strings.HasSuffix(q, ";") {
		q = q[:len(q)-1]
	}
	return q
}

// Verb returns the upper-cased first whitespace-separated token of query,
// or "" if query is blank.
func Verb(query string) string {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return ""
	}
	return strings.ToUpper(tokens[0])
}

// Parse parses a single SQL statement string into an AST Statement.
// Supported: CREATE TABLE, DROP TABLE, INSERT INTO, SELECT, DESCRIBE.
func Parse(query string) (Statement, error) {
	q := Clean(query)
	if q == "" {
		return nil, ErrEmptyStatement
	}

	switch verb := Verb(q); verb {
	case "CREATE":
		return parseCreateTable(q)
	case "DROP":
		return parseDropTable(q)
	case "INSERT":
		return parseInsert(q)
	case "SELECT":
		return parseSelect(q)
	case "DESCRIBE":
		return parseDescribe(q)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
	}
}
