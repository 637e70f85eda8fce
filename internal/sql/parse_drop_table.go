package sql

import (
	"fmt"
	"regexp"
)

var dropTableRe = regexp.MustCompile(`(?is)DROP\s+TABLE\s+([\p{L}\p{N}_]+)`)

// parseDropTable parses:
//
//	DROP TABLE name
func parseDropTable(query string) (Statement, error) {
	m := dropTableRe.FindStringSubmatch(query)
	if m == nil {
		return nil, fmt.Errorf("%w: invalid DROP TABLE", ErrSyntax)
	}
	return &DropTableStmt{TableName: m[1]}, nil
}
