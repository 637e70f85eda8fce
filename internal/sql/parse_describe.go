package sql

import (
	"fmt"
	"strings"
)

// parseDescribe takes the second whitespace token as the table name.
func parseDescribe(query string) (Statement, error) {
	tokens := strings.Fields(query)
	if len(tokens) < 2 {
		return nil, fmt.Errorf("%w: DESCRIBE: missing table name", ErrSyntax)
	}
	return &DescribeStmt{TableName: tokens[1]}, nil
}
