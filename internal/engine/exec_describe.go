package engine

import (
	"fmt"

	"rotterDB/internal/sql"
)

func (e *DBEngine) executeDescribe(stmt *sql.DescribeStmt) (Result, error) {
	e.logger.Debug("describe", "table", stmt.TableName)

	cols, err := e.store.TableSchema(stmt.TableName)
	if err != nil {
		return Result{}, err
	}

	info := make([]ColumnInfo, len(cols))
	for i, c := range cols {
		info[i] = ColumnInfo{Column: c.Name, Type: c.Type.String()}
	}
	return success(fmt.Sprintf("structure of '%s'", stmt.TableName), info), nil
}
