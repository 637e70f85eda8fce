package engine

import (
	"fmt"

	"rotterDB/internal/sql"
)

func (e *DBEngine) executeCreate(stmt *sql.CreateTableStmt) (Result, error) {
	e.logger.Debug("create table", "table", stmt.TableName, "columns", len(stmt.Columns))

	if err := e.store.CreateTable(stmt.TableName, stmt.Columns); err != nil {
		return Result{}, err
	}
	return success(fmt.Sprintf("table '%s' created", stmt.TableName), nil), nil
}
