package engine

import (
	"fmt"

	"rotterDB/internal/sql"
)

func (e *DBEngine) executeDrop(stmt *sql.DropTableStmt) (Result, error) {
	e.logger.Debug("drop table", "table", stmt.TableName)

	if err := e.store.DropTable(stmt.TableName); err != nil {
		return Result{}, err
	}
	return success(fmt.Sprintf("table '%s' dropped", stmt.TableName), nil), nil
}
