package engine

import (
	"fmt"

	"rotterDB/internal/sql"
)

// executeSelect reads every row, then projects the requested columns.
func (e *DBEngine) executeSelect(stmt *sql.SelectStmt) (Result, error) {
	e.logger.Debug("select", "table", stmt.TableName, "columns", stmt.Columns)

	rows, err := e.store.Scan(stmt.TableName)
	if err != nil {
		return Result{}, err
	}

	out := make([]sql.Row, 0, len(rows))
	for _, r := range rows {
		if stmt.Columns != nil {
			r = r.Project(stmt.Columns)
		}
		out = append(out, r)
	}

	return success(fmt.Sprintf("%d row(s)", len(out)), out), nil
}
