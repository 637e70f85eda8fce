package engine

import (
	"fmt"

	"rotterDB/internal/sql"
)

// executeInsert binds the positional VALUES to the table's non-SERIAL
// columns, in schema order. SERIAL columns are filled by the store.
func (e *DBEngine) executeInsert(stmt *sql.InsertStmt) (Result, error) {
	e.logger.Debug("insert", "table", stmt.TableName, "values", len(stmt.Values))

	cols, err := e.store.TableSchema(stmt.TableName)
	if err != nil {
		return Result{}, err
	}

	targets := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.Type != sql.TypeSerial {
			targets = append(targets, c.Name)
		}
	}

	if len(stmt.Values) != len(targets) {
		return Result{}, fmt.Errorf("%w: table %q expects %d values, got %d",
			sql.ErrValueCountMismatch, stmt.TableName, len(targets), len(stmt.Values))
	}

	values := make(map[string]sql.Value, len(targets))
	for i, name := range targets {
		values[name] = stmt.Values[i]
	}

	id, err := e.store.InsertRow(stmt.TableName, values)
	if err != nil {
		return Result{}, err
	}
	return success(fmt.Sprintf("row inserted, _id = %s", id), idData(id)), nil
}
