package engine

import (
	"fmt"

	"rotterDB/internal/sql"
)

// Execute parses and runs a single command. It never returns an error or
// panics: every failure, including a panic below it, is reported as an
// error Result.
func (e *DBEngine) Execute(query string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("statement panicked", "panic", r)
			res = failure(fmt.Errorf("internal error: %v", r))
		}
	}()

	stmt, err := sql.Parse(query)
	if err != nil {
		e.logger.Info("statement rejected", "error", err)
		return failure(err)
	}

	res, err = e.execute(stmt)
	if err != nil {
		e.logger.Info("statement failed", "error", err)
		return failure(err)
	}
	return res
}

func (e *DBEngine) execute(stmt sql.Statement) (Result, error) {
	switch s := stmt.(type) {
	case *sql.CreateTableStmt:
		return e.executeCreate(s)
	case *sql.DropTableStmt:
		return e.executeDrop(s)
	case *sql.InsertStmt:
		return e.executeInsert(s)
	case *sql.SelectStmt:
		return e.executeSelect(s)
	case *sql.DescribeStmt:
		return e.executeDescribe(s)
	default:
		return Result{}, fmt.Errorf("unsupported statement type %T", stmt)
	}
}
