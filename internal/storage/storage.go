package storage

import (
	"errors"

	"rotterDB/internal/sql"
)

var (
	ErrNotFound        = errors.New("table not found")
	ErrAlreadyExists   = errors.New("table already exists")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrCorrupt         = errors.New("corrupt table file")
)

// IDColumn is the implicit SERIAL column every table carries.
const IDColumn = "_id"

// Engine is a storage engine holding one table per unit of storage.
//
// Implementations are not safe for concurrent use: every call is a full
// read or read-modify-write of the table, with no locking.
type Engine interface {
	// CreateTable creates an empty table. A leading (_id, SERIAL) column is
	// added when cols has no column named _id.
	CreateTable(name string, cols []sql.Column) error

	// DropTable removes the table and all its rows.
	DropTable(name string) error

	// TableSchema returns the columns in stored order.
	TableSchema(name string) ([]sql.Column, error)

	// InsertRow appends one row and returns its _id. Columns missing from
	// values are NULL, except SERIAL columns which get a generated value.
	InsertRow(name string, values map[string]sql.Value) (sql.Value, error)

	// Scan returns every row in insertion order.
	Scan(name string) ([]sql.Row, error)

	// ListTables returns the names of all tables, in no particular order.
	ListTables() ([]string, error)
}
