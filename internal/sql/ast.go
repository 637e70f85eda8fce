package sql

// Statement is the common interface for all SQL statements.
type Statement interface {
	stmtNode()
}

// CreateTableStmt represents a parsed CREATE TABLE statement.
type CreateTableStmt struct {
	TableName string
	Columns   []Column
}

// DropTableStmt represents DROP TABLE name.
type DropTableStmt struct {
	TableName string
}

// InsertStmt represents INSERT INTO name VALUES (...).
// Values are positional; they are bound to the table's non-SERIAL columns
// at execution time, once the schema is known.
type InsertStmt struct {
	TableName string
	Values    []Value
}

// SelectStmt represents SELECT cols FROM name.
// A nil Columns slice means SELECT *.
type SelectStmt struct {
	TableName string
	Columns   []string
}

// DescribeStmt represents DESCRIBE name.
type DescribeStmt struct {
	TableName string
}

func (*CreateTableStmt) stmtNode() {}
func (*DropTableStmt) stmtNode()   {}
func (*InsertStmt) stmtNode()      {}
func (*SelectStmt) stmtNode()      {}
func (*DescribeStmt) stmtNode()    {}
