package sql

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreateTable_Basic(t *testing.T) {
	stmt, err := Parse("CREATE TABLE users (id INT, name TEXT, active BOOL);")
	require.NoError(t, err)

	ct, ok := stmt.(*CreateTableStmt)
	require.True(t, ok, "expected *CreateTableStmt, got %T", stmt)

	assert.Equal(t, "users", ct.TableName)
	assert.Equal(t, []Column{
		{Name: "id", Type: TypeInt},
		{Name: "name", Type: TypeText},
		{Name: "active", Type: TypeBool},
	}, ct.Columns)
}

func TestParseCreateTable_CaseAndSpaces(t *testing.T) {
	stmt, err := Parse("  create   table   Accounts  (  balance   float ,  owner  text NOT NULL );  ")
	require.NoError(t, err)

	ct := stmt.(*CreateTableStmt)
	assert.Equal(t, "Accounts", ct.TableName)
	assert.Equal(t, []Column{
		{Name: "balance", Type: TypeFloat},
		{Name: "owner", Type: TypeText},
	}, ct.Columns)
}

func TestParseCreateTable_Multiline(t *testing.T) {
	stmt, err := Parse("CREATE TABLE t (\n  a serial,\n  b Int\n)")
	require.NoError(t, err)

	ct := stmt.(*CreateTableStmt)
	assert.Equal(t, []Column{
		{Name: "a", Type: TypeSerial},
		{Name: "b", Type: TypeInt},
	}, ct.Columns)
}

func TestParseCreateTable_UnknownTypeIsKept(t *testing.T) {
	stmt, err := Parse("CREATE TABLE t (x BLOB)")
	require.NoError(t, err)
	assert.Equal(t, TypeUnknown, stmt.(*CreateTableStmt).Columns[0].Type)
}

func TestParseCreateTable_Errors(t *testing.T) {
	for _, q := range []string{
		"CREATE TABLE",
		"CREATE TABLE t",
		"CREATE TABLE t ()",
		"CREATE TABLE t (a INT, b)",
		"CREATE INDEX idx ON t (a)",
	} {
		_, err := Parse(q)
		assert.ErrorIs(t, err, ErrSyntax, "query %q", q)
	}
}

func TestParseDropTable(t *testing.T) {
	stmt, err := Parse("drop table users;")
	require.NoError(t, err)
	assert.Equal(t, &DropTableStmt{TableName: "users"}, stmt)

	stmt, err = Parse("DROP TABLE café")
	require.NoError(t, err)
	assert.Equal(t, &DropTableStmt{TableName: "café"}, stmt)

	_, err = Parse("DROP users")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParseInsert_Literals(t *testing.T) {
	stmt, err := Parse(`INSERT INTO users VALUES ('Alice, Jr.', 30, 2.5, true, NULL, "it's", abc, '42', -7, FALSE, null, 1.2.3, '')`)
	require.NoError(t, err)

	ins, ok := stmt.(*InsertStmt)
	require.True(t, ok, "expected *InsertStmt, got %T", stmt)

	assert.Equal(t, "users", ins.TableName)
	assert.Equal(t, []Value{
		Text("Alice, Jr."),
		Int(30),
		Float(2.5),
		Bool(true),
		Null(),
		Text("it's"),
		Text("abc"),
		Text("42"),
		Int(-7),
		Bool(false),
		Null(),
		Text("1.2.3"),
		Text(""),
	}, ins.Values)
}

func TestParseInsert_NoValues(t *testing.T) {
	stmt, err := Parse("INSERT INTO t VALUES ()")
	require.NoError(t, err)
	assert.Empty(t, stmt.(*InsertStmt).Values)
}

func TestParseInsert_Errors(t *testing.T) {
	for _, q := range []string{
		"INSERT INTO t",
		"INSERT t VALUES (1)",
		"INSERT INTO t VALUES 1, 2",
	} {
		_, err := Parse(q)
		assert.ErrorIs(t, err, ErrSyntax, "query %q", q)
	}
}

func TestParseSelect(t *testing.T) {
	tests := []struct {
		query string
		want  *SelectStmt
	}{
		{"SELECT * FROM users", &SelectStmt{TableName: "users"}},
		{"select  *  from users;", &SelectStmt{TableName: "users"}},
		{"SELECT name, age FROM users", &SelectStmt{TableName: "users", Columns: []string{"name", "age"}}},
		{"SELECT _id,name\nFROM t WHERE ignored = 1", &SelectStmt{TableName: "t", Columns: []string{"_id", "name"}}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			stmt, err := Parse(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stmt)
		})
	}
}

func TestParseSelect_Errors(t *testing.T) {
	for _, q := range []string{"SELECT *", "SELECT FROM t", "SELECT * FROM"} {
		_, err := Parse(q)
		assert.ErrorIs(t, err, ErrSyntax, "query %q", q)
	}
}

func TestParse_UnicodeNames(t *testing.T) {
	stmt, err := Parse("CREATE TABLE café (nom TEXT, année INT, 名前 TEXT)")
	require.NoError(t, err)
	assert.Equal(t, &CreateTableStmt{
		TableName: "café",
		Columns: []Column{
			{Name: "nom", Type: TypeText},
			{Name: "année", Type: TypeInt},
			{Name: "名前", Type: TypeText},
		},
	}, stmt)

	stmt, err = Parse("INSERT INTO café VALUES ('crème', 2024, 'x')")
	require.NoError(t, err)
	assert.Equal(t, &InsertStmt{
		TableName: "café",
		Values:    []Value{Text("crème"), Int(2024), Text("x")},
	}, stmt)

	stmt, err = Parse("SELECT nom, année FROM café")
	require.NoError(t, err)
	assert.Equal(t, &SelectStmt{TableName: "café", Columns: []string{"nom", "année"}}, stmt)

	stmt, err = Parse("SELECT * FROM таблица2")
	require.NoError(t, err)
	assert.Equal(t, &SelectStmt{TableName: "таблица2"}, stmt)
}

func TestParseDescribe(t *testing.T) {
	stmt, err := Parse("describe users;")
	require.NoError(t, err)
	assert.Equal(t, &DescribeStmt{TableName: "users"}, stmt)

	_, err = Parse("DESCRIBE")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParse_EmptyAndUnknown(t *testing.T) {
	for _, q := range []string{"", "   ", ";", "  ;  "} {
		_, err := Parse(q)
		assert.ErrorIs(t, err, ErrEmptyStatement, "query %q", q)
	}

	_, err := Parse("update t set a = 1")
	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), "UPDATE")
}

func TestSplitValues(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"1, 2 ,3", []string{"1", "2", "3"}},
		{`'a,b', "c,'d'", e`, []string{"'a,b'", `"c,'d'"`, "e"}},
		{"1,,2", []string{"1", "", "2"}},
		{"1, 2,", []string{"1", "2"}},
		{"'unterminated, still one", []string{"'unterminated, still one"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitValues(tt.in), "input %q", tt.in)
	}
}

func TestParseDataType(t *testing.T) {
	for name, want := range map[string]DataType{
		"int": TypeInt, "INT": TypeInt,
		"Float": TypeFloat, "text": TypeText,
		"bool": TypeBool, "serial": TypeSerial,
		"INTEGER": TypeUnknown, "double": TypeUnknown,
		"REAL": TypeUnknown, "String": TypeUnknown,
		"varchar": TypeUnknown, "BOOLEAN": TypeUnknown,
		"blob": TypeUnknown, "": TypeUnknown,
	} {
		assert.Equal(t, want, ParseDataType(name), name)
	}

	assert.Equal(t, "UNKNOWN", TypeUnknown.String())
	assert.Equal(t, "SERIAL", TypeSerial.String())
	assert.False(t, TypeUnknown.Valid())
	assert.False(t, DataType(6).Valid())
}

func TestRowProjectAndJSON(t *testing.T) {
	row := Row{
		{Column: "_id", Value: Text("x1")},
		{Column: "name", Value: Text("Ann")},
		{Column: "score", Value: Float(1.5)},
	}

	got := row.Project([]string{"score", "missing", "name"})
	assert.Equal(t, Row{
		{Column: "score", Value: Float(1.5)},
		{Column: "missing", Value: Null()},
		{Column: "name", Value: Text("Ann")},
	}, got)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, `{"score":1.5,"missing":null,"name":"Ann"}`, string(b))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "NULL", Null().String())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "3.14", Float(3.14).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "hi", Text("hi").String())
}
