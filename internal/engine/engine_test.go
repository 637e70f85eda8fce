package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-git/go-billy/v6/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotterDB/internal/sql"
	"rotterDB/internal/storage"
	"rotterDB/internal/storage/filestore"
	"rotterDB/internal/testutil"
)

func newTestEngine(t *testing.T) *DBEngine {
	t.Helper()

	store, err := filestore.NewWithFilesystem(memfs.New(), filestore.Options{
		Logger: testutil.NewTestLogger(t),
	})
	require.NoError(t, err)

	return New(Config{Store: store, Logger: testutil.NewTestLogger(t)})
}

// mustExec runs query and fails the test unless it succeeded.
func mustExec(t *testing.T, e *DBEngine, query string) Result {
	t.Helper()
	res := e.Execute(query)
	require.True(t, res.OK(), "%s: %s", query, res.Message)
	return res
}

// TestEngine_EndToEnd creates a table, inserts a row and reads it back
// through SELECT and DESCRIBE.
func TestEngine_EndToEnd(t *testing.T) {
	eng := newTestEngine(t)

	res := mustExec(t, eng, "CREATE TABLE t (name TEXT, age INT)")
	assert.Equal(t, "table 't' created", res.Message)
	assert.Nil(t, res.Data)

	res = mustExec(t, eng, "INSERT INTO t VALUES ('Ann', 30)")
	data, ok := res.Data.(map[string]sql.Value)
	require.True(t, ok, "INSERT data is %T", res.Data)
	id := data["_id"]
	assert.Regexp(t, `^[a-z0-9]{16}$`, id.S)
	assert.Equal(t, "row inserted, _id = "+id.S, res.Message)

	res = mustExec(t, eng, "SELECT * FROM t;")
	assert.Equal(t, "1 row(s)", res.Message)
	assert.Equal(t, []sql.Row{{
		{Column: "_id", Value: id},
		{Column: "name", Value: sql.Text("Ann")},
		{Column: "age", Value: sql.Int(30)},
	}}, res.Data)

	res = mustExec(t, eng, "describe t")
	assert.Equal(t, "structure of 't'", res.Message)
	assert.Equal(t, []ColumnInfo{
		{Column: "_id", Type: "SERIAL"},
		{Column: "name", Type: "TEXT"},
		{Column: "age", Type: "INT"},
	}, res.Data)

	res = mustExec(t, eng, "DROP TABLE t")
	assert.Equal(t, "table 't' dropped", res.Message)

	res = eng.Execute("SELECT * FROM t")
	assert.Equal(t, StatusError, res.Status)
}

func TestEngine_Projection(t *testing.T) {
	eng := newTestEngine(t)

	mustExec(t, eng, "CREATE TABLE users (name TEXT, age INT)")
	mustExec(t, eng, "INSERT INTO users VALUES ('Ann', 30)")
	mustExec(t, eng, "INSERT INTO users VALUES ('Bob', NULL)")

	res := mustExec(t, eng, "SELECT age FROM users")
	assert.Equal(t, []sql.Row{
		{{Column: "age", Value: sql.Int(30)}},
		{{Column: "age", Value: sql.Null()}},
	}, res.Data)

	res = mustExec(t, eng, "SELECT age, nickname, name FROM users")
	rows := res.Data.([]sql.Row)
	require.Len(t, rows, 2)
	assert.Equal(t, sql.Row{
		{Column: "age", Value: sql.Int(30)},
		{Column: "nickname", Value: sql.Null()},
		{Column: "name", Value: sql.Text("Ann")},
	}, rows[0])
}

func TestEngine_SelectEmptyTable(t *testing.T) {
	eng := newTestEngine(t)
	mustExec(t, eng, "CREATE TABLE t (x INT)")

	res := mustExec(t, eng, "SELECT * FROM t")
	assert.Equal(t, "0 row(s)", res.Message)
	assert.Equal(t, []sql.Row{}, res.Data)
}

func TestEngine_InsertValueCountMismatch(t *testing.T) {
	eng := newTestEngine(t)
	mustExec(t, eng, "CREATE TABLE t (a INT, b TEXT)")

	for _, q := range []string{
		"INSERT INTO t VALUES (1)",
		"INSERT INTO t VALUES (1, 'x', true)",
		"INSERT INTO t VALUES ()",
	} {
		res := eng.Execute(q)
		assert.Equal(t, StatusError, res.Status, q)
		assert.Contains(t, res.Message, sql.ErrValueCountMismatch.Error(), q)
		assert.Nil(t, res.Data)
	}

	res := mustExec(t, eng, "SELECT * FROM t")
	assert.Empty(t, res.Data)
}

func TestEngine_InsertQuotedComma(t *testing.T) {
	eng := newTestEngine(t)
	mustExec(t, eng, "CREATE TABLE t (label TEXT, n INT)")
	mustExec(t, eng, "INSERT INTO t VALUES ('a,b', 3)")

	res := mustExec(t, eng, "SELECT label, n FROM t")
	assert.Equal(t, []sql.Row{{
		{Column: "label", Value: sql.Text("a,b")},
		{Column: "n", Value: sql.Int(3)},
	}}, res.Data)
}

func TestEngine_UnicodeNames(t *testing.T) {
	eng := newTestEngine(t)

	mustExec(t, eng, "CREATE TABLE caf (x INT)")
	mustExec(t, eng, "INSERT INTO caf VALUES (1)")

	res := mustExec(t, eng, "CREATE TABLE café (nom TEXT, année INT)")
	assert.Equal(t, "table 'café' created", res.Message)
	mustExec(t, eng, "INSERT INTO café VALUES ('crème', 2024)")

	res = mustExec(t, eng, "SELECT année, nom FROM café")
	assert.Equal(t, []sql.Row{{
		{Column: "année", Value: sql.Int(2024)},
		{Column: "nom", Value: sql.Text("crème")},
	}}, res.Data)

	res = mustExec(t, eng, "DESCRIBE café")
	assert.Equal(t, []ColumnInfo{
		{Column: "_id", Type: "SERIAL"},
		{Column: "nom", Type: "TEXT"},
		{Column: "année", Type: "INT"},
	}, res.Data)

	res = mustExec(t, eng, "DROP TABLE café")
	assert.Equal(t, "table 'café' dropped", res.Message)

	// the ASCII prefix table is a different table and survives
	res = mustExec(t, eng, "SELECT * FROM caf")
	assert.Equal(t, "1 row(s)", res.Message)

	res = eng.Execute("DROP TABLE café")
	assert.Contains(t, res.Message, storage.ErrNotFound.Error())
	mustExec(t, eng, "SELECT * FROM caf")
}

func TestEngine_NonCanonicalTypeNamesAreUnknown(t *testing.T) {
	eng := newTestEngine(t)

	for _, q := range []string{
		"CREATE TABLE x (a INTEGER)",
		"CREATE TABLE x (a VARCHAR)",
		"CREATE TABLE x (a BOOLEAN)",
		"CREATE TABLE x (a DOUBLE)",
	} {
		res := eng.Execute(q)
		assert.Equal(t, StatusError, res.Status, q)
		assert.Contains(t, res.Message, storage.ErrUnsupportedType.Error(), q)
	}

	mustExec(t, eng, "CREATE TABLE x (a int, b Float, c TEXT, d bool)")
	res := mustExec(t, eng, "DESCRIBE x")
	assert.Equal(t, []ColumnInfo{
		{Column: "_id", Type: "SERIAL"},
		{Column: "a", Type: "INT"},
		{Column: "b", Type: "FLOAT"},
		{Column: "c", Type: "TEXT"},
		{Column: "d", Type: "BOOL"},
	}, res.Data)
}

func TestEngine_Errors(t *testing.T) {
	eng := newTestEngine(t)
	mustExec(t, eng, "CREATE TABLE t (a INT)")

	tests := []struct {
		name  string
		query string
		want  error
	}{
		{"empty", "   ", sql.ErrEmptyStatement},
		{"only semicolon", ";", sql.ErrEmptyStatement},
		{"unknown verb", "UPDATE t SET a = 1", sql.ErrUnknownCommand},
		{"bad create", "CREATE TABLE broken", sql.ErrSyntax},
		{"duplicate create", "CREATE TABLE t (b TEXT)", storage.ErrAlreadyExists},
		{"unknown type", "CREATE TABLE u (x BLOB)", storage.ErrUnsupportedType},
		{"drop missing", "DROP TABLE nope", storage.ErrNotFound},
		{"insert missing", "INSERT INTO nope VALUES (1)", storage.ErrNotFound},
		{"select missing", "SELECT * FROM nope", storage.ErrNotFound},
		{"describe missing", "DESCRIBE nope", storage.ErrNotFound},
		{"describe no name", "DESCRIBE", sql.ErrSyntax},
		{"bad int", "INSERT INTO t VALUES ('abc')", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := eng.Execute(tt.query)
			assert.Equal(t, StatusError, res.Status)
			assert.NotEmpty(t, res.Message)
			assert.Nil(t, res.Data)
			if tt.want != nil {
				assert.Contains(t, res.Message, tt.want.Error())
			}
		})
	}

	res := eng.Execute("frobnicate everything")
	assert.Equal(t, "unknown command: FROBNICATE", res.Message)
}

// recordingStore counts calls and can be told to panic.
type recordingStore struct {
	calls   int
	explode bool
}

func (s *recordingStore) touch() {
	s.calls++
	if s.explode {
		panic("disk on fire")
	}
}

func (s *recordingStore) CreateTable(string, []sql.Column) error { s.touch(); return nil }
func (s *recordingStore) DropTable(string) error                 { s.touch(); return nil }
func (s *recordingStore) ListTables() ([]string, error)          { s.touch(); return nil, nil }

func (s *recordingStore) TableSchema(string) ([]sql.Column, error) {
	s.touch()
	return nil, errors.New("no schema")
}

func (s *recordingStore) InsertRow(string, map[string]sql.Value) (sql.Value, error) {
	s.touch()
	return sql.Value{}, nil
}

func (s *recordingStore) Scan(string) ([]sql.Row, error) {
	s.touch()
	return nil, nil
}

func TestEngine_UnknownCommandSkipsStorage(t *testing.T) {
	store := &recordingStore{}
	eng := New(Config{Store: store})

	for _, q := range []string{"", "UPDATE t SET a = 1", "DELETE FROM t", "CREATE garbage"} {
		res := eng.Execute(q)
		assert.Equal(t, StatusError, res.Status, q)
	}
	assert.Zero(t, store.calls)
}

func TestEngine_RecoversPanics(t *testing.T) {
	store := &recordingStore{explode: true}
	eng := New(Config{Store: store, Logger: testutil.NewTestLogger(t)})

	var res Result
	require.NotPanics(t, func() {
		res = eng.Execute("SELECT * FROM t")
	})
	assert.Equal(t, StatusError, res.Status)
	assert.Contains(t, res.Message, "disk on fire")
	assert.Nil(t, res.Data)
}

func TestResult_JSON(t *testing.T) {
	eng := newTestEngine(t)
	mustExec(t, eng, "CREATE TABLE t (name TEXT, ok BOOL, score FLOAT)")
	mustExec(t, eng, "INSERT INTO t VALUES ('Ann', true, 1.5)")

	res := mustExec(t, eng, "SELECT name, ok, score, gone FROM t")
	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"status":"success","message":"1 row(s)","data":[{"name":"Ann","ok":true,"score":1.5,"gone":null}]}`,
		string(b))

	b, err = json.Marshal(eng.Execute("DESCRIBE nope"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"status":"error"`)
	assert.Contains(t, string(b), `"data":null`)
}

func TestEngine_ListTablesAndSchema(t *testing.T) {
	eng := newTestEngine(t)
	mustExec(t, eng, "CREATE TABLE a (x INT)")

	tables, err := eng.ListTables()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tables)

	cols, err := eng.TableSchema("a")
	require.NoError(t, err)
	assert.Equal(t, []sql.Column{
		{Name: "_id", Type: sql.TypeSerial},
		{Name: "x", Type: sql.TypeInt},
	}, cols)
}
