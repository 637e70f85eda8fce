package filestore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-billy/v6/util"

	"rotterDB/internal/sql"
	"rotterDB/internal/storage"
)

const (
	tableFilePrefix = "table_"
	tableFileSuffix = ".db"
)

// FileEngine is a simple on-disk storage engine.
// It stores one file per table, named table_<name>.db, in a single root
// directory.
//
// Layout (all integers little endian):
//
//	[header][rows...]
//
// Header:
//
//	numCols:   uint32
//	per column:
//	  nameLen: uint32
//	  name:    nameLen bytes (UTF-8)
//	  type:    uint8 (matches sql.DataType)
//	numRows:   uint32
//
// Rows:
//
//	For each row, for each column in schema order:
//	  marker: uint8 (0 = NULL, 1 = present)
//	  payload:
//	    NULL:        4 zero bytes
//	    INT:         int32
//	    FLOAT:       float64
//	    TEXT/SERIAL: uint32 length + bytes
//	    BOOL:        1 byte (0 or 1)
//
// Every call opens and closes its own file handles; nothing is cached.
type FileEngine struct {
	fs        billy.Filesystem
	logger    *slog.Logger
	newSerial func() string
}

var _ storage.Engine = (*FileEngine)(nil)

// Options configures a FileEngine. The zero value is usable.
type Options struct {
	// Logger receives debug logs for every table operation (optional).
	Logger *slog.Logger
	// NewSerial generates SERIAL values; defaults to NewSerial.
	NewSerial func() string
}

// New creates a new FileEngine storing all tables in dir, creating dir if
// it does not exist.
func New(dir string, opts Options) (*FileEngine, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create dir: %w", err)
	}
	return NewWithFilesystem(osfs.New(dir), opts)
}

// NewWithFilesystem creates a FileEngine over an existing billy filesystem,
// whose root acts as the storage directory.
func NewWithFilesystem(fsys billy.Filesystem, opts Options) (*FileEngine, error) {
	if fsys == nil {
		return nil, fmt.Errorf("filestore: nil filesystem")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	gen := opts.NewSerial
	if gen == nil {
		gen = NewSerial
	}

	return &FileEngine{
		fs:        fsys,
		logger:    logger.With("component", "filestore"),
		newSerial: gen,
	}, nil
}

func (e *FileEngine) tablePath(name string) string {
	return tableFilePrefix + name + tableFileSuffix
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("filestore: invalid table name %q", name)
	}
	return nil
}

// exists reports whether the table file is present.
func (e *FileEngine) exists(name string) (bool, error) {
	if err := validName(name); err != nil {
		return false, err
	}
	_, err := e.fs.Stat(e.tablePath(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("filestore: stat table %q: %w", name, err)
}

func (e *FileEngine) mustExist(name string) error {
	ok, err := e.exists(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("filestore: %w: %q", storage.ErrNotFound, name)
	}
	return nil
}

// CreateTable creates a new table file with the given schema and no rows.
// A leading (_id, SERIAL) column is added unless cols already has an _id.
func (e *FileEngine) CreateTable(name string, cols []sql.Column) error {
	ok, err := e.exists(name)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("filestore: %w: %q", storage.ErrAlreadyExists, name)
	}

	schema := withIDColumn(cols)
	for _, c := range schema {
		if !c.Type.Valid() {
			return fmt.Errorf("filestore: %w: column %q has type %s",
				storage.ErrUnsupportedType, c.Name, c.Type)
		}
	}

	var header bytes.Buffer
	if err := writeHeader(&header, schema); err != nil {
		return fmt.Errorf("filestore: encode header: %w", err)
	}

	path := e.tablePath(name)
	f, err := e.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("filestore: %w: %q", storage.ErrAlreadyExists, name)
		}
		return fmt.Errorf("filestore: create table file: %w", err)
	}

	if _, err := f.Write(header.Bytes()); err != nil {
		_ = f.Close()
		_ = e.fs.Remove(path)
		return fmt.Errorf("filestore: write header: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = e.fs.Remove(path)
		return fmt.Errorf("filestore: close table file: %w", err)
	}

	e.logger.Debug("table created", "table", name, "columns", len(schema))
	return nil
}

// withIDColumn returns cols with (_id, SERIAL) prepended when no column is
// named _id. The caller's slice is not modified.
func withIDColumn(cols []sql.Column) []sql.Column {
	for _, c := range cols {
		if c.Name == storage.IDColumn {
			return append([]sql.Column(nil), cols...)
		}
	}
	out := make([]sql.Column, 0, len(cols)+1)
	out = append(out, sql.Column{Name: storage.IDColumn, Type: sql.TypeSerial})
	return append(out, cols...)
}

// DropTable removes the table file.
func (e *FileEngine) DropTable(name string) error {
	if err := e.mustExist(name); err != nil {
		return err
	}
	if err := e.fs.Remove(e.tablePath(name)); err != nil {
		return fmt.Errorf("filestore: remove table file: %w", err)
	}
	e.logger.Debug("table dropped", "table", name)
	return nil
}

// TableSchema reads the schema header of the given table.
func (e *FileEngine) TableSchema(name string) ([]sql.Column, error) {
	if err := e.mustExist(name); err != nil {
		return nil, err
	}

	f, err := e.fs.Open(e.tablePath(name))
	if err != nil {
		return nil, fmt.Errorf("filestore: open table for schema: %w", err)
	}
	defer f.Close()

	cols, _, err := readHeader(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("filestore: read header of %q: %w", name, err)
	}
	return cols, nil
}

// InsertRow appends one row and returns its _id.
//
// The whole file is read, the row count is spliced in place and the new row
// appended, then the complete buffer is written back in a single overwrite.
// Every insert therefore costs O(file size).
func (e *FileEngine) InsertRow(name string, values map[string]sql.Value) (sql.Value, error) {
	cols, err := e.TableSchema(name)
	if err != nil {
		return sql.Value{}, err
	}

	row := make(map[string]sql.Value, len(cols))
	for k, v := range values {
		row[k] = v
	}
	if _, ok := row[storage.IDColumn]; !ok {
		row[storage.IDColumn] = sql.Text(e.newSerial())
	}
	for _, c := range cols {
		if _, ok := row[c.Name]; ok {
			continue
		}
		if c.Type == sql.TypeSerial {
			row[c.Name] = sql.Text(e.newSerial())
		} else {
			row[c.Name] = sql.Null()
		}
	}

	encoded, err := encodeRow(cols, row)
	if err != nil {
		return sql.Value{}, fmt.Errorf("filestore: encode row for %q: %w", name, err)
	}

	path := e.tablePath(name)
	content, err := util.ReadFile(e.fs, path)
	if err != nil {
		return sql.Value{}, fmt.Errorf("filestore: read table file: %w", err)
	}

	pos, err := rowCountOffset(content)
	if err != nil {
		return sql.Value{}, fmt.Errorf("filestore: %q: %w", name, err)
	}
	rowCount := order.Uint32(content[pos:])
	if rowCount == ^uint32(0) {
		return sql.Value{}, fmt.Errorf("filestore: table %q is full", name)
	}

	out := make([]byte, 0, len(content)+len(encoded))
	out = append(out, content[:pos]...)
	out = order.AppendUint32(out, rowCount+1)
	out = append(out, content[pos+4:]...)
	out = append(out, encoded...)

	if err := util.WriteFile(e.fs, path, out, 0o644); err != nil {
		return sql.Value{}, fmt.Errorf("filestore: write table file: %w", err)
	}

	e.logger.Debug("row appended", "table", name, "rows", rowCount+1, "bytes", len(out))
	return row[storage.IDColumn], nil
}

// Scan reads the file once and decodes every row in schema order.
func (e *FileEngine) Scan(name string) ([]sql.Row, error) {
	if err := e.mustExist(name); err != nil {
		return nil, err
	}

	f, err := e.fs.Open(e.tablePath(name))
	if err != nil {
		return nil, fmt.Errorf("filestore: open table for scan: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	cols, rowCount, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("filestore: read header of %q: %w", name, err)
	}

	rows := make([]sql.Row, 0, min(rowCount, 4096))
	for i := uint32(0); i < rowCount; i++ {
		row, err := readRow(r, cols)
		if err != nil {
			return nil, fmt.Errorf("filestore: %q row %d: %w", name, i, err)
		}
		rows = append(rows, row)
	}

	e.logger.Debug("table scanned", "table", name, "rows", len(rows))
	return rows, nil
}

// ListTables returns all table_*.db files in the storage directory, in
// directory enumeration order.
func (e *FileEngine) ListTables() ([]string, error) {
	entries, err := e.fs.ReadDir(".")
	if errors.Is(err, os.ErrNotExist) {
		// in-memory filesystems only materialise the root on first write
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: list tables: %w", err)
	}

	var tables []string
	for _, ent := range entries {
		name := ent.Name()
		if ent.IsDir() || len(name) <= len(tableFilePrefix)+len(tableFileSuffix) {
			continue
		}
		if strings.HasPrefix(name, tableFilePrefix) && strings.HasSuffix(name, tableFileSuffix) {
			tables = append(tables, strings.TrimSuffix(strings.TrimPrefix(name, tableFilePrefix), tableFileSuffix))
		}
	}
	return tables, nil
}
