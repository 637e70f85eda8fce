package filestore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"rotterDB/internal/sql"
	"rotterDB/internal/storage"
)

const (
	markerNull    byte = 0
	markerPresent byte = 1

	// nullPadding follows every NULL marker, whatever the column type.
	nullPadding = 4
)

var order = binary.LittleEndian

// writeHeader writes the schema and a row count of zero.
func writeHeader(w io.Writer, cols []sql.Column) error {
	if err := binary.Write(w, order, uint32(len(cols))); err != nil {
		return err
	}

	for _, c := range cols {
		nameBytes := []byte(c.Name)
		if uint64(len(nameBytes)) > math.MaxUint32 {
			return fmt.Errorf("column name too long: %s", c.Name)
		}
		// name length
		if err := binary.Write(w, order, uint32(len(nameBytes))); err != nil {
			return err
		}
		// name bytes
		if _, err := w.Write(nameBytes); err != nil {
			return err
		}
		// type code
		if err := binary.Write(w, order, uint8(c.Type)); err != nil {
			return err
		}
	}

	// row count
	return binary.Write(w, order, uint32(0))
}

// readHeader reads the schema and the row count, leaving r positioned at
// the first row.
func readHeader(r io.Reader) ([]sql.Column, uint32, error) {
	var numCols uint32
	if err := binary.Read(r, order, &numCols); err != nil {
		return nil, 0, corrupt("column count", err)
	}

	cols := make([]sql.Column, 0, min(numCols, 1024))
	for i := uint32(0); i < numCols; i++ {
		var nameLen uint32
		if err := binary.Read(r, order, &nameLen); err != nil {
			return nil, 0, corrupt("column name length", err)
		}

		name, err := readString(r, nameLen)
		if err != nil {
			return nil, 0, corrupt("column name", err)
		}

		var t uint8
		if err := binary.Read(r, order, &t); err != nil {
			return nil, 0, corrupt("column type", err)
		}

		cols = append(cols, sql.Column{Name: name, Type: sql.DataType(t)})
	}

	var rowCount uint32
	if err := binary.Read(r, order, &rowCount); err != nil {
		return nil, 0, corrupt("row count", err)
	}

	return cols, rowCount, nil
}

// rowCountOffset walks the column descriptors of an in-memory table file
// and returns the offset of the row count field.
func rowCountOffset(buf []byte) (int, error) {
	if len(buf) < 4 {
		return 0, fmt.Errorf("%w: file shorter than header", storage.ErrCorrupt)
	}
	numCols := order.Uint32(buf)

	pos := 4
	for i := uint32(0); i < numCols; i++ {
		if pos+4 > len(buf) {
			return 0, fmt.Errorf("%w: truncated column descriptor", storage.ErrCorrupt)
		}
		nameLen := int(order.Uint32(buf[pos:]))
		pos += 4 + nameLen + 1
	}

	if pos+4 > len(buf) {
		return 0, fmt.Errorf("%w: truncated header", storage.ErrCorrupt)
	}
	return pos, nil
}

// encodeRow encodes one value per column, in schema order.
func encodeRow(cols []sql.Column, values map[string]sql.Value) ([]byte, error) {
	var buf bytes.Buffer
	for _, c := range cols {
		v, ok := values[c.Name]
		if !ok {
			v = sql.Null()
		}
		if err := writeValue(&buf, v, c.Type); err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
	}
	return buf.Bytes(), nil
}

// writeValue encodes v as a value of column type t:
//
//	NULL:        0x00 + 4 zero bytes
//	INT:         0x01 + int32
//	FLOAT:       0x01 + float64
//	TEXT/SERIAL: 0x01 + uint32 length + UTF-8 bytes
//	BOOL:        0x01 + 1 byte (0 or 1)
//
// NULL is written the same way for every type code, unknown ones included.
func writeValue(buf *bytes.Buffer, v sql.Value, t sql.DataType) error {
	if v.IsNull() {
		buf.WriteByte(markerNull)
		buf.Write(make([]byte, nullPadding))
		return nil
	}

	if !t.Valid() {
		return fmt.Errorf("%w: type code %d", storage.ErrUnsupportedType, uint8(t))
	}

	switch t {
	case sql.TypeInt:
		i, err := toInt32(v)
		if err != nil {
			return err
		}
		buf.WriteByte(markerPresent)
		return binary.Write(buf, order, i)

	case sql.TypeFloat:
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		buf.WriteByte(markerPresent)
		return binary.Write(buf, order, math.Float64bits(f))

	case sql.TypeText, sql.TypeSerial:
		b := []byte(toText(v))
		if uint64(len(b)) > math.MaxUint32 {
			return fmt.Errorf("string too long")
		}
		buf.WriteByte(markerPresent)
		if err := binary.Write(buf, order, uint32(len(b))); err != nil {
			return err
		}
		buf.Write(b)
		return nil

	case sql.TypeBool:
		var b byte
		if toBool(v) {
			b = 1
		}
		buf.WriteByte(markerPresent)
		buf.WriteByte(b)
		return nil
	}

	return fmt.Errorf("%w: type code %d", storage.ErrUnsupportedType, uint8(t))
}

// readRow decodes one row of the given schema.
func readRow(r io.Reader, cols []sql.Column) (sql.Row, error) {
	row := make(sql.Row, len(cols))
	for i, c := range cols {
		v, err := readValue(r, c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		row[i] = sql.Field{Column: c.Name, Value: v}
	}
	return row, nil
}

// readValue checks the marker before the type, so NULLs decode even in
// columns with an unknown type code.
func readValue(r io.Reader, t sql.DataType) (sql.Value, error) {
	var marker uint8
	if err := binary.Read(r, order, &marker); err != nil {
		return sql.Value{}, corrupt("value marker", err)
	}

	switch marker {
	case markerNull:
		if _, err := io.CopyN(io.Discard, r, nullPadding); err != nil {
			return sql.Value{}, corrupt("null padding", err)
		}
		return sql.Null(), nil
	case markerPresent:
	default:
		return sql.Value{}, fmt.Errorf("%w: invalid value marker %d", storage.ErrCorrupt, marker)
	}

	if !t.Valid() {
		return sql.Value{}, fmt.Errorf("%w: type code %d", storage.ErrUnsupportedType, uint8(t))
	}

	switch t {
	case sql.TypeInt:
		var v int32
		if err := binary.Read(r, order, &v); err != nil {
			return sql.Value{}, corrupt("INT value", err)
		}
		return sql.Int(int64(v)), nil

	case sql.TypeFloat:
		var bits uint64
		if err := binary.Read(r, order, &bits); err != nil {
			return sql.Value{}, corrupt("FLOAT value", err)
		}
		return sql.Float(math.Float64frombits(bits)), nil

	case sql.TypeText, sql.TypeSerial:
		var l uint32
		if err := binary.Read(r, order, &l); err != nil {
			return sql.Value{}, corrupt("TEXT length", err)
		}
		s, err := readString(r, l)
		if err != nil {
			return sql.Value{}, corrupt("TEXT value", err)
		}
		return sql.Text(s), nil

	case sql.TypeBool:
		var b uint8
		if err := binary.Read(r, order, &b); err != nil {
			return sql.Value{}, corrupt("BOOL value", err)
		}
		return sql.Bool(b == 1), nil

	default:
		return sql.Value{}, fmt.Errorf("%w: type code %d", storage.ErrUnsupportedType, uint8(t))
	}
}

// readString reads exactly n bytes without allocating n up front, so a
// corrupt length fails on EOF instead of a huge allocation.
func readString(r io.Reader, n uint32) (string, error) {
	var b strings.Builder
	if _, err := io.CopyN(&b, r, int64(n)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// corrupt maps short reads to ErrCorrupt and passes other I/O errors through.
func corrupt(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated %s", storage.ErrCorrupt, what)
	}
	return fmt.Errorf("read %s: %w", what, err)
}
