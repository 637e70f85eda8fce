package sql

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DataType is the declared type of a column. The numeric value is the
// type code stored in table file headers.
type DataType uint8

const (
	TypeUnknown DataType = iota // code 0, never produced by the parser
	TypeInt
	TypeFloat
	TypeText
	TypeBool
	TypeSerial
)

// String returns the canonical SQL name of the type.
func (t DataType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeFloat:
		return "FLOAT"
	case TypeText:
		return "TEXT"
	case TypeBool:
		return "BOOL"
	case TypeSerial:
		return "SERIAL"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether t is one of the supported column types.
func (t DataType) Valid() bool {
	return t >= TypeInt && t <= TypeSerial
}

// ParseDataType maps a type name from a CREATE TABLE clause to a DataType.
// Only the five canonical names are accepted, in any case. Anything else,
// INTEGER and VARCHAR included, maps to TypeUnknown.
func ParseDataType(name string) DataType {
	switch strings.ToUpper(name) {
	case "INT":
		return TypeInt
	case "FLOAT":
		return TypeFloat
	case "TEXT":
		return TypeText
	case "BOOL":
		return TypeBool
	case "SERIAL":
		return TypeSerial
	default:
		return TypeUnknown
	}
}

// Kind tags which field of a Value is meaningful.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindText
	KindBool
)

// Value represents a single cell in a table (one column in one row).
// Only the field matching Kind should be read; other fields remain at their
// zero values.
type Value struct {
	Kind Kind

	I64 int64   // for KindInt
	F64 float64 // for KindFloat
	S   string  // for KindText
	B   bool    // for KindBool
}

func Null() Value           { return Value{Kind: KindNull} }
func Int(i int64) Value     { return Value{Kind: KindInt, I64: i} }
func Float(f float64) Value { return Value{Kind: KindFloat, F64: f} }
func Text(s string) Value   { return Value{Kind: KindText, S: s} }
func Bool(b bool) Value     { return Value{Kind: KindBool, B: b} }

// IsNull reports whether v is the NULL value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String renders the value the way the console prints it.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindText:
		return v.S
	case KindBool:
		return strconv.FormatBool(v.B)
	default:
		return "NULL"
	}
}

// Any returns the value as a plain Go value (nil, int64, float64, string
// or bool), for JSON encoding and generic renderers.
func (v Value) Any() any {
	switch v.Kind {
	case KindInt:
		return v.I64
	case KindFloat:
		return v.F64
	case KindText:
		return v.S
	case KindBool:
		return v.B
	default:
		return nil
	}
}

// MarshalJSON encodes the value as its plain JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// Column describes metadata for a single column in a table.
type Column struct {
	Name string
	Type DataType
}

// Field is one column/value pair of a Row.
type Field struct {
	Column string
	Value  Value
}

// Row is an ordered column -> value mapping.
type Row []Field

// Get returns the value stored under column, or false if the row has no
// such column.
func (r Row) Get(column string) (Value, bool) {
	for _, f := range r {
		if f.Column == column {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Columns returns the column names in row order.
func (r Row) Columns() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Column
	}
	return out
}

// Project builds a new row holding only the requested columns, in the
// requested order. Columns the row does not have resolve to NULL.
func (r Row) Project(columns []string) Row {
	out := make(Row, 0, len(columns))
	for _, c := range columns {
		v, ok := r.Get(c)
		if !ok {
			v = Null()
		}
		out = append(out, Field{Column: c, Value: v})
	}
	return out
}

// MarshalJSON encodes the row as a JSON object, keeping column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(f.Column)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
