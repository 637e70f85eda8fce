package filestore

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"rotterDB/internal/sql"
)

// The helpers below convert a literal to the declared column type before it
// is encoded. Numbers cross freely between INT and FLOAT, text is parsed,
// and anything can be stored as TEXT.

func toInt32(v sql.Value) (int32, error) {
	var i int64
	switch v.Kind {
	case sql.KindInt:
		i = v.I64
	case sql.KindFloat:
		if math.IsNaN(v.F64) || math.IsInf(v.F64, 0) {
			return 0, fmt.Errorf("cannot store %v in INT column", v.F64)
		}
		t := math.Trunc(v.F64)
		if t < math.MinInt32 || t > math.MaxInt32 {
			return 0, fmt.Errorf("value %v out of range for INT", v.F64)
		}
		i = int64(t)
	case sql.KindBool:
		if v.B {
			i = 1
		}
	case sql.KindText:
		p, err := strconv.ParseInt(strings.TrimSpace(v.S), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot store %q in INT column", v.S)
		}
		i = p
	default:
		return 0, fmt.Errorf("cannot store NULL as INT")
	}

	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, fmt.Errorf("value %d out of range for INT", i)
	}
	return int32(i), nil
}

func toFloat64(v sql.Value) (float64, error) {
	switch v.Kind {
	case sql.KindInt:
		return float64(v.I64), nil
	case sql.KindFloat:
		return v.F64, nil
	case sql.KindBool:
		if v.B {
			return 1, nil
		}
		return 0, nil
	case sql.KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.S), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot store %q in FLOAT column", v.S)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot store NULL as FLOAT")
	}
}

// toText renders non-text values the way they are spelled when stored as
// TEXT: floats always carry a fraction or exponent and booleans are
// capitalised.
func toText(v sql.Value) string {
	switch v.Kind {
	case sql.KindFloat:
		return floatText(v.F64)
	case sql.KindBool:
		if v.B {
			return "True"
		}
		return "False"
	default:
		return v.String()
	}
}

// floatText is the shortest round-trip form, positional for exponents in
// [-4, 16) and scientific otherwise: 3.0, 0.0001, 1e-05, 1e+16.
func floatText(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if a := math.Abs(f); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// toBool follows truthiness: non-zero numbers and non-empty text are true.
func toBool(v sql.Value) bool {
	switch v.Kind {
	case sql.KindBool:
		return v.B
	case sql.KindInt:
		return v.I64 != 0
	case sql.KindFloat:
		return v.F64 != 0
	case sql.KindText:
		return v.S != ""
	default:
		return false
	}
}
