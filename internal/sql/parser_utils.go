package sql

import (
	"strconv"
	"strings"
)

// splitValues splits a VALUES list on commas that are not inside a quoted
// span. A span opens with ' or " and closes only on the same quote
// character; the quotes stay in the token so parseLiteral can recognise
// strings. A trailing empty token is dropped, so "()" yields no values.
func splitValues(s string) []string {
	var (
		out   []string
		cur   strings.Builder
		quote rune // 0 when outside a quoted span
	)

	for _, r := range s {
		switch {
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
			cur.WriteRune(r)
		case quote != 0 && r == quote:
			quote = 0
			cur.WriteRune(r)
		case quote == 0 && r == ',':
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}

	if last := strings.TrimSpace(cur.String()); last != "" {
		out = append(out, last)
	}
	return out
}

// parseLiteral converts one raw VALUES token into a Value. Rules, in order:
//   - NULL (any case)             -> NULL
//   - true / false (any case)     -> BOOL
//   - 'text' or "text"            -> TEXT, inner characters verbatim
//   - no '.' and parses as int    -> INT
//   - has '.' and parses as float -> FLOAT
//   - anything else               -> TEXT, the raw token
func parseLiteral(tok string) Value {
	s := strings.TrimSpace(tok)

	if strings.EqualFold(s, "NULL") {
		return Null()
	}
	if strings.EqualFold(s, "true") {
		return Bool(true)
	}
	if strings.EqualFold(s, "false") {
		return Bool(false)
	}

	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return Text(s[1 : len(s)-1])
	}

	if !strings.Contains(s, ".") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i)
		}
	} else if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}

	return Text(s)
}
