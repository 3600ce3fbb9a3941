package document

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/valyala/fastjson"

	"unify-data-model/internal/record"
)

var (
	errNotObject   = errors.New("top-level value is not an object")
	errInvalidUTF8 = errors.New("invalid UTF-8")
)

// Parser turns JSON text into records. It is safe for concurrent use.
type Parser struct {
	pool fastjson.ParserPool
}

// Parse parses data as a JSON object. name is only used in errors.
// Input the fastjson parser would tolerate, such as unknown escapes, raw
// control characters or leading zeros, is rejected.
func (p *Parser) Parse(name string, data []byte) (record.Record, error) {
	if !utf8.Valid(data) {
		return nil, &ParseError{Name: name, Err: errInvalidUTF8}
	}

	if err := fastjson.ValidateBytes(data); err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}

	fp := p.pool.Get()
	defer p.pool.Put(fp)

	v, err := fp.ParseBytes(data)
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}

	if v.Type() != fastjson.TypeObject {
		return nil, &ParseError{Name: name, Err: errNotObject}
	}

	// Values returned by fp are only valid until it is put back.
	obj, _ := fromValue(v).(map[string]any)

	return record.Record(obj), nil
}

func fromValue(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeObject:
		o, _ := v.Object()
		m := make(map[string]any, o.Len())
		o.Visit(func(key []byte, val *fastjson.Value) {
			m[string(key)] = fromValue(val)
		})

		return m
	case fastjson.TypeArray:
		arr, _ := v.Array()
		out := make([]any, len(arr))
		for i, el := range arr {
			out[i] = fromValue(el)
		}

		return out
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		return number(v)
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	default:
		return nil
	}
}

// number keeps integers exact: int64 when it fits, then uint64, then the
// literal itself.
func number(v *fastjson.Value) any {
	if n, err := v.Int64(); err == nil {
		return n
	}

	if n, err := v.Uint64(); err == nil {
		return n
	}

	lit := v.String()
	if isIntLiteral(lit) {
		return json.Number(lit)
	}

	f, _ := v.Float64()

	return f
}

func isIntLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
