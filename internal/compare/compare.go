package compare

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"unify-data-model/internal/common"
	"unify-data-model/internal/record"
)

const rootPath = "$"

type recorder interface {
	Record() record.Record
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b any) bool {
	return len(Diff(a, b)) == 0
}

// Diff returns the paths at which a and b differ, in a stable order.
// Paths look like "$.user.id" or "$.items[1].title".
func Diff(a, b any) []string {
	var out []string

	diff(rootPath, normalize(a), normalize(b), &out)

	return out
}

func normalize(v any) any {
	if r, ok := v.(recorder); ok {
		return r.Record()
	}

	return v
}

func diff(path string, a, b any, out *[]string) {
	if ao, ok := record.AsObject(a); ok {
		bo, ok := record.AsObject(b)
		if !ok {
			*out = append(*out, path)
			return
		}

		diffObjects(path, ao, bo, out)

		return
	}

	if al, ok := a.([]any); ok {
		bl, ok := b.([]any)
		if !ok {
			*out = append(*out, path)
			return
		}

		diffArrays(path, al, bl, out)

		return
	}

	if !scalarEqual(a, b) {
		*out = append(*out, path)
	}
}

func diffObjects(path string, a, b map[string]any, out *[]string) {
	keys := common.SortedKeys(a)
	for _, k := range common.SortedKeys(b) {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}

	for _, k := range keys {
		av, aok := a[k]
		bv, bok := b[k]

		p := path + "." + k
		if aok != bok {
			*out = append(*out, p)
			continue
		}

		diff(p, av, bv, out)
	}
}

func diffArrays(path string, a, b []any, out *[]string) {
	n := max(len(a), len(b))
	for i := range n {
		p := fmt.Sprintf("%s[%d]", path, i)
		if i >= len(a) || i >= len(b) {
			*out = append(*out, p)
			continue
		}

		diff(p, a[i], b[i], out)
	}
}

func scalarEqual(a, b any) bool {
	if ai, ok := toInt(a); ok {
		if bi, ok := toInt(b); ok {
			return ai == bi
		}
	}

	// Integers past the int64 range compare by their decimal text.
	if at, ok := intText(a); ok {
		if bt, ok := intText(b); ok {
			return at == bt
		}
	}

	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}

	return reflect.DeepEqual(a, b)
}

func toInt(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}

		return int64(v), true
	case json.Number:
		i, err := v.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

func intText(v any) (string, bool) {
	switch v := v.(type) {
	case int, int32, int64:
		return fmt.Sprint(v), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case json.Number:
		if _, err := strconv.ParseFloat(v.String(), 64); err != nil {
			return "", false
		}

		if strings.ContainsAny(v.String(), ".eE") {
			return "", false
		}

		return v.String(), true
	default:
		return "", false
	}
}

func toFloat(v any) (float64, bool) {
	if i, ok := toInt(v); ok {
		return float64(i), true
	}

	switch v := v.(type) {
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
