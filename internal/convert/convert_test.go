package convert_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unify-data-model/internal/compare"
	"unify-data-model/internal/convert"
	"unify-data-model/internal/record"
)

func nestedFixture() record.Record {
	return record.Record{
		"message":   "hi",
		"timestamp": "t1",
		"user": map[string]any{
			"id":    int64(5),
			"name":  "Ann",
			"email": "a@x.com",
		},
		"metadata": map[string]any{
			"version":  "1.0",
			"format":   "nested",
			"encoding": "utf8",
		},
		"items": []any{
			map[string]any{"id": int64(1), "title": "Task A", "active": true},
			map[string]any{"id": int64(2), "title": "Task B", "active": false},
		},
	}
}

func flattenedFixture() record.Record {
	return record.Record{
		"message":           "hi",
		"timestamp":         "t1",
		"user_id":           int64(5),
		"user_name":         "Ann",
		"user_email":        "a@x.com",
		"metadata_version":  "1.0",
		"metadata_encoding": "utf8",
		"items":             []any{"1:Task A:true", "2:Task B:false"},
	}
}

func TestNestedToUnified(t *testing.T) {
	in := nestedFixture()

	out := convert.NestedToUnified(in)

	md, ok := out.Object("metadata")
	require.True(t, ok)
	assert.Equal(t, "unified", md["format"])
	assert.Equal(t, "1.0", md["version"])

	// Input untouched.
	assert.Equal(t, nestedFixture(), in)
}

func TestNestedToUnified_NoAliasing(t *testing.T) {
	in := nestedFixture()
	out := convert.NestedToUnified(in)

	out["user"].(map[string]any)["name"] = "Bob"
	out["items"].([]any)[0].(map[string]any)["title"] = "changed"
	out["metadata"].(map[string]any)["version"] = "9"

	assert.Equal(t, "Ann", in["user"].(map[string]any)["name"])
	assert.Equal(t, "Task A", in["items"].([]any)[0].(map[string]any)["title"])
	assert.Equal(t, "1.0", in["metadata"].(map[string]any)["version"])

	// And the other way around.
	out = convert.NestedToUnified(in)
	in["user"].(map[string]any)["email"] = "z@x.com"
	assert.Equal(t, "a@x.com", out["user"].(map[string]any)["email"])
}

func TestNestedToUnified_FormatNormalization(t *testing.T) {
	for _, format := range []any{"nested", "unified", "", int64(3), nil} {
		t.Run("", func(t *testing.T) {
			in := nestedFixture()
			in["metadata"].(map[string]any)["format"] = format

			once := convert.NestedToUnified(in)
			twice := convert.NestedToUnified(once)

			md, _ := once.Object("metadata")
			assert.Equal(t, "unified", md["format"])
			assert.Equal(t, once, twice)
		})
	}
}

func TestNestedToUnified_MetadataMissingOrNotObject(t *testing.T) {
	tests := []struct {
		name string
		in   record.Record
	}{
		{name: "missing", in: record.Record{"message": "hi"}},
		{name: "string", in: record.Record{"metadata": "v1"}},
		{name: "array", in: record.Record{"metadata": []any{"format"}}},
		{name: "null", in: record.Record{"metadata": nil}},
		{name: "empty record", in: record.Record{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := convert.NestedToUnified(tt.in)
			assert.Equal(t, tt.in, out)
		})
	}
}

func TestFlattenedToUnified(t *testing.T) {
	got, err := convert.FlattenedRecordToUnified(flattenedFixture())
	require.NoError(t, err)

	assert.Equal(t, record.Unified{
		Message:   "hi",
		Timestamp: "t1",
		User:      record.User{ID: int64(5), Name: "Ann", Email: "a@x.com"},
		Metadata:  record.Metadata{Version: "1.0", Format: "unified", Encoding: "utf8"},
		Items: []record.Item{
			{ID: 1, Title: "Task A", Active: true},
			{ID: 2, Title: "Task B", Active: false},
		},
	}, got)
}

func TestFlattenedToUnified_Defaults(t *testing.T) {
	got, err := convert.FlattenedRecordToUnified(record.Record{})
	require.NoError(t, err)

	assert.Equal(t, record.Record{
		"message":   "",
		"timestamp": "",
		"user":      map[string]any{"id": nil, "name": "", "email": ""},
		"metadata":  map[string]any{"version": "", "format": "unified", "encoding": ""},
		"items":     []any{},
	}, got.Record())
	assert.NotNil(t, got.Items)
}

func TestFlattenedToUnified_Items(t *testing.T) {
	tests := []struct {
		name  string
		items any
		want  []record.Item
	}{
		{
			name:  "malformed shape skipped",
			items: []any{"bad:item"},
			want:  []record.Item{},
		},
		{
			name:  "too many segments skipped",
			items: []any{"1:a:true", "2:b:c:false", "3:c:FALSE"},
			want:  []record.Item{{ID: 1, Title: "a", Active: true}, {ID: 3, Title: "c"}},
		},
		{
			name:  "non-string elements skipped",
			items: []any{int64(1), map[string]any{"id": int64(1)}, nil, "4:d:True"},
			want:  []record.Item{{ID: 4, Title: "d", Active: true}},
		},
		{
			name:  "items not an array",
			items: "1:a:true",
			want:  []record.Item{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convert.FlattenedRecordToUnified(record.Record{"items": tt.items})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Items)
		})
	}
}

func TestFlattenedToUnified_InvalidID(t *testing.T) {
	in := record.Flattened{Items: []any{"1:ok:true", "x:Task:true"}}

	_, err := convert.FlattenedToUnified(in)
	require.Error(t, err)

	var fe *convert.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, fe.Index)
	assert.Equal(t, "x:Task:true", fe.Item)

	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)
	assert.Contains(t, err.Error(), `item 1 "x:Task:true": invalid id`)
}

func TestFlattenedToUnified_NoAliasing(t *testing.T) {
	in := record.Flattened{UserID: map[string]any{"ext": "a"}}

	out, err := convert.FlattenedToUnified(in)
	require.NoError(t, err)

	out.User.ID.(map[string]any)["ext"] = "b"
	assert.Equal(t, "a", in.UserID.(map[string]any)["ext"])
}

func TestCrossFormatEquivalence(t *testing.T) {
	fromNested := convert.NestedToUnified(nestedFixture())

	fromFlattened, err := convert.FlattenedRecordToUnified(flattenedFixture())
	require.NoError(t, err)

	assert.True(t, compare.Equal(fromNested, fromFlattened.Record()))
	assert.Empty(t, compare.Diff(fromNested, fromFlattened))
}

// Flattened scalars of the wrong JSON type read as "", while the nested
// converter copies values through, so the two stop agreeing.
func TestCrossFormatEquivalence_WrongTypedScalars(t *testing.T) {
	nested := nestedFixture()
	nested["user"].(map[string]any)["name"] = nil
	nested["message"] = int64(42)

	flattened := flattenedFixture()
	flattened["user_name"] = nil
	flattened["message"] = int64(42)

	fromFlattened, err := convert.FlattenedRecordToUnified(flattened)
	require.NoError(t, err)
	assert.Empty(t, fromFlattened.User.Name)
	assert.Empty(t, fromFlattened.Message)

	assert.Equal(t, []string{"$.message", "$.user.name"},
		compare.Diff(convert.NestedToUnified(nested), fromFlattened))
}

func TestConcurrentUse(t *testing.T) {
	nested := nestedFixture()
	flattened := flattenedFixture()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			n := convert.NestedToUnified(nested)
			f, err := convert.FlattenedRecordToUnified(flattened)
			assert.NoError(t, err)
			assert.True(t, compare.Equal(n, f))
		}()
	}

	wg.Wait()

	assert.Equal(t, nestedFixture(), nested)
	assert.Equal(t, flattenedFixture(), flattened)
}
