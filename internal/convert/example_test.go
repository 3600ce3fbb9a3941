package convert_test

import (
	"encoding/json"
	"errors"
	"fmt"

	"unify-data-model/internal/convert"
	"unify-data-model/internal/record"
)

func ExampleFlattenedToUnified() {
	in := record.Flattened{
		Message:          "hi",
		UserID:           int64(5),
		UserName:         "Ann",
		MetadataVersion:  "1.0",
		MetadataEncoding: "utf8",
		Items:            []any{"1:Task A:true", "bad:item"},
	}

	out, err := convert.FlattenedToUnified(in)
	if err != nil {
		fmt.Println(err)
		return
	}

	data, _ := json.Marshal(out)
	fmt.Println(string(data))
	// Output:
	// {"message":"hi","timestamp":"","user":{"id":5,"name":"Ann","email":""},"metadata":{"version":"1.0","format":"unified","encoding":"utf8"},"items":[{"id":1,"title":"Task A","active":true}]}
}

func ExampleFlattenedToUnified_formatError() {
	_, err := convert.FlattenedToUnified(record.Flattened{Items: []any{"x:Task:true"}})

	var fe *convert.FormatError
	fmt.Println(errors.As(err, &fe), fe.Index, fe.Item)
	// Output:
	// true 0 x:Task:true
}

func ExampleNestedToUnified() {
	in := record.Record{"metadata": map[string]any{"format": "nested"}}

	out := convert.NestedToUnified(in)
	fmt.Println(in["metadata"].(map[string]any)["format"], out["metadata"].(map[string]any)["format"])
	// Output:
	// nested unified
}
