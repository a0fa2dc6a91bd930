package testsupport

import (
	"encoding/json"
	"os"
	"testing"
)

// RenderCase is one markdown source and the markup expected from it.
type RenderCase struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Want   string `json:"want"`
}

// LoadFixture reads path or fails the test.
func LoadFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

// LoadGolden decodes the JSON golden file at path into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// LoadRenderCases reads a JSON array of render cases or fails the test.
func LoadRenderCases(tb testing.TB, path string) []RenderCase {
	tb.Helper()
	var cases []RenderCase
	if err := LoadGolden(path, &cases); err != nil {
		tb.Fatalf("load render cases %s: %v", path, err)
	}
	if len(cases) == 0 {
		tb.Fatalf("render cases %s: no cases", path)
	}
	return cases
}
