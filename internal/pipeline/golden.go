// Package pipeline loads and runs the end-to-end golden fixtures
// (SPEC_FULL section 2.4): one txtar archive per scenario under
// testdata/, each holding a pfn source file and its expected generated
// code or type-error message, so new scenarios are added as fixture
// files rather than Go string literals.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/txtar"
)

// GoldenCase is one txtar archive's contents, loaded but not yet run.
type GoldenCase struct {
	// Name is the archive's file name relative to the fixtures
	// directory, without extension.
	Name string
	// Input is the contents of the archive's "input.pfn" file.
	Input string
	// WantContains is the contents of "expected", present on success
	// fixtures: a substring the generated host code must contain.
	WantContains string
	// WantError is the contents of "error", present on failure
	// fixtures: a substring the pipeline's error message must contain.
	WantError string
}

// LoadGoldenCases reads every *.txtar file in dir and parses it into a
// GoldenCase. Each archive must have an "input.pfn" file and at least
// one of "expected" or "error".
func LoadGoldenCases(dir string) ([]GoldenCase, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures dir %s: %w", dir, err)
	}

	var cases []GoldenCase
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txtar") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		archive := txtar.Parse(data)
		gc := GoldenCase{Name: strings.TrimSuffix(entry.Name(), ".txtar")}
		for _, f := range archive.Files {
			switch f.Name {
			case "input.pfn":
				gc.Input = string(f.Data)
			case "expected":
				gc.WantContains = string(f.Data)
			case "error":
				gc.WantError = string(f.Data)
			}
		}
		if gc.Input == "" {
			return nil, fmt.Errorf("%s: missing input.pfn file", path)
		}
		if gc.WantContains == "" && gc.WantError == "" {
			return nil, fmt.Errorf("%s: missing expected or error file", path)
		}
		cases = append(cases, gc)
	}
	return cases, nil
}
