package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/searchcond/internal/ir"
)

// Snapshot converts a result to the map written to golden files. Error
// messages are left out; the code is what a golden file pins down.
func Snapshot(scenarioName string, result *Result) map[string]any {
	cases := make([]any, len(result.Cases))
	for i, c := range result.Cases {
		ids := make([]any, len(c.IDs))
		for j, id := range c.IDs {
			ids[j] = id
		}

		params := make(map[string]any, len(c.Params))
		for k, v := range c.Params {
			params[k] = v
		}

		entry := map[string]any{
			"name":   c.Name,
			"params": params,
			"ids":    ids,
		}
		if c.SQL != "" {
			entry["sql"] = c.SQL
			entry["args"] = slices.Clone(c.Args)
		}
		if c.Error != "" {
			entry["error"] = c.Error
		}
		cases[i] = entry
	}

	return map[string]any{
		"scenario_name": scenarioName,
		"cases":         cases,
	}
}

// MarshalSnapshot renders the snapshot as canonical JSON.
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	return ir.MarshalCanonical(Snapshot(scenarioName, result))
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}

// GoldenPath returns the golden file for a scenario file: a "golden"
// directory next to it, named after the scenario file.
func GoldenPath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// WriteGolden writes the result snapshot to path, creating its directory.
func WriteGolden(path, scenarioName string, result *Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// MatchGolden reports whether the result snapshot equals the golden file
// at path byte for byte.
func MatchGolden(path, scenarioName string, result *Result) (bool, error) {
	want, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}

	got, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return false, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return bytes.Equal(want, got), nil
}
