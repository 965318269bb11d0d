package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a search scenario: seed data, a search config and the
// cases to run against them.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is the path to the search config (.yaml, .yml or .cue).
	// Relative paths are resolved against the scenario file's directory.
	Config string `yaml:"config"`

	// Strict forces strict operator handling regardless of the config.
	Strict bool `yaml:"strict,omitempty"`

	// Tables are created and seeded in order.
	Tables []Table `yaml:"tables"`

	// Cases are run in order, each against the same seeded data.
	Cases []Case `yaml:"cases"`
}

// Table is a seeded table. Every table gets an "id TEXT PRIMARY KEY" column.
type Table struct {
	Name    string           `yaml:"name"`
	Columns []ColumnDef      `yaml:"columns"`
	Rows    []map[string]any `yaml:"rows"`
}

// ColumnDef declares a column and its SQLite type.
type ColumnDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Case is one set of request parameters and its expected outcome.
type Case struct {
	// Name identifies the case in results. Defaults to "case[i]".
	Name string `yaml:"name,omitempty"`

	// Params are the raw request parameters.
	Params map[string]string `yaml:"params"`

	// Expect is the expected outcome.
	Expect Expect `yaml:"expect"`
}

// Expect specifies the expected outcome of a case. Error is exclusive with
// the selection expectations.
type Expect struct {
	// IDs is the exact selection in id order. A present but empty list
	// expects no records.
	IDs []string `yaml:"ids,omitempty"`

	// Contains lists ids that must be selected.
	Contains []string `yaml:"contains,omitempty"`

	// Count is the expected number of selected records.
	Count *int `yaml:"count,omitempty"`

	// Error is the expected build error code.
	Error string `yaml:"error,omitempty"`
}

func (e Expect) empty() bool {
	return e.IDs == nil && e.Contains == nil && e.Count == nil && e.Error == ""
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "case:" vs "cases:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the config path BEFORE validation so existence is checked
	// against the real location.
	if scenario.Config != "" && !filepath.IsAbs(scenario.Config) {
		scenario.Config = filepath.Join(filepath.Dir(path), scenario.Config)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Config == "" {
		return fmt.Errorf("config is required")
	}
	if _, err := os.Stat(s.Config); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", s.Config)
	}

	if len(s.Tables) == 0 {
		return fmt.Errorf("tables list is required and must be non-empty")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	tables := map[string]bool{}
	for i, t := range s.Tables {
		if t.Name == "" {
			return fmt.Errorf("tables[%d]: name is required", i)
		}
		if tables[t.Name] {
			return fmt.Errorf("tables[%d]: duplicate table %q", i, t.Name)
		}
		tables[t.Name] = true

		for j, c := range t.Columns {
			if c.Name == "" || c.Type == "" {
				return fmt.Errorf("tables[%d].columns[%d]: name and type are required", i, j)
			}
		}
		for j, row := range t.Rows {
			if id, ok := row["id"].(string); !ok || id == "" {
				return fmt.Errorf("tables[%d].rows[%d]: string id is required", i, j)
			}
		}
	}

	for i, c := range s.Cases {
		if c.Expect.empty() {
			return fmt.Errorf("cases[%d]: expect is required", i)
		}
		if c.Expect.Error != "" && (c.Expect.IDs != nil || c.Expect.Contains != nil || c.Expect.Count != nil) {
			return fmt.Errorf("cases[%d].expect: error cannot be combined with ids, contains or count", i)
		}
	}

	return nil
}

// CaseName returns the display name of case i.
func (s *Scenario) CaseName(i int) string {
	if s.Cases[i].Name != "" {
		return s.Cases[i].Name
	}
	return fmt.Sprintf("case[%d]", i)
}
