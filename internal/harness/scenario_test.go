package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes a scenario next to a copy of the posts config and
// returns its path.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()

	config, err := os.ReadFile(filepath.Join("testdata", "configs", "posts.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts.yaml"), config, 0644))

	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const minimalScenario = `name: minimal
description: "one table, one case"
config: posts.yaml
tables:
  - name: users
    columns: [{ name: name, type: TEXT }]
  - name: posts
    columns: [{ name: title, type: TEXT }, { name: author_id, type: TEXT }]
    rows:
      - { id: p1, title: "Go", author_id: u1 }
cases:
  - params: { q: "rust" }
    expect:
      ids: []
`

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "posts_search.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "posts_search", s.Name)
	assert.Equal(t, filepath.Join("testdata", "scenarios", "..", "configs", "posts.yaml"), s.Config)
	require.Len(t, s.Tables, 2)
	assert.Equal(t, "users", s.Tables[0].Name)
	assert.Equal(t, []ColumnDef{{Name: "name", Type: "TEXT"}}, s.Tables[0].Columns)
	assert.Equal(t, map[string]any{"id": "p1", "title": "Learning Go", "views": 5,
		"created_at": "2019-12-31 23:59:59", "author_id": "u1"}, s.Tables[1].Rows[0])

	require.Len(t, s.Cases, 10)
	assert.Equal(t, map[string]string{"q": "go"}, s.Cases[0].Params)
	assert.Equal(t, []string{"p1", "p2", "p3"}, s.Cases[0].Expect.IDs)
	assert.Equal(t, "MALFORMED_RANGE", s.Cases[7].Expect.Error)
}

func TestLoadScenario_EmptyIDsIsAnExpectation(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, minimalScenario))
	require.NoError(t, err)

	assert.NotNil(t, s.Cases[0].Expect.IDs)
	assert.Empty(t, s.Cases[0].Expect.IDs)
	assert.Equal(t, "case[0]", s.CaseName(0))
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, minimalScenario+"case: []\n")

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestValidateScenario(t *testing.T) {
	count := 1
	valid := func() *Scenario {
		return &Scenario{
			Name:        "s",
			Description: "d",
			Config:      filepath.Join("testdata", "configs", "posts.yaml"),
			Tables: []Table{{
				Name:    "posts",
				Columns: []ColumnDef{{Name: "title", Type: "TEXT"}},
				Rows:    []map[string]any{{"id": "p1"}},
			}},
			Cases: []Case{{Params: map[string]string{}, Expect: Expect{Count: &count}}},
		}
	}
	require.NoError(t, validateScenario(valid()))

	testCases := []struct {
		name   string
		mutate func(s *Scenario)
		want   string
	}{
		{"missing name", func(s *Scenario) { s.Name = "" }, "name is required"},
		{"missing description", func(s *Scenario) { s.Description = "" }, "description is required"},
		{"missing config", func(s *Scenario) { s.Config = "" }, "config is required"},
		{"config not found", func(s *Scenario) { s.Config = "nope.yaml" }, "config file not found"},
		{"no tables", func(s *Scenario) { s.Tables = nil }, "tables list is required"},
		{"no cases", func(s *Scenario) { s.Cases = nil }, "cases list is required"},
		{"unnamed table", func(s *Scenario) { s.Tables[0].Name = "" }, "tables[0]: name is required"},
		{"duplicate table", func(s *Scenario) { s.Tables = append(s.Tables, s.Tables[0]) }, `duplicate table "posts"`},
		{"column without type", func(s *Scenario) { s.Tables[0].Columns[0].Type = "" }, "name and type are required"},
		{"row without id", func(s *Scenario) { s.Tables[0].Rows[0] = map[string]any{"title": "x"} }, "string id is required"},
		{"empty expect", func(s *Scenario) { s.Cases[0].Expect = Expect{} }, "cases[0]: expect is required"},
		{"error with ids", func(s *Scenario) {
			s.Cases[0].Expect = Expect{Error: "MALFORMED_RANGE", IDs: []string{}}
		}, "error cannot be combined"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := valid()
			tc.mutate(s)
			err := validateScenario(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
