package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/searchcond/internal/queryir"
)

func validConfig() *Config {
	return &Config{
		Table: "posts",
		Joins: []JoinConfig{{Table: "users", Alias: "author", Left: "posts.author_id", Right: "author.id"}},
		Fields: []FieldConfig{
			{Param: "q", Field: "title", Operator: "ilike"},
			{Param: "author", Field: "name", Operator: "eq", Binding: BindingJoined},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing table", func(c *Config) { c.Table = "" }, "table is required"},
		{"no fields", func(c *Config) { c.Fields = nil }, "at least one field"},
		{"duplicate param", func(c *Config) { c.Fields[1].Param = "q" }, `duplicate param "q"`},
		{"missing param", func(c *Config) { c.Fields[0].Param = "" }, "param is required"},
		{"missing field", func(c *Config) { c.Fields[0].Field = "" }, "field is required"},
		{"bad binding", func(c *Config) { c.Fields[0].Binding = "root" }, `got "root"`},
		{"bad type", func(c *Config) { c.Fields[0].Type = "decimal" }, `unknown type "decimal"`},
		{"bad join column", func(c *Config) { c.Joins[0].Left = "author_id" }, "joins[0].left"},
		{"missing join alias", func(c *Config) { c.Joins[0].Alias = "" }, "table and alias are required"},
		{"strict unknown operator", func(c *Config) {
			c.Strict = true
			c.Fields[0].Operator = "pizza"
		}, `unknown operator "pizza"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidate_LenientUnknownOperatorIsWarning(t *testing.T) {
	c := validConfig()
	c.Fields[0].Operator = "pizza"

	assert.NoError(t, c.Validate())
	require.Len(t, c.Warnings(), 1)
	assert.Contains(t, c.Warnings()[0], `param "q" will be ignored`)
}

func TestQueryable(t *testing.T) {
	q, err := validConfig().Queryable()
	require.NoError(t, err)

	assert.Equal(t, queryir.Binding{Alias: "posts", Table: "posts"}, q.Root())
	assert.Equal(t, queryir.Binding{Alias: "author", Table: "users"}, q.Last())
	assert.Equal(t, queryir.JoinOn{
		Left:  queryir.Col("posts", "author_id"),
		Right: queryir.Col("author", "id"),
	}, q.Joins()[0].On)
	assert.True(t, queryir.Validate(q).Valid)
}

func TestQueryable_Alias(t *testing.T) {
	c := validConfig()
	c.Alias = "p"
	c.Joins[0].Left = "p.author_id"

	q, err := c.Queryable()
	require.NoError(t, err)
	assert.Equal(t, "p", q.Root().Alias)
}

func TestFieldConfig_BindToBase(t *testing.T) {
	assert.True(t, FieldConfig{}.BindToBase())
	assert.True(t, FieldConfig{Binding: BindingBase}.BindToBase())
	assert.False(t, FieldConfig{Binding: BindingJoined}.BindToBase())
}
