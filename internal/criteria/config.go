package criteria

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/searchcond/internal/queryir"
	"github.com/roach88/searchcond/internal/search"
)

// Binding values for FieldConfig.Binding.
const (
	BindingBase   = "base"
	BindingJoined = "joined"
)

// Term types for FieldConfig.Type.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeBool   = "bool"
)

// Config describes the searchable surface of one base table.
type Config struct {
	// Table is the base table. Alias defaults to Table.
	Table string `yaml:"table" json:"table"`
	Alias string `yaml:"alias,omitempty" json:"alias,omitempty"`

	// Joins are applied in order; the last one is the "joined" binding.
	Joins []JoinConfig `yaml:"joins,omitempty" json:"joins,omitempty"`

	// Fields maps request parameters to conditions, in application order.
	Fields []FieldConfig `yaml:"fields" json:"fields"`

	// Strict rejects unknown operators instead of skipping them.
	Strict bool `yaml:"strict,omitempty" json:"strict,omitempty"`
}

// JoinConfig is an inner join on Left = Right, each written "alias.column".
type JoinConfig struct {
	Table string `yaml:"table" json:"table"`
	Alias string `yaml:"alias" json:"alias"`
	Left  string `yaml:"left" json:"left"`
	Right string `yaml:"right" json:"right"`
}

// FieldConfig maps one request parameter to a search condition.
type FieldConfig struct {
	Param    string `yaml:"param" json:"param"`
	Field    string `yaml:"field" json:"field"`
	Operator string `yaml:"operator" json:"operator"`

	// Binding is "base" (default) or "joined".
	Binding string `yaml:"binding,omitempty" json:"binding,omitempty"`

	// Type converts the raw parameter: "string" (default), "int", "float"
	// or "bool". Ignored for daterange, whose term is always a string.
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
}

// BindToBase reports whether the field resolves against the base table.
func (f FieldConfig) BindToBase() bool {
	return f.Binding != BindingJoined
}

// Validate checks the config for structural errors. Unknown operators are
// errors only in strict configs; see Warnings.
func (c *Config) Validate() error {
	var errs []error
	if c.Table == "" {
		errs = append(errs, errors.New("table is required"))
	}
	if len(c.Fields) == 0 {
		errs = append(errs, errors.New("at least one field is required"))
	}

	for i, j := range c.Joins {
		if j.Table == "" || j.Alias == "" {
			errs = append(errs, fmt.Errorf("joins[%d]: table and alias are required", i))
		}
		if _, err := parseColumn(j.Left); err != nil {
			errs = append(errs, fmt.Errorf("joins[%d].left: %w", i, err))
		}
		if _, err := parseColumn(j.Right); err != nil {
			errs = append(errs, fmt.Errorf("joins[%d].right: %w", i, err))
		}
	}

	params := map[string]bool{}
	for i, f := range c.Fields {
		where := fmt.Sprintf("fields[%d]", i)
		if f.Param == "" {
			errs = append(errs, fmt.Errorf("%s: param is required", where))
		} else if params[f.Param] {
			errs = append(errs, fmt.Errorf("%s: duplicate param %q", where, f.Param))
		}
		params[f.Param] = true

		if f.Field == "" {
			errs = append(errs, fmt.Errorf("%s: field is required", where))
		}
		if c.Strict && !search.Operator(f.Operator).Known() {
			errs = append(errs, fmt.Errorf("%s: unknown operator %q", where, f.Operator))
		}
		switch f.Binding {
		case "", BindingBase, BindingJoined:
		default:
			errs = append(errs, fmt.Errorf("%s: binding must be %q or %q, got %q", where, BindingBase, BindingJoined, f.Binding))
		}
		switch f.Type {
		case "", TypeString, TypeInt, TypeFloat, TypeBool:
		default:
			errs = append(errs, fmt.Errorf("%s: unknown type %q", where, f.Type))
		}
	}

	return errors.Join(errs...)
}

// Warnings lists problems that do not stop a lenient config from working.
func (c *Config) Warnings() []string {
	var out []string
	for i, f := range c.Fields {
		if !search.Operator(f.Operator).Known() {
			out = append(out, fmt.Sprintf("fields[%d]: unknown operator %q, param %q will be ignored", i, f.Operator, f.Param))
		}
	}
	return out
}

// Queryable builds the base plan: the table plus its joins.
func (c *Config) Queryable() (queryir.Queryable, error) {
	alias := c.Alias
	if alias == "" {
		alias = c.Table
	}
	q := queryir.FromAs(c.Table, alias)

	for i, j := range c.Joins {
		left, err := parseColumn(j.Left)
		if err != nil {
			return queryir.Queryable{}, fmt.Errorf("joins[%d].left: %w", i, err)
		}
		right, err := parseColumn(j.Right)
		if err != nil {
			return queryir.Queryable{}, fmt.Errorf("joins[%d].right: %w", i, err)
		}
		q = q.Join(j.Table, j.Alias, queryir.JoinOn{Left: left, Right: right})
	}
	return q, nil
}

// parseColumn parses "alias.column".
func parseColumn(s string) (queryir.ColumnRef, error) {
	alias, field, ok := strings.Cut(s, ".")
	if !ok || alias == "" || field == "" {
		return queryir.ColumnRef{}, fmt.Errorf("expected alias.column, got %q", s)
	}
	return queryir.Col(alias, queryir.FieldRef(field)), nil
}
