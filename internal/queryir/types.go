package queryir

import (
	"fmt"
	"reflect"
	"slices"
)

// FieldRef identifies a column on a relation. Search terms are never
// converted to a FieldRef; only configuration names columns.
type FieldRef string

// Binding is a named reference to a table within a query's scope.
type Binding struct {
	Alias string // Name used to qualify columns (e.g., "author")
	Table string // Underlying table (e.g., "users")
}

// ColumnRef is a column resolved against a specific binding.
type ColumnRef struct {
	Binding string   // Binding alias
	Field   FieldRef // Column on that binding
}

// Col is shorthand for constructing a ColumnRef.
func Col(binding string, field FieldRef) ColumnRef {
	return ColumnRef{Binding: binding, Field: field}
}

// String returns "alias.field".
func (c ColumnRef) String() string {
	return fmt.Sprintf("%s.%s", c.Binding, c.Field)
}

// JoinOn is an equi-join condition between two columns.
type JoinOn struct {
	Left  ColumnRef
	Right ColumnRef
}

// JoinSpec is a joined binding together with its join condition.
// Only inner joins exist.
type JoinSpec struct {
	Binding
	On JoinOn
}

// Queryable is an immutable query plan.
//
// The zero value has no root binding and is not useful; construct with From
// or FromAs.
type Queryable struct {
	root    Binding
	joins   []JoinSpec
	filters []Predicate
}

// From starts a plan on table, using the table name as its alias.
func From(table string) Queryable {
	return FromAs(table, table)
}

// FromAs starts a plan on table under the given alias.
func FromAs(table, alias string) Queryable {
	return Queryable{root: Binding{Alias: alias, Table: table}}
}

// Join returns a new plan with table joined under alias.
// The joined binding becomes Last().
func (q Queryable) Join(table, alias string, on JoinOn) Queryable {
	next := q.clone()
	next.joins = append(next.joins, JoinSpec{
		Binding: Binding{Alias: alias, Table: table},
		On:      on,
	})
	return next
}

// Where returns a new plan with p added conjunctively after the existing
// filters.
func (q Queryable) Where(p Predicate) Queryable {
	next := q.clone()
	next.filters = append(next.filters, p)
	return next
}

// clone copies the slices so appends on the result never alias the receiver.
func (q Queryable) clone() Queryable {
	return Queryable{
		root:    q.root,
		joins:   slices.Clip(slices.Clone(q.joins)),
		filters: slices.Clip(slices.Clone(q.filters)),
	}
}

// Root returns the base binding.
func (q Queryable) Root() Binding {
	return q.root
}

// Last returns the most recently joined binding, or the root binding when
// no relation has been joined.
func (q Queryable) Last() Binding {
	if len(q.joins) == 0 {
		return q.root
	}
	return q.joins[len(q.joins)-1].Binding
}

// Bindings returns the binding chain: root first, then joins in order.
func (q Queryable) Bindings() []Binding {
	out := make([]Binding, 0, 1+len(q.joins))
	out = append(out, q.root)
	for _, j := range q.joins {
		out = append(out, j.Binding)
	}
	return out
}

// Joins returns a copy of the joined bindings.
func (q Queryable) Joins() []JoinSpec {
	return slices.Clone(q.joins)
}

// Filters returns a copy of the filter predicates in application order.
func (q Queryable) Filters() []Predicate {
	return slices.Clone(q.filters)
}

// Filter returns the combined filter: nil when there are no filters, the
// single predicate when there is one, otherwise an And of all of them.
func (q Queryable) Filter() Predicate {
	switch len(q.filters) {
	case 0:
		return nil
	case 1:
		return q.filters[0]
	default:
		return And{Predicates: q.Filters()}
	}
}

// Equal reports whether two plans have the same bindings and filters.
func (q Queryable) Equal(other Queryable) bool {
	return q.root == other.root &&
		reflect.DeepEqual(normalizeJoins(q.joins), normalizeJoins(other.joins)) &&
		reflect.DeepEqual(normalizeFilters(q.filters), normalizeFilters(other.filters))
}

func normalizeJoins(js []JoinSpec) []JoinSpec {
	if len(js) == 0 {
		return nil
	}
	return js
}

func normalizeFilters(ps []Predicate) []Predicate {
	if len(ps) == 0 {
		return nil
	}
	return ps
}

// Predicate represents a filter condition.
//
// This is a sealed interface - only types in this package implement it.
type Predicate interface {
	predicateNode()
}

// CompareOp is a binary comparison operator.
type CompareOp string

const (
	OpEq  CompareOp = "="
	OpGt  CompareOp = ">"
	OpLt  CompareOp = "<"
	OpGte CompareOp = ">="
	OpLte CompareOp = "<="
)

// Valid reports whether op is one of the known comparison operators.
func (op CompareOp) Valid() bool {
	switch op {
	case OpEq, OpGt, OpLt, OpGte, OpLte:
		return true
	default:
		return false
	}
}

// Compare represents <column> <op> <value>.
//
// Value is an opaque parameter. It is not converted or validated here;
// a type mismatch with the column surfaces when the query executes.
type Compare struct {
	Column ColumnRef
	Op     CompareOp
	Value  any
}

func (Compare) predicateNode() {}

// LikeEscape is the escape character used in Match patterns.
const LikeEscape = '\\'

// Match represents a LIKE pattern match.
//
// Pattern is final: literal wildcard characters in user input have already
// been escaped with LikeEscape and any structural wildcards added. Backends
// bind Pattern as a parameter.
type Match struct {
	Column          ColumnRef
	Pattern         string
	CaseInsensitive bool
}

func (Match) predicateNode() {}

// And represents a conjunction of predicates (all must be true).
// Empty Predicates means "always true".
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}
