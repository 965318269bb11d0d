package search

import (
	"fmt"

	"github.com/roach88/searchcond/internal/queryir"
)

// Operator is a search operator tag.
type Operator string

const (
	OpLike      Operator = "like"
	OpILike     Operator = "ilike"
	OpEq        Operator = "eq"
	OpGt        Operator = "gt"
	OpLt        Operator = "lt"
	OpGtEq      Operator = "gteq"
	OpLtEq      Operator = "lteq"
	OpDateRange Operator = "daterange"
)

// handler turns a resolved column and a raw term into a predicate.
type handler func(col queryir.ColumnRef, term any) (queryir.Predicate, error)

// operatorOrder lists the closed operator set in documentation order.
var operatorOrder = []Operator{OpLike, OpILike, OpEq, OpGt, OpLt, OpGtEq, OpLtEq, OpDateRange}

// registry maps every operator to its handler. It is never modified after
// package initialization.
var registry = map[Operator]handler{
	OpLike:      matchHandler(false),
	OpILike:     matchHandler(true),
	OpEq:        compareHandler(queryir.OpEq),
	OpGt:        compareHandler(queryir.OpGt),
	OpLt:        compareHandler(queryir.OpLt),
	OpGtEq:      compareHandler(queryir.OpGte),
	OpLtEq:      compareHandler(queryir.OpLte),
	OpDateRange: dateRangeHandler,
}

// Operators returns the supported operator tags.
func Operators() []Operator {
	out := make([]Operator, len(operatorOrder))
	copy(out, operatorOrder)
	return out
}

// ParseOperator reports whether s names a supported operator.
func ParseOperator(s string) (Operator, bool) {
	op := Operator(s)
	_, ok := registry[op]
	return op, ok
}

// Known reports whether op is in the supported set.
func (op Operator) Known() bool {
	_, ok := registry[op]
	return ok
}

func matchHandler(caseInsensitive bool) handler {
	return func(col queryir.ColumnRef, term any) (queryir.Predicate, error) {
		return queryir.Match{
			Column:          col,
			Pattern:         ContainsPattern(termString(term)),
			CaseInsensitive: caseInsensitive,
		}, nil
	}
}

func compareHandler(op queryir.CompareOp) handler {
	return func(col queryir.ColumnRef, term any) (queryir.Predicate, error) {
		return queryir.Compare{Column: col, Op: op, Value: term}, nil
	}
}

func dateRangeHandler(col queryir.ColumnRef, term any) (queryir.Predicate, error) {
	s, ok := term.(string)
	if !ok {
		return nil, malformedRange(fmt.Sprintf("term must be a string, got %T", term), nil)
	}
	r, err := ParseDateRange(s)
	if err != nil {
		return nil, err
	}
	return r.Predicate(col), nil
}

// termString renders a substring term. Strings and byte slices pass
// through as text; anything else is formatted with %v so a numeric search
// still finds its digits.
func termString(term any) string {
	switch v := term.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
