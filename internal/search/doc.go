// Package search builds search conditions onto a queryir.Queryable.
//
// A search condition is described by a field, an operator tag, a raw term
// and a binding flag:
//
//	q, err := search.Apply(q, "title", search.OpILike, "go", true)
//
// The operator set is closed:
//
//	like       case-sensitive substring match
//	ilike      case-insensitive substring match
//	eq         field = term
//	gt         field > term
//	lt         field < term
//	gteq       field >= term
//	lteq       field <= term
//	daterange  field >= from AND field <= to, term is "from|to"
//
// An unknown operator tag leaves the queryable unchanged. A Builder created
// with WithStrict(true) reports ErrUnknownOperator instead.
//
// The binding flag selects which relation the column resolves against: the
// root binding when true, the most recently joined binding when false.
// Binding resolution happens once, before the operator's handler runs, so
// every operator resolves columns the same way.
//
// Terms are never interpolated into query text. Comparison terms are passed
// through as opaque parameters. Substring terms have their wildcard
// characters escaped before the builder adds its own.
package search
