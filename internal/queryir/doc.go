// Package queryir provides the query-plan value that search conditions are
// composed onto.
//
// A Queryable is an immutable value: a root relation binding, an ordered
// chain of joined bindings, and a list of filter predicates combined with
// AND. Every method that "changes" a Queryable returns a new value and
// leaves the receiver untouched. Callers fold many conditions over one
// base plan and keep using the base.
//
// BINDING CHAIN:
//
//	From("posts")                    bindings: [posts]
//	  .Join("users", "author", ...)  bindings: [posts, author]
//	  .Join("users", "editor", ...)  bindings: [posts, author, editor]
//
// Root() is always the first binding. Last() is the most recently joined
// binding, or the root when nothing has been joined.
//
// PREDICATES:
//
// Predicate is a sealed interface using the marker method pattern:
//   - Compare: <column> <op> <value>, value bound as a parameter
//   - Match: <column> LIKE <pattern>, pattern already escaped
//   - And: conjunction (empty = always true)
//
// There is no Or or Not. Column references name a binding alias and a
// FieldRef. A FieldRef identifies a column and is never treated as data.
//
// Backends (see package querysql) render a Queryable to parameterized SQL.
// Values are never interpolated into query text.
package queryir
