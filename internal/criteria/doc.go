// Package criteria maps request parameters to search conditions.
//
// A Config names the base table, any joined relations, and one FieldConfig
// per accepted request parameter:
//
//	table: posts
//	joins:
//	  - table: users
//	    alias: author
//	    left: posts.author_id
//	    right: author.id
//	fields:
//	  - param: q
//	    field: title
//	    operator: ilike
//	  - param: author
//	    field: name
//	    operator: eq
//	    binding: joined
//	  - param: min_views
//	    field: views
//	    operator: gteq
//	    type: int
//
// Configs load from YAML or CUE. Build resolves parameters into
// search.Criterion values and folds them over the base queryable. Each
// request parameter applies at most one condition, in config order.
package criteria
