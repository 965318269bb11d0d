// Package harness runs search scenarios: executable contract tests for a
// search config.
//
// A scenario seeds an in-memory SQLite database, loads a search config and
// runs a list of cases. Each case is a set of request parameters together
// with the record ids the compiled query must select, or the error code the
// build must fail with.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: posts_search
//	description: "Title search ignores case and treats % literally"
//	config: ../configs/posts.yaml   # relative to the scenario file
//	tables:
//	  - name: posts
//	    columns:
//	      - { name: title, type: TEXT }
//	      - { name: created_at, type: DATETIME }
//	    rows:
//	      - { id: p1, title: "Learning Go", created_at: "2020-01-01" }
//	cases:
//	  - name: title_ilike
//	    params: { q: "go" }
//	    expect:
//	      ids: [p1]
//	  - name: half_open_range
//	    params: { created: "2020-01-01" }
//	    expect:
//	      error: MALFORMED_RANGE
//
// Tables are created in order, each with an "id TEXT PRIMARY KEY" column.
// String values in DATETIME, TIMESTAMP and DATE columns are parsed with the
// same layouts daterange terms accept and stored in UTC, so range
// comparisons see a single representation.
//
// # Expectations
//
//   - ids: exact list of selected ids, in id order
//   - contains: ids that must be selected, others allowed
//   - count: number of selected records
//   - error: build error code (UNKNOWN_OPERATOR, MALFORMED_RANGE, INVALID_TERM)
//
// # Golden Files
//
// Results can be compared against golden files containing the canonical
// JSON snapshot of every case: compiled SQL, bound arguments and selected
// ids. See RunWithGolden and Snapshot.
package harness
