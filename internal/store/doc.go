// Package store provides a SQLite record store for evaluating compiled
// search conditions.
//
// Compiled SQL from package querysql runs against a store to observe which
// records a set of conditions selects. Tests use it to check operator
// semantics end to end; the CLI uses it for dry runs against a sample
// database.
//
// # Database Configuration
//
//   - case_sensitive_like=ON: LIKE distinguishes case; ilike folds both sides
//   - casefold(x): Unicode case folding for text, registered per connection
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//   - Single connection: pragmas are per connection
//
// Every table has a TEXT primary key "id". Rows inserted without one get a
// time-ordered UUIDv7 so ORDER BY id follows insertion order.
package store
