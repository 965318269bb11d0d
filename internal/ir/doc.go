// Package ir provides the canonical encoding used to identify query plans.
//
// Query plans are compared and cached by content, so every plan description
// is serialized through MarshalCanonical before hashing:
//   - Object keys sorted by UTF-16 code units (RFC 8785 ordering)
//   - Strings NFC normalized, no HTML escaping
//   - Times encoded as RFC 3339 strings in UTC
//
// ir imports nothing internal. Other internal packages import ir.
package ir
