package search

import "strings"

// likeEscaper escapes the escape character itself first so an input
// backslash can never combine with a following wildcard.
var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// EscapeLike neutralizes LIKE wildcards in s using a backslash escape.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern returns a LIKE pattern matching any value that contains s
// literally.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
