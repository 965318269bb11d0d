package harness

import (
	"fmt"
	"slices"
)

// EvaluateExpect checks an observed case against its expectation and
// returns one message per failed check. An empty slice means the case
// passed.
func EvaluateExpect(expect Expect, got CaseResult) []string {
	var errs []string

	if expect.Error != "" {
		if got.Error != expect.Error {
			errs = append(errs, fmt.Sprintf("%s: expected error %s, got %s", got.Name, expect.Error, describeOutcome(got)))
		}
		return errs
	}

	// Every other expectation assumes the build succeeded.
	if got.Error != "" {
		return append(errs, fmt.Sprintf("%s: unexpected error %s: %s", got.Name, got.Error, got.Message))
	}

	if expect.IDs != nil && !slices.Equal(expect.IDs, got.IDs) {
		errs = append(errs, fmt.Sprintf("%s: expected ids %v, got %v", got.Name, expect.IDs, got.IDs))
	}

	for _, id := range expect.Contains {
		if !slices.Contains(got.IDs, id) {
			errs = append(errs, fmt.Sprintf("%s: expected %s to be selected, got %v", got.Name, id, got.IDs))
		}
	}

	if expect.Count != nil && *expect.Count != len(got.IDs) {
		errs = append(errs, fmt.Sprintf("%s: expected %d record(s), got %d", got.Name, *expect.Count, len(got.IDs)))
	}

	return errs
}

func describeOutcome(got CaseResult) string {
	if got.Error != "" {
		return got.Error
	}
	return fmt.Sprintf("success with ids %v", got.IDs)
}
