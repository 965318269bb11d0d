package queryir

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_SamePlanSameHash(t *testing.T) {
	pred := Compare{Column: Col("posts", "views"), Op: OpGt, Value: 10}

	a, err := From("posts").Where(pred).Fingerprint()
	require.NoError(t, err)
	b, err := From("posts").Where(pred).Fingerprint()
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFingerprint_DistinguishesBinding(t *testing.T) {
	q := joinedPosts()

	onAuthor, err := q.Where(Compare{Column: Col("author", "name"), Op: OpEq, Value: "x"}).Fingerprint()
	require.NoError(t, err)
	onEditor, err := q.Where(Compare{Column: Col("editor", "name"), Op: OpEq, Value: "x"}).Fingerprint()
	require.NoError(t, err)

	assert.NotEqual(t, onAuthor, onEditor)
}

func TestFingerprint_TimeValues(t *testing.T) {
	ts := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	q := From("posts").Where(Compare{Column: Col("posts", "created_at"), Op: OpGte, Value: ts})

	_, err := q.Fingerprint()
	assert.NoError(t, err)
}

func TestFingerprint_UnsupportedValue(t *testing.T) {
	q := From("posts").Where(Compare{Column: Col("posts", "x"), Op: OpEq, Value: struct{}{}})

	_, err := q.Fingerprint()
	assert.Error(t, err)
}

func TestDescribePredicate(t *testing.T) {
	desc := DescribePredicate(And{Predicates: []Predicate{
		Match{Column: Col("posts", "title"), Pattern: "%a%", CaseInsensitive: true},
	}})

	assert.Equal(t, map[string]any{
		"kind": "and",
		"predicates": []any{
			map[string]any{
				"kind":             "match",
				"column":           "posts.title",
				"pattern":          "%a%",
				"case_insensitive": true,
			},
		},
	}, desc)
}

func TestPredicateFingerprint(t *testing.T) {
	a, err := PredicateFingerprint(Match{Column: Col("p", "t"), Pattern: "%a%"})
	require.NoError(t, err)
	b, err := PredicateFingerprint(Match{Column: Col("p", "t"), Pattern: "%a%", CaseInsensitive: true})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
