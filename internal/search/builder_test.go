package search

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/searchcond/internal/queryir"
)

// postsWithUsers joins users twice so "name" exists on two relations.
func postsWithUsers() queryir.Queryable {
	return queryir.From("posts").
		Join("users", "author", queryir.JoinOn{
			Left:  queryir.Col("posts", "author_id"),
			Right: queryir.Col("author", "id"),
		}).
		Join("users", "editor", queryir.JoinOn{
			Left:  queryir.Col("posts", "editor_id"),
			Right: queryir.Col("editor", "id"),
		})
}

func TestApply_Operators(t *testing.T) {
	col := queryir.Col("posts", "title")
	testCases := []struct {
		op       Operator
		term     any
		expected queryir.Predicate
	}{
		{OpLike, "Go", queryir.Match{Column: col, Pattern: "%Go%"}},
		{OpILike, "Go", queryir.Match{Column: col, Pattern: "%Go%", CaseInsensitive: true}},
		{OpEq, "Go", queryir.Compare{Column: col, Op: queryir.OpEq, Value: "Go"}},
		{OpGt, 5, queryir.Compare{Column: col, Op: queryir.OpGt, Value: 5}},
		{OpLt, 5, queryir.Compare{Column: col, Op: queryir.OpLt, Value: 5}},
		{OpGtEq, 5, queryir.Compare{Column: col, Op: queryir.OpGte, Value: 5}},
		{OpLtEq, 5, queryir.Compare{Column: col, Op: queryir.OpLte, Value: 5}},
		{OpDateRange, "2020-01-01|2020-12-31", queryir.And{Predicates: []queryir.Predicate{
			queryir.Compare{Column: col, Op: queryir.OpGte, Value: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
			queryir.Compare{Column: col, Op: queryir.OpLte, Value: time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)},
		}}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.op), func(t *testing.T) {
			q, err := Apply(queryir.From("posts"), "title", tc.op, tc.term, true)
			require.NoError(t, err)

			require.Len(t, q.Filters(), 1)
			assert.Equal(t, tc.expected, q.Filters()[0])
		})
	}
}

func TestApply_CoversEveryOperator(t *testing.T) {
	assert.Len(t, registry, len(Operators()))
	for _, op := range Operators() {
		assert.True(t, op.Known(), op)
	}
}

func TestApply_ComparisonTermIsOpaque(t *testing.T) {
	type custom struct{ N int }
	term := custom{N: 1}

	q, err := Apply(queryir.From("posts"), "views", OpEq, term, true)
	require.NoError(t, err)

	assert.Equal(t, term, q.Filters()[0].(queryir.Compare).Value)
}

func TestApply_LikeEscapesWildcards(t *testing.T) {
	q, err := Apply(queryir.From("posts"), "title", OpLike, "100%_off", true)
	require.NoError(t, err)

	assert.Equal(t, `%100\%\_off%`, q.Filters()[0].(queryir.Match).Pattern)
}

func TestApply_LikeNonStringTerm(t *testing.T) {
	q, err := Apply(queryir.From("posts"), "title", OpILike, 42, true)
	require.NoError(t, err)

	assert.Equal(t, "%42%", q.Filters()[0].(queryir.Match).Pattern)
}

func TestApply_LikeByteSliceTerm(t *testing.T) {
	q, err := Apply(queryir.From("posts"), "title", OpLike, []byte("50%"), true)
	require.NoError(t, err)

	assert.Equal(t, `%50\%%`, q.Filters()[0].(queryir.Match).Pattern)
}

func TestApply_UnknownOperatorPassesThrough(t *testing.T) {
	base := postsWithUsers()

	q, err := Apply(base, "title", Operator("pizza"), "x", true)
	require.NoError(t, err)

	assert.True(t, q.Equal(base))
	assert.Equal(t, base, q)
	assert.Empty(t, q.Filters())
}

func TestApply_StrictUnknownOperator(t *testing.T) {
	base := queryir.From("posts")
	b := NewBuilder(WithStrict(true))

	q, err := b.Apply(base, "title", Operator("pizza"), "x", true)
	require.Error(t, err)

	assert.True(t, IsUnknownOperator(err))
	assert.ErrorIs(t, err, ErrUnknownOperator)
	assert.Contains(t, err.Error(), `"pizza"`)
	assert.Contains(t, err.Error(), "field=title")
	assert.Equal(t, base, q)
}

func TestApply_BindingTarget(t *testing.T) {
	base := postsWithUsers()

	onRoot, err := Apply(base, "name", OpEq, "ada", true)
	require.NoError(t, err)
	onLast, err := Apply(base, "name", OpEq, "ada", false)
	require.NoError(t, err)

	rootCol := onRoot.Filters()[0].(queryir.Compare).Column
	lastCol := onLast.Filters()[0].(queryir.Compare).Column

	assert.Equal(t, queryir.Col("posts", "name"), rootCol)
	assert.Equal(t, queryir.Col("editor", "name"), lastCol)
	assert.NotEqual(t, rootCol, lastCol)
}

func TestApply_BindingTargetSameForEveryOperator(t *testing.T) {
	base := postsWithUsers()
	terms := map[Operator]any{
		OpLike: "a", OpILike: "a", OpEq: 1, OpGt: 1, OpLt: 1, OpGtEq: 1, OpLtEq: 1,
		OpDateRange: "2020-01-01|2020-01-02",
	}

	for _, op := range Operators() {
		t.Run(string(op), func(t *testing.T) {
			for _, bindToBase := range []bool{true, false} {
				q, err := Apply(base, "updated_at", op, terms[op], bindToBase)
				require.NoError(t, err)

				want := "editor"
				if bindToBase {
					want = "posts"
				}
				for _, col := range columnsOf(q.Filters()[0]) {
					assert.Equal(t, want, col.Binding)
				}
			}
		})
	}
}

func TestApply_WithoutJoinsBothTargetsAreRoot(t *testing.T) {
	base := queryir.From("posts")

	a, err := Apply(base, "title", OpEq, "x", true)
	require.NoError(t, err)
	b, err := Apply(base, "title", OpEq, "x", false)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestApply_MalformedRangeLeavesQueryUnchanged(t *testing.T) {
	base := queryir.From("posts")

	q, err := Apply(base, "created_at", OpDateRange, "2020-01-01", true)
	require.Error(t, err)

	assert.True(t, IsMalformedRange(err))
	assert.Equal(t, base, q)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "created_at", se.Field)
	assert.Equal(t, "2020-01-01", se.Term)
}

func TestApply_DateRangeNonStringTerm(t *testing.T) {
	_, err := Apply(queryir.From("posts"), "created_at", OpDateRange, 20200101, true)
	assert.True(t, IsMalformedRange(err))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	base := queryir.From("posts").Where(queryir.Compare{Column: queryir.Col("posts", "a"), Op: queryir.OpEq, Value: 1})

	_, err := Apply(base, "title", OpLike, "x", true)
	require.NoError(t, err)

	assert.Len(t, base.Filters(), 1)
}

func TestApplyAll_FoldIsConjunctionInOrder(t *testing.T) {
	base := queryir.From("posts")
	criteria := []Criterion{
		{Field: "title", Operator: OpILike, Term: "go", BindToBase: true},
		{Field: "views", Operator: OpGtEq, Term: 10, BindToBase: true},
	}

	folded, err := ApplyAll(base, criteria)
	require.NoError(t, err)

	first, err := Apply(base, "title", OpILike, "go", true)
	require.NoError(t, err)
	second, err := Apply(base, "views", OpGtEq, 10, true)
	require.NoError(t, err)

	assert.Equal(t, queryir.And{Predicates: []queryir.Predicate{
		first.Filters()[0],
		second.Filters()[0],
	}}, folded.Filter())
}

func TestApplyAll_AbortsOnFirstFailure(t *testing.T) {
	base := queryir.From("posts")
	criteria := []Criterion{
		{Field: "title", Operator: OpLike, Term: "go", BindToBase: true},
		{Field: "created_at", Operator: OpDateRange, Term: "not-a-date|2020-12-31", BindToBase: true},
		{Field: "views", Operator: OpGt, Term: 1, BindToBase: true},
	}

	q, err := ApplyAll(base, criteria)
	require.Error(t, err)

	assert.True(t, IsMalformedRange(err))
	assert.Contains(t, err.Error(), "search criterion 1")
	assert.Contains(t, err.Error(), "field=created_at")
	assert.Contains(t, err.Error(), "not-a-date|2020-12-31")
	assert.Equal(t, base, q)
}

func TestApplyAll_Empty(t *testing.T) {
	base := queryir.From("posts")

	q, err := ApplyAll(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, q)
}

func TestBuilder_LogsSkippedOperator(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := NewBuilder(WithLogger(logger))

	_, err := b.Apply(queryir.From("posts"), "title", Operator("pizza"), "x", true)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "condition skipped")
	assert.Contains(t, buf.String(), "operator=pizza")
	assert.False(t, b.Strict())
}

func TestParseOperator(t *testing.T) {
	op, ok := ParseOperator("gteq")
	assert.True(t, ok)
	assert.Equal(t, OpGtEq, op)

	_, ok = ParseOperator("GTEQ")
	assert.False(t, ok)
}

func TestOperators_ReturnsCopy(t *testing.T) {
	ops := Operators()
	ops[0] = "pizza"

	assert.Equal(t, OpLike, Operators()[0])
}

// columnsOf collects every column a predicate references.
func columnsOf(p queryir.Predicate) []queryir.ColumnRef {
	switch pred := p.(type) {
	case queryir.Compare:
		return []queryir.ColumnRef{pred.Column}
	case queryir.Match:
		return []queryir.ColumnRef{pred.Column}
	case queryir.And:
		var cols []queryir.ColumnRef
		for _, sub := range pred.Predicates {
			cols = append(cols, columnsOf(sub)...)
		}
		return cols
	default:
		return nil
	}
}
