package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinedPosts() Queryable {
	return From("posts").
		Join("users", "author", JoinOn{Left: Col("posts", "author_id"), Right: Col("author", "id")}).
		Join("users", "editor", JoinOn{Left: Col("posts", "editor_id"), Right: Col("editor", "id")})
}

func TestFrom_RootIsLast(t *testing.T) {
	q := From("posts")

	assert.Equal(t, Binding{Alias: "posts", Table: "posts"}, q.Root())
	assert.Equal(t, q.Root(), q.Last())
	assert.Len(t, q.Bindings(), 1)
	assert.Nil(t, q.Filter())
}

func TestFromAs(t *testing.T) {
	q := FromAs("posts", "p")
	assert.Equal(t, Binding{Alias: "p", Table: "posts"}, q.Root())
}

func TestJoin_LastIsMostRecent(t *testing.T) {
	q := joinedPosts()

	assert.Equal(t, "posts", q.Root().Alias)
	assert.Equal(t, "editor", q.Last().Alias)
	assert.Equal(t, []Binding{
		{Alias: "posts", Table: "posts"},
		{Alias: "author", Table: "users"},
		{Alias: "editor", Table: "users"},
	}, q.Bindings())
}

func TestWhere_DoesNotMutateReceiver(t *testing.T) {
	base := From("posts")
	withTitle := base.Where(Compare{Column: Col("posts", "title"), Op: OpEq, Value: "a"})

	assert.Empty(t, base.Filters())
	assert.Len(t, withTitle.Filters(), 1)
	assert.False(t, base.Equal(withTitle))
}

func TestWhere_SiblingsDoNotShareBacking(t *testing.T) {
	base := From("posts").Where(Compare{Column: Col("posts", "a"), Op: OpEq, Value: 1})

	left := base.Where(Compare{Column: Col("posts", "b"), Op: OpEq, Value: 2})
	right := base.Where(Compare{Column: Col("posts", "c"), Op: OpEq, Value: 3})

	require.Len(t, left.Filters(), 2)
	require.Len(t, right.Filters(), 2)
	assert.Equal(t, FieldRef("b"), left.Filters()[1].(Compare).Column.Field)
	assert.Equal(t, FieldRef("c"), right.Filters()[1].(Compare).Column.Field)
}

func TestJoin_DoesNotMutateReceiver(t *testing.T) {
	base := From("posts")
	joined := base.Join("users", "author", JoinOn{Left: Col("posts", "author_id"), Right: Col("author", "id")})

	assert.Empty(t, base.Joins())
	assert.Len(t, joined.Joins(), 1)
}

func TestFilter_CombinesWithAnd(t *testing.T) {
	a := Compare{Column: Col("posts", "a"), Op: OpGt, Value: 1}
	b := Match{Column: Col("posts", "b"), Pattern: "%x%"}

	single := From("posts").Where(a)
	assert.Equal(t, a, single.Filter())

	both := single.Where(b)
	assert.Equal(t, And{Predicates: []Predicate{a, b}}, both.Filter())
}

func TestFilters_ReturnsCopy(t *testing.T) {
	q := From("posts").Where(Compare{Column: Col("posts", "a"), Op: OpEq, Value: 1})

	filters := q.Filters()
	filters[0] = nil

	assert.NotNil(t, q.Filters()[0])
}

func TestEqual(t *testing.T) {
	pred := Compare{Column: Col("posts", "a"), Op: OpEq, Value: "x"}

	assert.True(t, From("posts").Equal(From("posts")))
	assert.True(t, From("posts").Where(pred).Equal(From("posts").Where(pred)))
	assert.False(t, From("posts").Equal(From("users")))
	assert.False(t, From("posts").Where(pred).Equal(From("posts")))
}

func TestCompareOp_Valid(t *testing.T) {
	for _, op := range []CompareOp{OpEq, OpGt, OpLt, OpGte, OpLte} {
		assert.True(t, op.Valid(), op)
	}
	assert.False(t, CompareOp("!=").Valid())
}

func TestColumnRef_String(t *testing.T) {
	assert.Equal(t, "author.name", Col("author", "name").String())
}
