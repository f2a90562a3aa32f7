package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mkTask builds a raw task without going through CreateTask so tests
// control every field.
func mkTask(title string, createdAt time.Time, mods ...func(*Task)) Task {
	t := Task{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Version:   SchemaVersion,
	}
	for _, mod := range mods {
		mod(&t)
	}
	return t
}

func childOf(parent Task) func(*Task) {
	id := parent.ID
	return func(t *Task) { t.ParentID = &id }
}

func withDue(due time.Time) func(*Task) {
	return func(t *Task) { t.DueAt = &due }
}

func withDone() func(*Task) {
	return func(t *Task) { t.Completed = true }
}

func withDeleted(at time.Time) func(*Task) {
	return func(t *Task) { t.DeletedAt = &at }
}

func TestBuildTree_OrderAndDepth(t *testing.T) {
	a := mkTask("A", testNow)
	b := mkTask("B", testNow.Add(time.Minute), childOf(a))
	c := mkTask("C", testNow.Add(2*time.Minute), childOf(a))

	// Children listed before the parent on purpose.
	roots := BuildTree([]Task{c, b, a})

	require.Len(t, roots, 1)
	assert.Equal(t, "A", roots[0].Task.Title)
	assert.Equal(t, 0, roots[0].Depth)

	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "B", roots[0].Children[0].Task.Title)
	assert.Equal(t, "C", roots[0].Children[1].Task.Title)
	assert.Equal(t, 1, roots[0].Children[0].Depth)
	assert.Equal(t, 1, roots[0].Children[1].Depth)
}

func TestBuildTree_RootsSortedByCreatedAt(t *testing.T) {
	late := mkTask("late", testNow.Add(time.Hour))
	early := mkTask("early", testNow)

	roots := BuildTree([]Task{late, early})
	require.Len(t, roots, 2)
	assert.Equal(t, "early", roots[0].Task.Title)
	assert.Equal(t, "late", roots[1].Task.Title)
}

func TestBuildTree_CreatedAtTieKeepsInputOrder(t *testing.T) {
	first := mkTask("first", testNow)
	second := mkTask("second", testNow)

	roots := BuildTree([]Task{first, second})
	require.Len(t, roots, 2)
	assert.Equal(t, "first", roots[0].Task.Title)
	assert.Equal(t, "second", roots[1].Task.Title)
}

func TestBuildTree_ExcludesDeleted(t *testing.T) {
	a := mkTask("A", testNow)
	gone := mkTask("gone", testNow, withDeleted(testNow))

	roots := BuildTree([]Task{a, gone})
	require.Len(t, roots, 1)
	assert.Equal(t, "A", roots[0].Task.Title)
}

func TestBuildTree_DanglingParentBecomesRoot(t *testing.T) {
	missing := "no-such-id"
	orphan := mkTask("orphan", testNow, func(t *Task) { t.ParentID = &missing })

	roots := BuildTree([]Task{orphan})
	require.Len(t, roots, 1)
	assert.Equal(t, 0, roots[0].Depth)
}

func TestBuildTree_DeletedParentPromotesChild(t *testing.T) {
	parent := mkTask("parent", testNow, withDeleted(testNow))
	child := mkTask("child", testNow.Add(time.Minute), childOf(parent))

	roots := BuildTree([]Task{parent, child})
	require.Len(t, roots, 1)
	assert.Equal(t, "child", roots[0].Task.Title)
	assert.Equal(t, 0, roots[0].Depth)
}

func TestBuildTree_CycleDegradesToRoot(t *testing.T) {
	a := mkTask("A", testNow)
	b := mkTask("B", testNow.Add(time.Minute))
	a.ParentID = &b.ID
	b.ParentID = &a.ID

	roots := BuildTree([]Task{a, b})

	flat := Flatten(roots)
	require.Len(t, flat, 2, "both cycle members must appear exactly once")
	ids := map[string]bool{}
	for _, n := range flat {
		ids[n.Task.ID] = true
	}
	assert.True(t, ids[a.ID])
	assert.True(t, ids[b.ID])
}

func TestFlatten_RoundTrip(t *testing.T) {
	a := mkTask("A", testNow)
	b := mkTask("B", testNow.Add(time.Minute), childOf(a))
	c := mkTask("C", testNow.Add(2*time.Minute), childOf(b))
	d := mkTask("D", testNow.Add(3*time.Minute))
	gone := mkTask("gone", testNow, withDeleted(testNow))

	flat := Flatten(BuildTree([]Task{d, gone, c, b, a}))

	require.Len(t, flat, 4)
	titles := make([]string, len(flat))
	for i, n := range flat {
		titles[i] = n.Task.Title
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, titles, "pre-order with sibling sort")

	// Depth equals the number of ancestors for every node.
	all := []Task{a, b, c, d}
	for _, n := range flat {
		assert.Equal(t, len(AncestorIDs(n.Task.ID, all)), n.Depth, "task %s", n.Task.Title)
	}
}

func TestDescendantIDs(t *testing.T) {
	a := mkTask("A", testNow)
	b := mkTask("B", testNow, childOf(a))
	c := mkTask("C", testNow, childOf(b))
	d := mkTask("D", testNow)
	all := []Task{a, b, c, d}

	got := DescendantIDs(a.ID, all)
	assert.ElementsMatch(t, []string{b.ID, c.ID}, got)
	assert.NotContains(t, got, a.ID, "task itself is excluded")
	assert.Empty(t, DescendantIDs(d.ID, all))
}

func TestDescendantIDs_SkipsDeleted(t *testing.T) {
	a := mkTask("A", testNow)
	b := mkTask("B", testNow, childOf(a), withDeleted(testNow))
	c := mkTask("C", testNow, childOf(b))

	got := DescendantIDs(a.ID, []Task{a, b, c})
	assert.Empty(t, got, "deleted child cuts off its subtree")
}

func TestAncestorIDs_OrderNearestFirst(t *testing.T) {
	grand := mkTask("grand", testNow)
	parent := mkTask("parent", testNow, childOf(grand))
	leaf := mkTask("leaf", testNow, childOf(parent))
	all := []Task{grand, parent, leaf}

	assert.Equal(t, []string{parent.ID, grand.ID}, AncestorIDs(leaf.ID, all))
	assert.Empty(t, AncestorIDs(grand.ID, all))
}

func TestAncestorIDs_StopsAtDeletedAncestor(t *testing.T) {
	grand := mkTask("grand", testNow, withDeleted(testNow))
	parent := mkTask("parent", testNow, childOf(grand))
	leaf := mkTask("leaf", testNow, childOf(parent))

	got := AncestorIDs(leaf.ID, []Task{grand, parent, leaf})
	assert.Equal(t, []string{parent.ID}, got)
}

func TestAncestorIDs_CycleSafe(t *testing.T) {
	a := mkTask("A", testNow)
	b := mkTask("B", testNow)
	a.ParentID = &b.ID
	b.ParentID = &a.ID

	got := AncestorIDs(a.ID, []Task{a, b})
	assert.Equal(t, []string{b.ID}, got, "walk must terminate at the cycle")
}

func TestAncestorTitles(t *testing.T) {
	grand := mkTask("Projects", testNow)
	parent := mkTask("House", testNow, childOf(grand))
	leaf := mkTask("Paint door", testNow, childOf(parent))

	got := AncestorTitles(leaf.ID, []Task{grand, parent, leaf})
	assert.Equal(t, []string{"House", "Projects"}, got)
}

func TestEffectiveDueDate(t *testing.T) {
	due := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	grandDue := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)

	grand := mkTask("grand", testNow, withDue(grandDue))
	parent := mkTask("parent", testNow, childOf(grand))
	leaf := mkTask("leaf", testNow, childOf(parent))
	all := []Task{grand, parent, leaf}

	// Leaf has no own date and the parent has none either: the
	// grandparent's date flows through.
	got := EffectiveDueDate(leaf, all)
	require.NotNil(t, got)
	assert.Equal(t, grandDue, *got)

	// Own date wins over any inherited one.
	leafOwn := leaf
	leafOwn.DueAt = &due
	got = EffectiveDueDate(leafOwn, append(all, leafOwn))
	require.NotNil(t, got)
	assert.Equal(t, due, *got)

	// No date anywhere in the chain.
	bare := mkTask("bare", testNow)
	assert.Nil(t, EffectiveDueDate(bare, []Task{bare}))
}
