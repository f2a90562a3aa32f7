package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/burrow/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)

func mkTask(title string, opts ...func(*domain.Task)) domain.Task {
	t := domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: testNow,
		UpdatedAt: testNow,
		Version:   domain.SchemaVersion,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func withParent(parentID string) func(*domain.Task) {
	return func(t *domain.Task) { t.ParentID = &parentID }
}

func withDue(due time.Time) func(*domain.Task) {
	return func(t *domain.Task) { t.DueAt = &due }
}

func withDone() func(*domain.Task) {
	return func(t *domain.Task) { t.Completed = true }
}

func TestRowsFromTreeDepthAndDueInheritance(t *testing.T) {
	due := testNow.AddDate(0, 0, 3)
	parent := mkTask("Plan trip", withDue(due))
	child := mkTask("Book hotel", withParent(parent.ID))
	child.CreatedAt = testNow.Add(time.Minute)

	all := []domain.Task{parent, child}
	rows := RowsFromTree(domain.BuildTree(all), all)

	require.Len(t, rows, 2)
	assert.Equal(t, "Plan trip", rows[0].Task.Title)
	assert.Equal(t, 0, rows[0].Depth)
	assert.Equal(t, 1, rows[1].Depth)
	assert.True(t, rows[1].IsLast)

	// the child inherits the parent's due date
	require.NotNil(t, rows[1].Due)
	assert.True(t, rows[1].Due.Equal(due))
}

func TestRenderTaskTreeConnectors(t *testing.T) {
	parent := mkTask("parent")
	first := mkTask("first child", withParent(parent.ID))
	first.CreatedAt = testNow.Add(time.Minute)
	second := mkTask("second child", withParent(parent.ID))
	second.CreatedAt = testNow.Add(2 * time.Minute)

	all := []domain.Task{parent, first, second}
	out := RenderTaskTree(RowsFromTree(domain.BuildTree(all), all), testNow)

	assert.Contains(t, out, "parent")
	assert.Contains(t, out, treeBranch+"· first child")
	assert.Contains(t, out, treeCorner+"· second child")
}

func TestRenderTaskTreeCompletedMarker(t *testing.T) {
	done := mkTask("watered plants", withDone())

	out := RenderTaskTree(RowsFromTree(domain.BuildTree([]domain.Task{done}), []domain.Task{done}), testNow)

	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "watered plants")
}

func TestRenderTaskTreeTagsAndDueBadge(t *testing.T) {
	task := mkTask("Buy milk", withDue(testNow.AddDate(0, 0, 1)))
	task.Tags = []string{"errand"}

	all := []domain.Task{task}
	out := RenderTaskTree(RowsFromTree(domain.BuildTree(all), all), testNow)

	assert.Contains(t, out, "#errand")
	assert.Contains(t, out, "Tomorrow")
}

func TestRenderTaskTreeEmpty(t *testing.T) {
	assert.Contains(t, RenderTaskTree(nil, testNow), "No tasks.")
}

func TestRenderFlatListBreadcrumbAndID(t *testing.T) {
	parent := mkTask("Projects")
	child := mkTask("Fix fence", withParent(parent.ID))

	all := []domain.Task{parent, child}
	out := RenderFlatList([]domain.Task{child}, all, testNow)

	assert.Contains(t, out, "Fix fence")
	assert.Contains(t, out, "Projects")
	assert.Contains(t, out, child.ID[:8])
	assert.NotContains(t, out, child.ID)
}

func TestRenderFlatListEmpty(t *testing.T) {
	assert.Contains(t, RenderFlatList(nil, nil, testNow), "No tasks.")
}

func TestRelativeDateFrom(t *testing.T) {
	cases := []struct {
		offsetDays int
		want       string
	}{
		{0, "Today"},
		{1, "Tomorrow"},
		{-1, "Yesterday"},
		{5, "In 5d"},
		{21, "In 3w"},
		{90, "In 3mo"},
		{-5, "5d ago"},
		{-21, "3w ago"},
		{-90, "3mo ago"},
	}
	for _, tc := range cases {
		got := RelativeDateFrom(testNow.AddDate(0, 0, tc.offsetDays), testNow)
		assert.Equal(t, tc.want, got, "offset %d", tc.offsetDays)
	}
}

func TestBreadcrumbReversesAncestors(t *testing.T) {
	// ancestors arrive nearest-first; breadcrumbs read topmost-first
	out := Breadcrumb([]string{"House", "Projects"})
	assert.Contains(t, out, "Projects › House")
	assert.Empty(t, Breadcrumb(nil))
}

func TestTagBadges(t *testing.T) {
	assert.Contains(t, TagBadges([]string{"home", "urgent"}), "#home #urgent")
	assert.Empty(t, TagBadges(nil))
}
