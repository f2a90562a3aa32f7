package testutil

import (
	"time"

	"github.com/alexanderramin/burrow/internal/domain"
	"github.com/google/uuid"
)

// TaskOption mutates a fixture task before it is returned.
type TaskOption func(*domain.Task)

func WithParent(parentID string) TaskOption {
	return func(t *domain.Task) {
		t.ParentID = &parentID
	}
}

func WithDueAt(due time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueAt = &due
	}
}

func WithCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

func WithDeletedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DeletedAt = &at
	}
}

func WithCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = at
		t.UpdatedAt = at
	}
}

func WithTags(tags ...string) TaskOption {
	return func(t *domain.Task) {
		t.Tags = tags
	}
}

// NewTestTask builds a task with sensible defaults for tests, bypassing
// CreateTask so fixtures control every field directly.
func NewTestTask(title string, opts ...TaskOption) domain.Task {
	now := time.Now().UTC()
	t := domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   domain.SchemaVersion,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}
