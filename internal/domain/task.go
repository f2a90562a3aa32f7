package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is written into every task at creation and into the
// persisted snapshot envelope. The core never interprets it beyond
// defaulting; the storage layer uses it for forward compatibility.
const SchemaVersion = 2

// ErrEmptyTitle is returned when a task would be created with a blank title.
var ErrEmptyTitle = errors.New("task title is empty")

// Task is the sole persisted entity. The flat task collection is the
// single source of truth; trees and views are derived from it on every
// read and never stored.
//
// All mutators are value-to-value: they return a modified copy and never
// touch the receiver, so snapshots held by callers stay valid.
type Task struct {
	ID        string
	Title     string
	Completed bool
	DueAt     *time.Time
	ParentID  *string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	Version   int
}

// Deleted reports whether the task is soft-deleted. Soft-deleted tasks
// stay in the collection as tombstones but appear in no tree or view.
func (t Task) Deleted() bool {
	return t.DeletedAt != nil
}

// CreateOptions carries the optional fields of CreateTask.
type CreateOptions struct {
	DueAt    *time.Time
	ParentID *string
}

// CreateTask builds a new task from a raw title. Inline "#tag" tokens
// are stripped into Tags; a title that consists only of tags keeps its
// original text so the task is never blank. Returns ErrEmptyTitle when
// the trimmed title is empty.
func CreateTask(rawTitle string, opts CreateOptions, now time.Time) (Task, error) {
	trimmed := strings.TrimSpace(rawTitle)
	title, tags := titleAndTags(trimmed)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	return Task{
		ID:        uuid.New().String(),
		Title:     title,
		Tags:      tags,
		DueAt:     opts.DueAt,
		ParentID:  opts.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   SchemaVersion,
	}, nil
}

// ToggleComplete flips the completion flag.
func (t Task) ToggleComplete(now time.Time) Task {
	t.Completed = !t.Completed
	t.UpdatedAt = now
	return t
}

// SetCompleted sets the completion flag to an explicit value. Idempotent.
func (t Task) SetCompleted(done bool, now time.Time) Task {
	t.Completed = done
	t.UpdatedAt = now
	return t
}

// Rename replaces the title and re-extracts tags. A rename that would
// blank the task is a silent no-op, not an error: the user changed
// their mind, the task keeps its old title.
func (t Task) Rename(rawTitle string, now time.Time) Task {
	trimmed := strings.TrimSpace(rawTitle)
	title, tags := titleAndTags(trimmed)
	if title == "" {
		return t
	}
	t.Title = title
	t.Tags = tags
	t.UpdatedAt = now
	return t
}

// SetDueDate sets or clears the explicit due date.
func (t Task) SetDueDate(due *time.Time, now time.Time) Task {
	t.DueAt = due
	t.UpdatedAt = now
	return t
}

// SoftDelete stamps DeletedAt. Deleting twice just refreshes the stamp.
func (t Task) SoftDelete(now time.Time) Task {
	stamp := now
	t.DeletedAt = &stamp
	t.UpdatedAt = now
	return t
}

// titleAndTags extracts tags and falls back to the trimmed original
// when the cleaned title is empty (title made of tag tokens only).
func titleAndTags(trimmed string) (string, []string) {
	clean, tags := ExtractTags(trimmed)
	if clean == "" {
		return trimmed, tags
	}
	return clean, tags
}
