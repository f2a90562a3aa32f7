package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/burrow/internal/domain"
	"github.com/alexanderramin/burrow/internal/repository"
)

var (
	ErrNotFound     = errors.New("task not found")
	ErrAmbiguousRef = errors.New("reference matches more than one task")
)

type taskService struct {
	store        repository.SnapshotStore
	now          func() time.Time
	upcomingDays int
}

// NewTaskService creates a TaskService with the real clock and the
// default upcoming window.
func NewTaskService(store repository.SnapshotStore) TaskService {
	return NewTaskServiceConfig(store, nil, 0)
}

// NewTaskServiceConfig creates a TaskService with an injectable clock
// and upcoming window. A nil clock means time.Now; a non-positive
// window means the default.
func NewTaskServiceConfig(store repository.SnapshotStore, now func() time.Time, upcomingDays int) TaskService {
	if now == nil {
		now = time.Now
	}
	if upcomingDays <= 0 {
		upcomingDays = domain.DefaultUpcomingDays
	}
	return &taskService{store: store, now: now, upcomingDays: upcomingDays}
}

func (s *taskService) Add(ctx context.Context, title string, due *time.Time, parentID *string) (domain.Task, error) {
	tasks := s.store.Load(ctx)

	if parentID != nil {
		if _, err := findLive(tasks, *parentID); err != nil {
			return domain.Task{}, fmt.Errorf("parent %s: %w", *parentID, err)
		}
	}

	task, err := domain.CreateTask(title, domain.CreateOptions{DueAt: due, ParentID: parentID}, s.now())
	if err != nil {
		return domain.Task{}, err
	}

	s.store.Save(ctx, append(tasks, task))
	return task, nil
}

func (s *taskService) Toggle(ctx context.Context, id string) (domain.Task, error) {
	tasks := s.store.Load(ctx)
	task, err := findLive(tasks, id)
	if err != nil {
		return domain.Task{}, err
	}

	next := domain.ToggleCascade(tasks, task.ID, s.now())
	s.store.Save(ctx, next)

	toggled, _ := findLive(next, task.ID)
	return toggled, nil
}

func (s *taskService) Rename(ctx context.Context, id, title string) (domain.Task, error) {
	return s.mutate(ctx, id, func(t domain.Task, now time.Time) domain.Task {
		return t.Rename(title, now)
	})
}

func (s *taskService) SetDue(ctx context.Context, id string, due *time.Time) (domain.Task, error) {
	return s.mutate(ctx, id, func(t domain.Task, now time.Time) domain.Task {
		return t.SetDueDate(due, now)
	})
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	tasks := s.store.Load(ctx)
	if _, err := findLive(tasks, id); err != nil {
		return err
	}
	s.store.Save(ctx, domain.DeleteCascade(tasks, id, s.now()))
	return nil
}

func (s *taskService) Tree(ctx context.Context) []*domain.TreeNode {
	return domain.BuildTree(s.store.Load(ctx))
}

func (s *taskService) ListView(ctx context.Context, view domain.View, query string, now time.Time) []domain.Task {
	tasks := s.store.Load(ctx)

	var out []domain.Task
	for _, t := range tasks {
		if !domain.IsVisibleWindow(t, view, now, tasks, s.upcomingDays) {
			continue
		}
		if !domain.MatchesSearch(t, query) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *taskService) Calendar(ctx context.Context) map[string][]domain.Task {
	return domain.CalendarBuckets(s.store.Load(ctx))
}

func (s *taskService) Breadcrumb(ctx context.Context, id string) []string {
	return domain.AncestorTitles(id, s.store.Load(ctx))
}

// Resolve matches a user-supplied reference against live task ids: an
// exact id first, then a unique id prefix.
func (s *taskService) Resolve(ctx context.Context, ref string) (domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Task{}, ErrNotFound
	}
	tasks := s.store.Load(ctx)

	if t, err := findLive(tasks, ref); err == nil {
		return t, nil
	}

	var matches []domain.Task
	for _, t := range tasks {
		if !t.Deleted() && strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Task{}, fmt.Errorf("%q: %w", ref, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return domain.Task{}, fmt.Errorf("%q: %w", ref, ErrAmbiguousRef)
	}
}

// mutate applies a single-task transformation and persists the
// replacement collection.
func (s *taskService) mutate(ctx context.Context, id string, fn func(domain.Task, time.Time) domain.Task) (domain.Task, error) {
	tasks := s.store.Load(ctx)
	task, err := findLive(tasks, id)
	if err != nil {
		return domain.Task{}, err
	}

	next := make([]domain.Task, len(tasks))
	copy(next, tasks)
	var updated domain.Task
	for i, t := range next {
		if t.ID == task.ID {
			updated = fn(t, s.now())
			next[i] = updated
			break
		}
	}

	s.store.Save(ctx, next)
	return updated, nil
}

func findLive(tasks []domain.Task, id string) (domain.Task, error) {
	for _, t := range tasks {
		if t.ID == id && !t.Deleted() {
			return t, nil
		}
	}
	return domain.Task{}, ErrNotFound
}
