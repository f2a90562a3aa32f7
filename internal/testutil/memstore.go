package testutil

import (
	"context"

	"github.com/alexanderramin/burrow/internal/domain"
)

// MemStore is an in-memory SnapshotStore for service tests.
type MemStore struct {
	Tasks     []domain.Task
	SaveCount int
}

func (m *MemStore) Load(ctx context.Context) []domain.Task {
	out := make([]domain.Task, len(m.Tasks))
	copy(out, m.Tasks)
	return out
}

func (m *MemStore) Save(ctx context.Context, tasks []domain.Task) {
	m.Tasks = make([]domain.Task, len(tasks))
	copy(m.Tasks, tasks)
	m.SaveCount++
}
