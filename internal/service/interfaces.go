package service

import (
	"context"
	"time"

	"github.com/alexanderramin/burrow/internal/domain"
)

// TaskService orchestrates every user action: it loads the snapshot,
// applies the domain mutation, persists the replacement collection,
// and answers derived views.
type TaskService interface {
	Add(ctx context.Context, title string, due *time.Time, parentID *string) (domain.Task, error)
	Toggle(ctx context.Context, id string) (domain.Task, error)
	Rename(ctx context.Context, id, title string) (domain.Task, error)
	SetDue(ctx context.Context, id string, due *time.Time) (domain.Task, error)
	Delete(ctx context.Context, id string) error

	Tree(ctx context.Context) []*domain.TreeNode
	ListView(ctx context.Context, view domain.View, query string, now time.Time) []domain.Task
	Calendar(ctx context.Context) map[string][]domain.Task
	Breadcrumb(ctx context.Context, id string) []string
	Resolve(ctx context.Context, ref string) (domain.Task, error)
}
