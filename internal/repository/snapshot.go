package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/alexanderramin/burrow/internal/domain"
	"go.uber.org/zap"
)

// snapshotKey is the row under which the whole task collection lives.
const snapshotKey = "tasks"

// SnapshotStore persists the flat task collection as a versioned
// snapshot. Both operations are best-effort by contract: Load answers
// an empty collection on any failure and Save swallows errors, so the
// application stays usable on a fresh or corrupt store.
type SnapshotStore interface {
	Load(ctx context.Context) []domain.Task
	Save(ctx context.Context, tasks []domain.Task)
}

// taskRecord is the wire shape of a task inside the snapshot envelope.
// ParentID has no omitempty so pre-hierarchy data that lacks the field
// decodes to nil and round-trips as an explicit null.
type taskRecord struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	DueAt     *time.Time `json:"dueAt,omitempty"`
	ParentID  *string    `json:"parentId"`
	Tags      []string   `json:"tags,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	Version   int        `json:"version,omitempty"`
}

type envelope struct {
	Version int          `json:"version"`
	Tasks   []taskRecord `json:"tasks"`
}

// SQLiteSnapshotStore implements SnapshotStore over a single-row
// key-value table in a local SQLite database.
type SQLiteSnapshotStore struct {
	db  *sql.DB
	log *zap.Logger
}

// NewSQLiteSnapshotStore creates a new SQLiteSnapshotStore. A nil
// logger disables failure logging.
func NewSQLiteSnapshotStore(database *sql.DB, log *zap.Logger) *SQLiteSnapshotStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLiteSnapshotStore{db: database, log: log}
}

// Load reads the stored collection. Missing row, unreadable database,
// or unparseable payload all degrade to an empty collection. Accepts
// the current envelope shape and the legacy bare-array shape.
func (s *SQLiteSnapshotStore) Load(ctx context.Context) []domain.Task {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM snapshots WHERE key = ?`, snapshotKey).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			s.log.Debug("snapshot load failed", zap.Error(err))
		}
		return nil
	}
	return decodeSnapshot([]byte(raw), s.log)
}

// Save writes the collection as a versioned envelope. Failures are
// logged and otherwise swallowed.
func (s *SQLiteSnapshotStore) Save(ctx context.Context, tasks []domain.Task) {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, recordFromTask(t))
	}
	payload, err := json.Marshal(envelope{Version: domain.SchemaVersion, Tasks: records})
	if err != nil {
		s.log.Debug("snapshot encode failed", zap.Error(err))
		return
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		snapshotKey, string(payload))
	if err != nil {
		s.log.Debug("snapshot save failed", zap.Error(err))
	}
}

// decodeSnapshot tries the envelope shape first, then the legacy bare
// array. Anything else is treated as no data.
func decodeSnapshot(raw []byte, log *zap.Logger) []domain.Task {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		return tasksFromRecords(env.Tasks)
	}

	var bare []taskRecord
	if err := json.Unmarshal(raw, &bare); err == nil {
		return tasksFromRecords(bare)
	}

	log.Debug("snapshot payload unparseable, starting empty")
	return nil
}

func recordFromTask(t domain.Task) taskRecord {
	return taskRecord{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		DueAt:     t.DueAt,
		ParentID:  t.ParentID,
		Tags:      t.Tags,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		DeletedAt: t.DeletedAt,
		Version:   t.Version,
	}
}

func tasksFromRecords(records []taskRecord) []domain.Task {
	tasks := make([]domain.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, domain.Task{
			ID:        r.ID,
			Title:     r.Title,
			Completed: r.Completed,
			DueAt:     r.DueAt,
			ParentID:  r.ParentID,
			Tags:      r.Tags,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			DeletedAt: r.DeletedAt,
			Version:   r.Version,
		})
	}
	return tasks
}
