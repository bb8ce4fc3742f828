// Package storage persists the task collection as a single JSON document.
// The whole collection is rewritten on every save; concurrent writers are
// not coordinated, so the last writer wins.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/natefinch/atomic"

	"github.com/taskwise-ai/taskwise/pkg/models"
)

// Collection is the on-disk shape of the task store: the ordered task list
// plus the counter the next task ID is minted from.
type Collection struct {
	Version string        `json:"version"`
	NextID  int           `json:"next_id"`
	Tasks   []models.Task `json:"tasks"`
}

// EmptyCollection returns a fresh collection ready for first use.
func EmptyCollection() Collection {
	return Collection{Version: "1.0", NextID: 1}
}

// TaskStore abstracts the persistence substrate so the task manager can be
// tested without touching the filesystem.
type TaskStore interface {
	Load() (Collection, error)
	Save(Collection) error
}

type fileTaskStore struct {
	basePath string
	logger   *log.Logger
}

// NewFileTaskStore creates a TaskStore backed by tasks.json in the given
// base directory.
func NewFileTaskStore(basePath string, logger *log.Logger) TaskStore {
	if logger == nil {
		logger = log.Default()
	}
	return &fileTaskStore{basePath: basePath, logger: logger}
}

func (s *fileTaskStore) filePath() string {
	return filepath.Join(s.basePath, "tasks.json")
}

// Load reads and decodes the collection. A missing file yields an empty
// collection; a corrupt file is logged and reset to empty rather than
// failing startup.
func (s *fileTaskStore) Load() (Collection, error) {
	data, err := os.ReadFile(s.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return EmptyCollection(), nil
		}
		return Collection{}, fmt.Errorf("loading tasks: %w", err)
	}

	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		s.logger.Warn("task store is corrupt, resetting to empty", "path", s.filePath(), "err", err)
		return EmptyCollection(), nil
	}
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.NextID < 1 {
		c.NextID = len(c.Tasks) + 1
	}
	return c, nil
}

// Save writes the collection atomically: the JSON document is staged to a
// temp file and renamed over tasks.json so a crash mid-write cannot leave
// a torn file behind.
func (s *fileTaskStore) Save(c Collection) error {
	if err := os.MkdirAll(s.basePath, 0o750); err != nil {
		return fmt.Errorf("saving tasks: creating directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("saving tasks: encoding: %w", err)
	}
	if err := atomic.WriteFile(s.filePath(), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("saving tasks: writing file: %w", err)
	}
	return nil
}
