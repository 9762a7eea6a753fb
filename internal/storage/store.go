package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/remindd/internal/model"
)

// FileStore persists the whole task collection as a JSON list of records.
// Every write replaces the file atomically; the in-memory collection stays
// authoritative for the session, so a failed write is logged and retried
// implicitly by the next save.
type FileStore struct {
	path string
	log  zerolog.Logger
}

func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load reads and migrates the stored collection. Nothing here is fatal: a
// missing file is an empty collection, corrupt JSON or a non-list payload
// degrades to empty with a warning, and individual bad records are skipped.
func (s *FileStore) Load(now time.Time) []model.Task {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Task{}
		}
		s.log.Warn().Err(err).Str("path", s.path).Msg("storage: cannot read data file, starting empty")
		return []model.Task{}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("storage: data file is not a task list, starting empty")
		return []model.Task{}
	}

	return migrateRecords(records, now, s.log)
}

// Save serializes the full collection and replaces the file atomically.
func (s *FileStore) Save(tasks []model.Task) error {
	payload, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode tasks: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: create data dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage: replace data file: %w", err)
	}
	return nil
}
