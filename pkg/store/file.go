package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/matzehuels/stackchart/pkg/config"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// FileStore keeps one JSON file per record in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/stackchart/charts/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "stackchart", "charts")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) recordPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Create(ctx context.Context, def *config.Definition) (*Record, error) {
	rec, err := newRecord(NewID(), def, time.Now())
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

func (s *FileStore) Update(ctx context.Context, id string, def *config.Definition) (*Record, error) {
	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	rec, err := newRecord(id, def, time.Now())
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, err := s.read(id)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = old.CreatedAt
	if err := s.write(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.recordPath(id))
	if os.IsNotExist(err) {
		return NotFound(id)
	}
	if err != nil {
		return fmt.Errorf("remove record file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}
	var out []Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := entry.Name()[:len(entry.Name())-len(".json")]
		rec, err := s.read(id)
		if err != nil {
			continue
		}
		out = append(out, *rec)
	}
	sortRecords(out)
	return out, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding record files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) read(id string) (*Record, error) {
	raw, err := os.ReadFile(s.recordPath(id))
	if os.IsNotExist(err) {
		return nil, NotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("read record file: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse record %s", id)
	}
	return &rec, nil
}

func (s *FileStore) write(rec *Record) error {
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	path := s.recordPath(rec.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("write record file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write record file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
