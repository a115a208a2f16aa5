package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kuntur-detector/case-service/internal/model"
)

// FileStore keeps the case collection as a single JSON array on disk
// (CASES_FILE, casos.json by convention).
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the document. A missing or unreadable file is not an error:
// the store starts over with an empty collection and logs what happened.
func (s *FileStore) Load(ctx context.Context) ([]model.Case, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("storage: read %s: %v (starting empty)", s.path, err)
		}
		return []model.Case{}, nil
	}
	if len(data) == 0 {
		return []model.Case{}, nil
	}
	var cases []model.Case
	if err := json.Unmarshal(data, &cases); err != nil {
		log.Printf("storage: corrupt document %s: %v (starting empty)", s.path, err)
		return []model.Case{}, nil
	}
	return cases, nil
}

// Save rewrites the whole document. Written to a temp file first so a crash
// mid-write never leaves a truncated casos.json behind.
func (s *FileStore) Save(ctx context.Context, cases []model.Case) error {
	if cases == nil {
		cases = []model.Case{}
	}
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cases: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "casos-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename to %s: %w", s.path, err)
	}
	return nil
}
