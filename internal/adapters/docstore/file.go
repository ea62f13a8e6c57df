package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simosh/storefront/internal/domain"
)

// File stores the document as a single JSON blob on disk. It is the default
// backend when no database is configured and behaves like the key-value
// storage the storefront grew up on.
type File struct{ path string }

func NewFile(path string) *File { return &File{path: path} }

func (s *File) Load(ctx context.Context) (*domain.Database, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		db := domain.DefaultDatabase()
		if err := s.Save(ctx, db); err != nil {
			return nil, err
		}
		return db, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	var db domain.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	db.MergeDefaults()
	return &db, nil
}

func (s *File) Save(_ context.Context, db *domain.Database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	// write-then-rename so a crash mid-save never truncates the document
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
