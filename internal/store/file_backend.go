// internal/store/file_backend.go
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/javajoker/draft-backend/internal/models"
)

// FileBackend keeps the table as one JSON object, draft_id -> draft.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Name() string {
	return "file:" + b.path
}

func (b *FileBackend) Load() (map[string]*models.ProductDraft, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read draft file %s: %w", b.path, err)
	}

	return decodeSnapshot(data)
}

// Save writes to a temp file in the same directory and renames it over the
// target, so a crash mid-write never leaves a truncated snapshot.
func (b *FileBackend) Save(drafts map[string]*models.ProductDraft) error {
	data, err := encodeSnapshot(drafts)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp draft file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write draft file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close draft file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace draft file %s: %w", b.path, err)
	}

	return nil
}

func encodeSnapshot(drafts map[string]*models.ProductDraft) ([]byte, error) {
	if drafts == nil {
		drafts = map[string]*models.ProductDraft{}
	}
	data, err := json.MarshalIndent(drafts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode drafts: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (map[string]*models.ProductDraft, error) {
	drafts := make(map[string]*models.ProductDraft)
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return drafts, nil
}
