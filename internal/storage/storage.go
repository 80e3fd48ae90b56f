package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// recipeImageDir is the upload namespace for recipe images, relative to the
// media root.
const recipeImageDir = "uploads/recipe"

// RecipeImagePath builds the relative storage path for a recipe image:
// uploads/recipe/{id}{ext}. The extension is taken from the original
// filename as uploaded.
func RecipeImagePath(id uuid.UUID, originalName string) string {
	ext := filepath.Ext(originalName)
	return path.Join(recipeImageDir, id.String()+ext)
}

// MediaStore persists uploaded media files under a base directory on local
// disk. Paths handed to Save/Remove are relative, as stored on the record.
type MediaStore struct {
	baseDir string
	mu      sync.Mutex
}

// NewMediaStore creates a MediaStore rooted at baseDir, creating it if needed.
func NewMediaStore(baseDir string) (*MediaStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("media root cannot be empty")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &MediaStore{baseDir: baseDir}, nil
}

// BaseDir returns the media root directory.
func (s *MediaStore) BaseDir() string {
	return s.baseDir
}

// Save writes data to relPath under the media root.
func (s *MediaStore) Save(relPath string, data []byte) error {
	if relPath == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if len(data) == 0 {
		return fmt.Errorf("data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	full := filepath.Join(s.baseDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write media file: %w", err)
	}
	return nil
}

// Remove deletes relPath under the media root. A missing file is not an error.
func (s *MediaStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	full := filepath.Join(s.baseDir, filepath.FromSlash(relPath))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}
