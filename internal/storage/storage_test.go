package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRecipeImagePath(t *testing.T) {
	id := uuid.MustParse("3f1c9a44-9f77-4a10-8f0e-0b2f5a6c1d2e")

	tests := []struct {
		name         string
		originalName string
		expected     string
	}{
		{"jpg extension", "photo.jpg", "uploads/recipe/3f1c9a44-9f77-4a10-8f0e-0b2f5a6c1d2e.jpg"},
		{"png extension", "cake.png", "uploads/recipe/3f1c9a44-9f77-4a10-8f0e-0b2f5a6c1d2e.png"},
		{"no extension", "photo", "uploads/recipe/3f1c9a44-9f77-4a10-8f0e-0b2f5a6c1d2e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RecipeImagePath(id, tt.originalName))
		})
	}
}

func TestMediaStore_SaveAndRemove(t *testing.T) {
	store, err := NewMediaStore(t.TempDir())
	assert.NoError(t, err)

	relPath := RecipeImagePath(uuid.New(), "photo.jpg")
	data := []byte("fake image bytes")

	assert.NoError(t, store.Save(relPath, data))

	written, err := os.ReadFile(filepath.Join(store.BaseDir(), filepath.FromSlash(relPath)))
	assert.NoError(t, err)
	assert.Equal(t, data, written)

	assert.NoError(t, store.Remove(relPath))
	_, err = os.Stat(filepath.Join(store.BaseDir(), filepath.FromSlash(relPath)))
	assert.True(t, os.IsNotExist(err))

	// Removing twice is not an error.
	assert.NoError(t, store.Remove(relPath))
}

func TestMediaStore_EmptyInputs(t *testing.T) {
	_, err := NewMediaStore("")
	assert.Error(t, err)

	store, err := NewMediaStore(t.TempDir())
	assert.NoError(t, err)

	assert.Error(t, store.Save("", []byte("data")))
	assert.Error(t, store.Save("uploads/recipe/x.jpg", nil))
}
