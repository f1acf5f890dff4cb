// Package file persists worlds as JSON files on the local filesystem.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/shrdlite/pkg/domain"
)

// Store implements ports.WorldStore using the local filesystem.
// It stores worlds as JSON files in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".shrdlite/worlds".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".shrdlite", "worlds")
	}
	return &Store{BasePath: basePath}
}

// Save persists the world to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames
// it to the destination.
func (s *Store) Save(ctx context.Context, worldID string, w *domain.WorldState) error {
	if worldID == "" {
		return fmt.Errorf("worldID cannot be empty")
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure world directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, worldID+".json")

	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal world: %w", err)
	}

	// Temp file in the same directory so the rename stays on one
	// filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+worldID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()    // Ensure closed
		_ = os.Remove(tmpPath) // Remove if still exists (not renamed)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Close before rename (Windows cannot rename open files).
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if the destination exists; remove it
	// first and accept the tiny replacement window.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing world file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to world file: %w", err)
	}

	return nil
}

// Load retrieves the world from a JSON file.
func (s *Store) Load(ctx context.Context, worldID string) (*domain.WorldState, error) {
	if worldID == "" {
		return nil, fmt.Errorf("worldID cannot be empty")
	}

	filePath := filepath.Join(s.BasePath, worldID+".json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrWorldNotFound
		}
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}

	var w domain.WorldState
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world: %w", err)
	}

	return &w, nil
}

// Delete removes the world file.
func (s *Store) Delete(ctx context.Context, worldID string) error {
	if worldID == "" {
		return fmt.Errorf("worldID cannot be empty")
	}

	filePath := filepath.Join(s.BasePath, worldID+".json")

	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete world file: %w", err)
	}

	return nil
}

// List returns all stored world IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}

	var worlds []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			worlds = append(worlds, name[:len(name)-len(".json")])
		}
	}

	return worlds, nil
}
