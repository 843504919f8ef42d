// Package file provides a filesystem-backed ports.Storage. Each scope key
// becomes one JSON document under the base path, so state survives process
// restarts without any external service.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cascadebot/cascade/pkg/domain"
)

// Store implements ports.Storage on the local filesystem. Scope keys
// contain a kind segment ("user/alice"), which maps to a subdirectory.
type Store struct {
	BasePath string
}

// NewStore creates a file store rooted at basePath.
// If basePath is empty, it defaults to ".cascade/state".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".cascade", "state")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.BasePath, filepath.FromSlash(key)+".json")
}

// Write commits the document as a JSON file.
func (s *Store) Write(ctx context.Context, key string, document map[string]any) error {
	if key == "" {
		return fmt.Errorf("scope key cannot be empty")
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to ensure state directory: %w", err)
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state document: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Read retrieves the committed document.
func (s *Store) Read(ctx context.Context, key string) (map[string]any, error) {
	if key == "" {
		return nil, fmt.Errorf("scope key cannot be empty")
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrScopeNotFound
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var document map[string]any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state document: %w", err)
	}
	return document, nil
}

// Delete removes the document file.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file: %w", err)
	}
	return nil
}

// List returns all committed scope keys by walking the base path.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.BasePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		rel, err := filepath.Rel(s.BasePath, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(strings.TrimSuffix(rel, ".json")))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list state files: %w", err)
	}
	return keys, nil
}
