package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cascadebot/cascade/internal/adapters/file"
	"github.com/cascadebot/cascade/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	tests.RunStorageContract(t, file.NewStore(t.TempDir()))
}

func TestFileStore_LayoutOnDisk(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	store := file.NewStore(base)

	require.NoError(t, store.Write(ctx, "user/alice", map[string]any{"welcomed": true}))

	// One JSON document per scope, kind segment as a subdirectory.
	data, err := os.ReadFile(filepath.Join(base, "user", "alice.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "welcomed")
}

func TestFileStore_ListEmptyBasePath(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "never-created"))

	keys, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStore_RejectsEmptyKey(t *testing.T) {
	store := file.NewStore(t.TempDir())

	assert.Error(t, store.Write(context.Background(), "", map[string]any{}))
	_, err := store.Read(context.Background(), "")
	assert.Error(t, err)
}
