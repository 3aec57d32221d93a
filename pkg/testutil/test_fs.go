package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/cyrelease/pkg/filesystem"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// WriteTree creates every file of tree (path -> content) under root
func WriteTree(t *testing.T, fsys types.FS, root string, tree map[string]string) {
	t.Helper()
	for rel, content := range tree {
		path := filepath.Join(root, rel)
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
	}
}

// ReadString returns the content of path, failing the test if it cannot be read
func ReadString(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// ListFiles returns every regular file under root, relative to root and sorted
func ListFiles(t *testing.T, fsys types.FS, root string) []string {
	t.Helper()
	var files []string
	err := filesystem.Walk(fsys, root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			rel, relErr := filepath.Rel(root, path)
			require.NoError(t, relErr)
			files = append(files, rel)
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

// AssertExists fails the test if path does not exist
func AssertExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	_, err := fsys.Stat(path)
	require.NoError(t, err, "expected %s to exist", path)
}

// AssertNotExists fails the test if path exists
func AssertNotExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	_, err := fsys.Stat(path)
	require.Error(t, err, "expected %s to be absent", path)
}
