// pkg/compiler/synthfs_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir), synthfs
// PURPOSE: Test binary relocation through synthfs pipelines

package compiler_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/cyrelease/pkg/compiler"
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestSynthRelocator_Relocate(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "app", "model.py")
	artifact := filepath.Join(dir, "build", "0", "lib", "model.cpython-311-x86_64-linux-gnu.so")
	writeFile(t, source, "x = 1")
	writeFile(t, filepath.Join(dir, "app", "model.c"), "/* generated */")
	writeFile(t, artifact, "ELF")

	target, err := compiler.NewSynthRelocator().Relocate(compiler.Relocation{
		Source:        source,
		Artifact:      artifact,
		Extension:     ".so",
		Intermediates: []string{".c"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "app", "model.so"), target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "ELF", string(data))

	assert.NoFileExists(t, artifact)
	assert.NoFileExists(t, filepath.Join(dir, "app", "model.c"))
	assert.FileExists(t, source)
}

func TestSynthRelocator_ReplacesStaleBinary(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "model.py")
	artifact := filepath.Join(dir, "build", "model.so")
	writeFile(t, source, "")
	writeFile(t, filepath.Join(dir, "model.so"), "old")
	writeFile(t, artifact, "new")

	target, err := compiler.NewSynthRelocator().Relocate(compiler.Relocation{
		Source:    source,
		Artifact:  artifact,
		Extension: ".so",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.NoFileExists(t, artifact)
}

func TestSynthRelocator_MissingArtifact(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "model.py")
	writeFile(t, source, "")

	_, err := compiler.NewSynthRelocator().Relocate(compiler.Relocation{
		Source:    source,
		Artifact:  filepath.Join(dir, "build", "model.so"),
		Extension: ".so",
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrRelocate))
	assert.NoFileExists(t, filepath.Join(dir, "model.so"))
}
