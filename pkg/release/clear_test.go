// pkg/release/clear_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test deletion-only operations and their default escapes

package release

import (
	"context"
	"testing"

	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearSources_DefaultEscapes(t *testing.T) {
	f := newFixture(t, map[string]string{
		"app/__init__.py": "",
		"app/test.py":     "",
		"app/setup.py":    "",
		"app/model.py":    "",
		"app/marked.py":   "# cython: skip\n",
		"app/model.so":    "",
		"app/sub/deep.py": "",
	})

	report, err := f.orch.ClearSources(context.Background(), []string{"/work/app"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"__init__.py", "model.so", "test.py"}, testutil.ListFiles(t, f.fs, "/work/app"))
	assert.Equal(t, OperationClearSources, report.Operation)
	assert.Len(t, report.Tasks[0].Removed, 4)
	assert.Empty(t, f.fake.Jobs())
}

func TestClearBinaries_NoDefaultEscapes(t *testing.T) {
	f := newFixture(t, map[string]string{
		"app/__init__.so": "",
		"app/model.so":    "",
		"app/model.py":    "",
	})

	_, err := f.orch.ClearBinaries(context.Background(), []string{"/work/app"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"model.py"}, testutil.ListFiles(t, f.fs, "/work/app"))
}

func TestClearBinaries_ExplicitEscapes(t *testing.T) {
	f := newFixture(t, map[string]string{
		"app/vendor/native.so": "",
		"app/model.so":         "",
	})

	report, err := f.orch.ClearBinaries(context.Background(), []string{"/work/app"}, []string{"vendor"})
	require.NoError(t, err)

	assert.Equal(t, []string{"vendor/native.so"}, testutil.ListFiles(t, f.fs, "/work/app"))
	assert.Equal(t, []string{"/work/app/vendor/native.so"}, report.Tasks[0].Skipped)
}

func TestClearSources_ProtectsSelf(t *testing.T) {
	f := newFixture(t, map[string]string{
		"release.py": "",
		"other.py":   "",
	})

	_, err := f.orch.ClearSources(context.Background(), []string{"/work"}, []string{})
	require.NoError(t, err)

	assert.Equal(t, []string{"release.py"}, testutil.ListFiles(t, f.fs, "/work"))
}

func TestClear_MultipleDirsAndMissingDir(t *testing.T) {
	f := newFixture(t, map[string]string{
		"a/x.so": "",
		"b/y.so": "",
	})

	report, err := f.orch.ClearBinaries(context.Background(), []string{"/work/a", "/work/missing", "/work/b"}, nil)
	require.NoError(t, err)

	require.Len(t, report.Tasks, 3)
	assert.Empty(t, testutil.ListFiles(t, f.fs, "/work/a"))
	assert.Empty(t, testutil.ListFiles(t, f.fs, "/work/b"))
	assert.Empty(t, report.Tasks[1].Removed)
}

func TestClear_NilDirs(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.orch.ClearSources(context.Background(), nil, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
