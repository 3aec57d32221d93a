// pkg/packaging/assembler_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: In-memory filesystem, mock runner
// PURPOSE: Test end-to-end assembly and toolchain failure propagation

package packaging

import (
	"bytes"
	"context"
	"testing"

	"github.com/arthur-debert/cyrelease/pkg/config"
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/executor"
	"github.com/arthur-debert/cyrelease/pkg/testutil"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, cmd executor.Command) (executor.Result, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(executor.Result), args.Error(1)
}

func defaultPackageConfig(t *testing.T) config.PackageConfig {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg.Package
}

func TestAssemble(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/proj", map[string]string{
		"sophgoapi/__init__.py": "old = True\n",
		"sophgoapi/model.so":    "",
		"sophgoapi/app.yml":     "",
		"requirements.txt":      "",
	})

	runner := &mockRunner{}
	runner.On("Run", mock.Anything, executor.Command{
		Name: "python3",
		Args: []string{"-m", "build", "--wheel"},
		Dir:  "/proj",
	}).Return(executor.Result{Stdout: "Successfully built sophgoapi-1.0.5-py3-none-any.whl\n"}, nil)

	result, err := NewAssembler(defaultPackageConfig(t), fsys, runner, "/proj").Assemble(context.Background())
	require.NoError(t, err)
	runner.AssertExpectations(t)

	assert.Equal(t, []string{"sophgoapi/model.so", "sophgoapi/app.yml", "requirements.txt"}, result.Assets)
	assert.Equal(t,
		"include sophgoapi/model.so\ninclude sophgoapi/app.yml\ninclude requirements.txt\n",
		testutil.ReadString(t, fsys, "/proj/MANIFEST.in"))
	assert.Equal(t, "", testutil.ReadString(t, fsys, "/proj/sophgoapi/__init__.py"))
	assert.Contains(t, result.Output, "Successfully built")

	var doc map[string]any
	require.NoError(t, toml.Unmarshal([]byte(testutil.ReadString(t, fsys, "/proj/pyproject.toml")), &doc))

	proj := doc["project"].(map[string]any)
	assert.Equal(t, "sophgoapi", proj["name"])
	assert.Equal(t, "1.0.5", proj["version"])
	assert.Equal(t, []any{"opencv-python==4.10.0.84", "shapely==2.0.6", "psutil"}, proj["dependencies"])
	assert.Equal(t, "Apache License 2.0", proj["license"].(map[string]any)["text"])

	st := doc["tool"].(map[string]any)["setuptools"].(map[string]any)
	assert.Equal(t, true, st["include-package-data"])
	assert.Equal(t, []any{"model.so", "app.yml"}, st["package-data"].(map[string]any)["sophgoapi"])
}

func TestAssemble_ToolchainFailure(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/proj", map[string]string{"sophgoapi/model.so": ""})

	runner := &mockRunner{}
	runErr := errors.New(errors.ErrInternal, "command python3 failed").WithDetail("stderr", "No module named build")
	runner.On("Run", mock.Anything, mock.Anything).Return(executor.Result{ExitCode: 1}, runErr)

	_, err := NewAssembler(defaultPackageConfig(t), fsys, runner, "/proj").Assemble(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackage))
	assert.Equal(t, "No module named build", errors.GetErrorDetails(err)["stderr"])

	// inputs are still in place for a manual retry
	testutil.AssertExists(t, fsys, "/proj/MANIFEST.in")
	testutil.AssertExists(t, fsys, "/proj/sophgoapi/__init__.py")
}

func TestPrepare_WithoutProjectFile(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/proj", map[string]string{"notes.txt": ""})

	cfg := defaultPackageConfig(t)
	cfg.ProjectFile = ""
	cfg.Name = "mypkg"

	result, err := NewAssembler(cfg, fsys, &mockRunner{}, "/proj").Prepare()
	require.NoError(t, err)

	assert.Equal(t, "/proj/mypkg/__init__.py", result.Marker)
	assert.Empty(t, result.ProjectFile)
	testutil.AssertNotExists(t, fsys, "/proj/pyproject.toml")
	assert.Equal(t, []string{"MANIFEST.in", "mypkg/__init__.py", "notes.txt"}, testutil.ListFiles(t, fsys, "/proj"))
}

func TestPrepare_ExistingProjectFile(t *testing.T) {
	const userProject = "[project]\nname = \"mine\"\n"

	t.Run("overwritten with a warning", func(t *testing.T) {
		var buf bytes.Buffer
		prev := log.Logger
		log.Logger = zerolog.New(&buf)
		t.Cleanup(func() { log.Logger = prev })

		fsys := testutil.NewTestFS()
		testutil.WriteTree(t, fsys, "/proj", map[string]string{"pyproject.toml": userProject})

		_, err := NewAssembler(defaultPackageConfig(t), fsys, &mockRunner{}, "/proj").Prepare()
		require.NoError(t, err)

		assert.NotContains(t, testutil.ReadString(t, fsys, "/proj/pyproject.toml"), "mine")
		assert.Contains(t, buf.String(), "Overwriting existing project file")
	})

	t.Run("preserved", func(t *testing.T) {
		fsys := testutil.NewTestFS()
		testutil.WriteTree(t, fsys, "/proj", map[string]string{"pyproject.toml": userProject})

		cfg := defaultPackageConfig(t)
		cfg.PreserveProject = true
		result, err := NewAssembler(cfg, fsys, &mockRunner{}, "/proj").Prepare()
		require.NoError(t, err)

		assert.Equal(t, userProject, testutil.ReadString(t, fsys, "/proj/pyproject.toml"))
		assert.Equal(t, "/proj/pyproject.toml", result.ProjectFile)
	})
}
