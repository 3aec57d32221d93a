// pkg/compiler/compiler_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Mock runner
// PURPOSE: Test placeholder expansion and compile failure reporting

package compiler_test

import (
	"context"
	"testing"
	"time"

	"github.com/arthur-debert/cyrelease/pkg/compiler"
	"github.com/arthur-debert/cyrelease/pkg/config"
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/executor"
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

func testCompilerConfig() config.CompilerConfig {
	return config.CompilerConfig{
		Command:       "python3",
		Args:          []string{"-c", "script", "{source}", "{build_dir}", "{language_level}", "--out={build_dir}/lib"},
		LanguageLevel: "3",
		Timeout:       time.Minute,
	}
}

func TestCommandCompiler_Args(t *testing.T) {
	c := compiler.NewCommandCompiler(&mockRunner{}, testCompilerConfig())

	got := c.Args(compiler.Job{Source: "/app/model.py", BuildDir: "/app/build/0"})
	assert.Equal(t, []string{"-c", "script", "/app/model.py", "/app/build/0", "3", "--out=/app/build/0/lib"}, got)
}

func TestCommandCompiler_Compile(t *testing.T) {
	runner := &mockRunner{}
	job := compiler.Job{Source: "/app/model.py", BuildDir: "/app/build/0"}

	runner.On("Run", mock.Anything, executor.Command{
		Name:    "python3",
		Args:    []string{"-c", "script", "/app/model.py", "/app/build/0", "3", "--out=/app/build/0/lib"},
		Timeout: time.Minute,
	}).Return(executor.Result{}, nil)

	c := compiler.NewCommandCompiler(runner, testCompilerConfig())
	require.NoError(t, c.Compile(context.Background(), job))
	runner.AssertExpectations(t)
}

func TestCommandCompiler_CompileFailure(t *testing.T) {
	runner := &mockRunner{}
	runErr := errors.New(errors.ErrInternal, "command python3 failed").
		WithDetail("stderr", "SyntaxError: invalid syntax")
	runner.On("Run", mock.Anything, mock.Anything).Return(executor.Result{ExitCode: 1}, runErr)

	c := compiler.NewCommandCompiler(runner, testCompilerConfig())
	err := c.Compile(context.Background(), compiler.Job{Source: "/app/broken.py", BuildDir: "/tmp/b"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCompile))
	details := errors.GetErrorDetails(err)
	assert.Equal(t, "/app/broken.py", details["source"])
	assert.Equal(t, "SyntaxError: invalid syntax", details["stderr"])
}

func TestCommandCompiler_InvalidJob(t *testing.T) {
	c := compiler.NewCommandCompiler(&mockRunner{}, testCompilerConfig())
	err := c.Compile(context.Background(), compiler.Job{Source: "/app/a.py"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
