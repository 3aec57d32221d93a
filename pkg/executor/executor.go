package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/logging"
	"github.com/rs/zerolog"
)

// waitDelay bounds how long Run waits for output pipes after the command
// was killed
const waitDelay = 2 * time.Second

// Command describes one external process invocation
type Command struct {
	Name string
	Args []string

	// Dir is the working directory; empty means the current one
	Dir string

	// Env is appended to the current environment
	Env map[string]string

	// Timeout of zero means the command may run forever
	Timeout time.Duration
}

// Result represents the result of a command execution
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes commands. Compilers and the package assembler depend on
// this interface so tests can substitute the toolchain.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Executor runs commands as child processes
type Executor struct {
	logger zerolog.Logger
}

// New creates a new executor
func New() *Executor {
	return &Executor{
		logger: logging.GetLogger("executor"),
	}
}

// Run executes cmd and waits for it. A non-zero exit, a start failure, a
// timeout, or a canceled context is returned as an error carrying the captured stderr.
func (e *Executor) Run(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Name == "" {
		return Result{}, errors.New(errors.ErrInvalidInput, "command name is required")
	}

	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	logging.LogCommand(e.logger, cmd.Name, cmd.Args)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	isolate(c)
	c.WaitDelay = waitDelay
	if cmd.Dir != "" {
		if _, err := os.Stat(cmd.Dir); err != nil {
			return Result{}, errors.Wrapf(err, errors.ErrFileAccess,
				"working directory does not exist: %s", cmd.Dir)
		}
		c.Dir = cmd.Dir
	}

	c.Env = os.Environ()
	for key, value := range cmd.Env {
		c.Env = append(c.Env, fmt.Sprintf("%s=%s", key, value))
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(c, err),
		Duration: time.Since(start),
	}

	if stdout.Len() > 0 {
		e.logger.Debug().Str("command", cmd.Name).Str("output", result.Stdout).Msg("Command stdout")
	}
	if stderr.Len() > 0 {
		e.logger.Debug().Str("command", cmd.Name).Str("output", result.Stderr).Msg("Command stderr")
	}

	if err != nil {
		code := errors.ErrInternal
		if ctxErr := ctx.Err(); ctxErr != nil {
			code = errors.ErrCanceled
			err = fmt.Errorf("%w: %w", err, ctxErr)
		}
		return result, errors.Wrapf(err, code, "command %s failed", cmd.Name).
			WithDetail("exitCode", result.ExitCode).
			WithDetail("stderr", Tail(result.Stderr, 20))
	}

	e.logger.Debug().
		Str("command", cmd.Name).
		Dur("duration", result.Duration).
		Msg("Command executed successfully")

	return result, nil
}

func exitCode(c *exec.Cmd, err error) int {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if err != nil {
		return -1
	}
	if c.ProcessState != nil {
		return c.ProcessState.ExitCode()
	}
	return 0
}

// Tail returns the last n non-empty lines of s
func Tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
