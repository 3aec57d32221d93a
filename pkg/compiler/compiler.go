package compiler

import (
	"context"
	"strings"
	"time"

	"github.com/arthur-debert/cyrelease/pkg/config"
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/executor"
	"github.com/arthur-debert/cyrelease/pkg/logging"
	"github.com/rs/zerolog"
)

// Placeholders substituted in the configured compiler arguments
const (
	PlaceholderSource        = "{source}"
	PlaceholderBuildDir      = "{build_dir}"
	PlaceholderLanguageLevel = "{language_level}"
)

// Job is a single compilation request
type Job struct {
	// Source is the absolute path of the file to compile
	Source string

	// BuildDir receives the toolchain output; it is private to one worker
	BuildDir string
}

// Compiler turns a source file into a binary below Job.BuildDir
type Compiler interface {
	Compile(ctx context.Context, job Job) error
}

// CommandCompiler runs an external command per job
type CommandCompiler struct {
	runner        executor.Runner
	command       string
	args          []string
	languageLevel string
	timeout       time.Duration
	logger        zerolog.Logger
}

// NewCommandCompiler creates a compiler from the compiler configuration
func NewCommandCompiler(runner executor.Runner, cfg config.CompilerConfig) *CommandCompiler {
	return &CommandCompiler{
		runner:        runner,
		command:       cfg.Command,
		args:          cfg.Args,
		languageLevel: cfg.LanguageLevel,
		timeout:       cfg.Timeout,
		logger:        logging.GetLogger("compiler"),
	}
}

// Args returns the argument list for job with every placeholder expanded
func (c *CommandCompiler) Args(job Job) []string {
	r := strings.NewReplacer(
		PlaceholderSource, job.Source,
		PlaceholderBuildDir, job.BuildDir,
		PlaceholderLanguageLevel, c.languageLevel,
	)
	args := make([]string, len(c.args))
	for i, arg := range c.args {
		args[i] = r.Replace(arg)
	}
	return args
}

// Compile runs the toolchain for job. Any failure of the command, including
// a timeout, is reported as ErrCompile.
func (c *CommandCompiler) Compile(ctx context.Context, job Job) error {
	if job.Source == "" || job.BuildDir == "" {
		return errors.New(errors.ErrInvalidInput, "compile job needs a source and a build dir")
	}

	c.logger.Debug().
		Str("source", job.Source).
		Str("buildDir", job.BuildDir).
		Msg("Compiling")

	_, err := c.runner.Run(ctx, executor.Command{
		Name:    c.command,
		Args:    c.Args(job),
		Timeout: c.timeout,
	})
	if err != nil {
		wrapped := errors.Wrapf(err, errors.ErrCompile, "failed to compile %s", job.Source).
			WithDetail("source", job.Source)
		if stderr, ok := errors.GetErrorDetails(err)["stderr"]; ok {
			wrapped = wrapped.WithDetail("stderr", stderr)
		}
		return wrapped
	}
	return nil
}
