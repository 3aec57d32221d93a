package release

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/arthur-debert/cyrelease/pkg/compiler"
	"github.com/arthur-debert/cyrelease/pkg/config"
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/logging"
	"github.com/arthur-debert/cyrelease/pkg/rules"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Operation names recorded in reports
const (
	OperationBuild         = "build"
	OperationClearSources  = "clear-sources"
	OperationClearBinaries = "clear-binaries"
)

// Params holds everything an Orchestrator needs
type Params struct {
	Config   *config.Config
	FS       types.FS
	Compiler compiler.Compiler

	// Relocator places binaries next to their sources; nil relocates
	// through FS
	Relocator compiler.Relocator

	// SelfPath is the running program; it is never compiled or deleted
	SelfPath string

	// BuildRoot is the absolute directory under which workers get their
	// build dirs. It is removed after every run.
	BuildRoot string
}

// Options are the inputs of one Start call
type Options struct {
	Dirs                []string
	Escapes             []string
	DeleteBinariesFirst bool
	DeleteSourcesAfter  bool
}

// Orchestrator runs release operations over directory trees
type Orchestrator struct {
	cfg       *config.Config
	fs        types.FS
	compiler  compiler.Compiler
	relocator compiler.Relocator
	selfPath  string
	buildRoot string
	logger    zerolog.Logger
}

// New creates an orchestrator
func New(p Params) (*Orchestrator, error) {
	if p.Config == nil || p.FS == nil || p.Compiler == nil {
		return nil, errors.New(errors.ErrInvalidInput, "orchestrator needs a config, a filesystem and a compiler")
	}
	if !filepath.IsAbs(p.BuildRoot) {
		return nil, errors.Newf(errors.ErrInvalidInput, "build root must be absolute: %q", p.BuildRoot)
	}
	relocator := p.Relocator
	if relocator == nil {
		relocator = compiler.FSRelocator{FS: p.FS}
	}
	return &Orchestrator{
		cfg:       p.Config,
		fs:        p.FS,
		compiler:  p.Compiler,
		relocator: relocator,
		selfPath:  p.SelfPath,
		buildRoot: filepath.Clean(p.BuildRoot),
		logger:    logging.GetLogger("release"),
	}, nil
}

// BuildRoot returns the directory removed by Cleanup
func (o *Orchestrator) BuildRoot() string {
	return o.buildRoot
}

// Start compiles every directory of opts concurrently, one worker per
// directory, waits for all of them and removes the build root. Nil Escapes
// select the configured build escapes. The returned error is only set for
// invalid input; per-file and per-worker failures are in the report.
func (o *Orchestrator) Start(ctx context.Context, opts Options) (*types.Report, error) {
	if opts.Dirs == nil {
		return nil, errors.New(errors.ErrInvalidInput, "dirs must not be nil")
	}
	escapes := opts.Escapes
	if escapes == nil {
		escapes = o.cfg.Escapes.Build
	}

	report := o.newReport(OperationBuild)
	logger := o.logger.With().Str("runId", report.RunID).Logger()
	logger.Info().
		Strs("dirs", opts.Dirs).
		Bool("deleteBinaries", opts.DeleteBinariesFirst).
		Bool("deleteSources", opts.DeleteSourcesAfter).
		Msg("Starting release build")

	results := make([]*types.TaskResult, len(opts.Dirs))

	var g errgroup.Group
	if n := o.cfg.Release.Concurrency; n > 0 {
		g.SetLimit(n)
	}
	for i, dir := range opts.Dirs {
		task := types.Task{
			Index:               i,
			Dir:                 dir,
			Escapes:             escapes,
			DeleteBinariesFirst: opts.DeleteBinariesFirst,
			DeleteSourcesAfter:  opts.DeleteSourcesAfter,
		}
		g.Go(func() error {
			// a worker never fails the group; its error lives in its result
			results[i] = o.build(ctx, task)
			return nil
		})
	}
	_ = g.Wait()

	if err := o.Cleanup(); err != nil {
		logger.Warn().Err(err).Str("buildRoot", o.buildRoot).Msg("Failed to remove build root")
	}

	report.Tasks = results
	report.FinishedAt = time.Now()

	logger.Info().
		Int("compiled", report.Count(compiled)).
		Int("skipped", report.Count(skipped)).
		Int("failed", len(report.Failures())).
		Dur("duration", report.FinishedAt.Sub(report.StartedAt)).
		Msg("Release build finished")

	return report, nil
}

// Cleanup removes the build root. Calling it again is a no-op.
func (o *Orchestrator) Cleanup() error {
	if _, err := o.fs.Stat(o.buildRoot); err != nil {
		return nil
	}
	if err := o.fs.RemoveAll(o.buildRoot); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", o.buildRoot)
	}
	o.logger.Debug().Str("buildRoot", o.buildRoot).Msg("Build root removed")
	return nil
}

func (o *Orchestrator) newReport(operation string) *types.Report {
	return &types.Report{
		RunID:     uuid.NewString(),
		Operation: operation,
		StartedAt: time.Now(),
	}
}

func (o *Orchestrator) newMatcher(escapes []string) (*rules.Matcher, error) {
	return rules.NewMatcher(o.fs, rules.MatcherOptions{
		Escapes:     escapes,
		SelfPath:    o.selfPath,
		SkipMarker:  o.cfg.Source.SkipMarker,
		MarkerLines: o.cfg.Source.MarkerLines,
	})
}

func (o *Orchestrator) newScanner(m *rules.Matcher, prune ...string) *rules.Scanner {
	return rules.NewScanner(o.fs, m, rules.ScannerOptions{
		Extension:         o.cfg.Source.Extension,
		ExcludeSubstrings: o.cfg.Source.ExcludeSubstrings,
		Prune:             prune,
	})
}

func (o *Orchestrator) workerBuildDir(index int) string {
	return filepath.Join(o.buildRoot, strconv.Itoa(index))
}

func compiled(r *types.TaskResult) []string { return r.Compiled }
func skipped(r *types.TaskResult) []string  { return r.Skipped }
