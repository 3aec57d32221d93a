package release

import (
	"context"
	stderrors "errors"
	"io/fs"
	"time"

	"github.com/arthur-debert/cyrelease/pkg/compiler"
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/rules"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/rs/zerolog"
)

// build runs the per-directory procedure of one worker
func (o *Orchestrator) build(ctx context.Context, task types.Task) *types.TaskResult {
	start := time.Now()
	result := &types.TaskResult{Dir: task.Dir}
	logger := o.logger.With().Int("worker", task.Index).Str("dir", task.Dir).Logger()

	defer func() {
		result.Duration = time.Since(start)
		if result.Err != nil {
			result.Error = result.Err.Error()
		}
	}()

	if _, err := o.fs.Stat(task.Dir); err != nil {
		result.Err = errors.Wrapf(err, errors.ErrWorker, "cannot access %s", task.Dir)
		logger.Error().Err(err).Msg("Worker cannot access its directory")
		return result
	}

	matcher, err := o.newMatcher(task.Escapes)
	if err != nil {
		result.Err = errors.Wrap(err, errors.ErrWorker, "cannot build matcher")
		return result
	}
	scanner := o.newScanner(matcher, o.buildRoot)

	logger.Info().Msg("Packaging sources")

	if task.DeleteBinariesFirst {
		o.removeAll(scanner.Files(task.Dir, o.cfg.Binary.Extension), matcher, result, logger)
	}

	buildDir := o.workerBuildDir(task.Index)
	onSkip := func(path string, _ rules.SkipReason) {
		result.Skipped = append(result.Skipped, path)
	}

	for source := range scanner.Sources(task.Dir, onSkip) {
		if err := ctx.Err(); err != nil {
			result.Err = errors.Wrap(err, errors.ErrCanceled, "build interrupted")
			logger.Warn().Msg("Build interrupted")
			break
		}
		o.compileOne(ctx, source, buildDir, task, result, logger)
	}

	for _, failed := range result.Failed {
		logger.Error().Str("file", failed).Msg("File failed to compile")
	}

	return result
}

func (o *Orchestrator) compileOne(ctx context.Context, source, buildDir string, task types.Task, result *types.TaskResult, logger zerolog.Logger) {
	logger.Info().Str("file", source).Msg("Compiling")

	if err := o.compiler.Compile(ctx, compiler.Job{Source: source, BuildDir: buildDir}); err != nil {
		logger.Error().Err(err).Str("file", source).Msg("Compilation failed")
		result.Failed = append(result.Failed, source)
		return
	}

	artifact, err := compiler.FindArtifact(o.fs, buildDir, compiler.Stem(source), o.cfg.Binary.Extension)
	if err != nil {
		logger.Warn().Err(err).Str("file", source).Msg("No binary produced, keeping source")
		result.Missing = append(result.Missing, source)
		return
	}

	target, err := o.relocator.Relocate(compiler.Relocation{
		Source:        source,
		Artifact:      artifact,
		Extension:     o.cfg.Binary.Extension,
		Intermediates: o.cfg.Binary.IntermediateExtensions,
	})
	if err != nil {
		logger.Error().Err(err).Str("file", source).Msg("Failed to place binary")
		result.Failed = append(result.Failed, source)
		return
	}
	logger.Info().Str("from", artifact).Str("to", target).Msg("Binary placed")

	if task.DeleteSourcesAfter {
		if err := o.fs.Remove(source); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			logger.Error().Err(err).Str("file", source).Msg("Failed to remove source")
			result.Failed = append(result.Failed, source)
			return
		}
		result.Removed = append(result.Removed, source)
	}
	result.Compiled = append(result.Compiled, source)
}
