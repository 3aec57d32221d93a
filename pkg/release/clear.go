package release

import (
	"context"
	stderrors "errors"
	"io/fs"
	"iter"
	"time"

	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/rules"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/rs/zerolog"
)

// ClearSources deletes every source file under dirs that is not escaped.
// Nil escapes select the configured clear_sources list.
func (o *Orchestrator) ClearSources(ctx context.Context, dirs, escapes []string) (*types.Report, error) {
	if escapes == nil {
		escapes = o.cfg.Escapes.ClearSources
	}
	return o.clear(ctx, OperationClearSources, o.cfg.Source.Extension, dirs, escapes)
}

// ClearBinaries deletes every binary under dirs that is not escaped.
// Nil escapes select the configured clear_binaries list.
func (o *Orchestrator) ClearBinaries(ctx context.Context, dirs, escapes []string) (*types.Report, error) {
	if escapes == nil {
		escapes = o.cfg.Escapes.ClearBinaries
	}
	return o.clear(ctx, OperationClearBinaries, o.cfg.Binary.Extension, dirs, escapes)
}

func (o *Orchestrator) clear(ctx context.Context, operation, ext string, dirs, escapes []string) (*types.Report, error) {
	if dirs == nil {
		return nil, errors.New(errors.ErrInvalidInput, "dirs must not be nil")
	}

	matcher, err := o.newMatcher(escapes)
	if err != nil {
		return nil, err
	}
	scanner := o.newScanner(matcher)

	report := o.newReport(operation)
	for _, dir := range dirs {
		start := time.Now()
		result := &types.TaskResult{Dir: dir}
		report.Tasks = append(report.Tasks, result)

		if err := ctx.Err(); err != nil {
			result.Err = errors.Wrap(err, errors.ErrCanceled, "clear interrupted")
			result.Error = result.Err.Error()
			break
		}

		logger := o.logger.With().Str("dir", dir).Str("operation", operation).Logger()
		logger.Info().Str("extension", ext).Msg("Clearing files")
		o.removeAll(scanner.Files(dir, ext), matcher, result, logger)
		result.Duration = time.Since(start)
	}
	report.FinishedAt = time.Now()
	return report, nil
}

// removeAll deletes every file of files that matcher does not protect
func (o *Orchestrator) removeAll(files iter.Seq[string], matcher *rules.Matcher, result *types.TaskResult, logger zerolog.Logger) {
	for path := range files {
		if matcher.Escaped(path) {
			logger.Info().Str("file", path).Msg("Skipping removal")
			result.Skipped = append(result.Skipped, path)
			continue
		}
		if err := o.fs.Remove(path); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			logger.Error().Err(err).Str("file", path).Msg("Failed to remove file")
			result.Failed = append(result.Failed, path)
			continue
		}
		logger.Debug().Str("file", path).Msg("Removed")
		result.Removed = append(result.Removed, path)
	}
}
