package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/logging"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"
)

// SynthRelocator relocates binaries on the real filesystem by running
// synthfs pipelines. Each relocation is its own set of pipelines, so a
// failure never touches other files.
type SynthRelocator struct {
	logger     zerolog.Logger
	root       string
	filesystem synthfs.FileSystem
}

// NewSynthRelocator creates a relocator rooted at /
func NewSynthRelocator() *SynthRelocator {
	return &SynthRelocator{
		logger:     logging.GetLogger("compiler.synthfs"),
		root:       "/",
		filesystem: filesystem.NewOSFileSystem("/"),
	}
}

// Relocate implements Relocator. A stale binary at the target is removed
// first, then the artifact is copied, then the build copy and the
// intermediates are deleted in one pipeline.
func (s *SynthRelocator) Relocate(r Relocation) (string, error) {
	target, err := filepath.Abs(r.Target())
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to normalize %s", r.Target())
	}
	artifact, err := filepath.Abs(r.Artifact)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to normalize %s", r.Artifact)
	}
	if _, err := os.Lstat(artifact); err != nil {
		return "", errors.Wrapf(err, errors.ErrRelocate, "artifact %s is not readable", artifact)
	}

	if _, err := os.Lstat(target); err == nil {
		op, err := s.deleteOp(target)
		if err != nil {
			return "", err
		}
		if err := s.run(op); err != nil {
			return "", errors.Wrapf(err, errors.ErrRelocate, "failed to replace %s", target)
		}
	}

	copyOp, err := s.copyOp(artifact, target)
	if err != nil {
		return "", err
	}
	if err := s.run(copyOp); err != nil {
		return "", errors.Wrapf(err, errors.ErrRelocate, "failed to copy %s to %s", artifact, target)
	}

	leftovers := []string{artifact}
	base := filepath.Join(filepath.Dir(target), Stem(target))
	for _, ext := range r.Intermediates {
		if _, err := os.Lstat(base + ext); err == nil {
			leftovers = append(leftovers, base+ext)
		}
	}

	cleanup := make([]synthfs.Operation, 0, len(leftovers))
	for _, path := range leftovers {
		op, err := s.deleteOp(path)
		if err != nil {
			return target, err
		}
		cleanup = append(cleanup, op)
	}
	if err := s.run(cleanup...); err != nil {
		return target, errors.Wrapf(err, errors.ErrFileRemove, "failed to remove build leftovers of %s", r.Source)
	}

	s.logger.Debug().
		Str("artifact", artifact).
		Str("target", target).
		Int("removed", len(leftovers)).
		Msg("Binary relocated")
	return target, nil
}

func (s *SynthRelocator) rel(path string) (string, error) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", path)
	}
	return rel, nil
}

func (s *SynthRelocator) copyOp(src, dst string) (synthfs.Operation, error) {
	relSrc, err := s.rel(src)
	if err != nil {
		return nil, err
	}
	relDst, err := s.rel(dst)
	if err != nil {
		return nil, err
	}

	opID := core.OperationID(fmt.Sprintf("copy-%s-to-%s", filepath.Base(src), dst))
	copyOp := operations.NewCopyOperation(opID, relDst)
	copyOp.SetPaths(relSrc, relDst)
	return synthfs.NewOperationsPackageAdapter(copyOp), nil
}

func (s *SynthRelocator) deleteOp(path string) (synthfs.Operation, error) {
	relPath, err := s.rel(path)
	if err != nil {
		return nil, err
	}
	opID := core.OperationID(fmt.Sprintf("delete-%s", path))
	return synthfs.NewOperationsPackageAdapter(operations.NewDeleteOperation(opID, relPath)), nil
}

// run executes ops as one pipeline
func (s *SynthRelocator) run(ops ...synthfs.Operation) error {
	pipeline := synthfs.NewMemPipeline()
	for _, op := range ops {
		if err := pipeline.Add(op); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to add operation to pipeline")
		}
	}

	result := synthfs.NewExecutor().Run(context.Background(), pipeline, s.filesystem)
	if err := result.GetError(); err != nil {
		s.logger.Error().Err(err).Int("operations", len(ops)).Msg("Pipeline execution failed")
		return err
	}
	return nil
}
