package rules

import (
	stderrors "errors"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/cyrelease/pkg/filesystem"
	"github.com/arthur-debert/cyrelease/pkg/logging"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/rs/zerolog"
)

// SkipReason explains why a source file was not yielded as a compile candidate
type SkipReason string

const (
	SkipEscaped  SkipReason = "escaped"
	SkipExcluded SkipReason = "excluded"
	SkipMarker   SkipReason = "marker"
)

// SkipFunc is notified of every source file the scanner leaves out
type SkipFunc func(path string, reason SkipReason)

// Scanner walks directory trees and yields files lazily
type Scanner struct {
	fs        types.FS
	matcher   *Matcher
	extension string
	exclude   []string
	prune     []string
	logger    zerolog.Logger
}

// ScannerOptions configures a Scanner
type ScannerOptions struct {
	// Extension selects source files, e.g. ".py"
	Extension string

	// ExcludeSubstrings disqualify any path containing them
	ExcludeSubstrings []string

	// Prune lists directories that are never descended into
	Prune []string
}

// NewScanner creates a new scanner applying matcher's rules
func NewScanner(fsys types.FS, matcher *Matcher, opts ScannerOptions) *Scanner {
	return &Scanner{
		fs:        fsys,
		matcher:   matcher,
		extension: opts.Extension,
		exclude:   opts.ExcludeSubstrings,
		prune:     opts.Prune,
		logger:    logging.GetLogger("rules.scanner"),
	}
}

var errStopWalk = stderrors.New("stop walk")

// Files yields every regular file under root whose name ends in ext.
// Unreadable directories are logged and skipped.
func (s *Scanner) Files(root, ext string) iter.Seq[string] {
	return func(yield func(string) bool) {
		err := filesystem.Walk(s.fs, root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				s.logger.Warn().Err(err).Str("path", path).Msg("Cannot read directory, skipping")
				return nil
			}
			if entry.IsDir() {
				if path != root && s.pruned(path) {
					return filesystem.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(entry.Name(), ext) {
				return nil
			}
			if !yield(path) {
				return errStopWalk
			}
			return nil
		})
		if err != nil && !stderrors.Is(err, errStopWalk) {
			s.logger.Warn().Err(err).Str("root", root).Msg("Walk aborted")
		}
	}
}

// Sources yields the compile candidates under root: files with the source
// extension that are neither excluded, escaped, nor marked to skip.
// onSkip, if set, receives every source file left out.
func (s *Scanner) Sources(root string, onSkip SkipFunc) iter.Seq[string] {
	return func(yield func(string) bool) {
		for path := range s.Files(root, s.extension) {
			reason, skip := s.classify(path)
			if skip {
				s.logger.Info().Str("file", path).Str("reason", string(reason)).Msg("Skipping file")
				if onSkip != nil {
					onSkip(path, reason)
				}
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}

func (s *Scanner) classify(path string) (SkipReason, bool) {
	if ContainsAny(path, s.exclude) {
		return SkipExcluded, true
	}
	if s.matcher.Escaped(path) {
		return SkipEscaped, true
	}
	marked, err := s.matcher.HasSkipMarker(path)
	if err != nil {
		// the toolchain will report the file as failed
		s.logger.Warn().Err(err).Str("file", path).Msg("Cannot inspect file for skip marker")
		return "", false
	}
	if marked {
		return SkipMarker, true
	}
	return "", false
}

func (s *Scanner) pruned(dir string) bool {
	for _, p := range s.prune {
		if p != "" && filepath.Clean(dir) == filepath.Clean(p) {
			return true
		}
	}
	return false
}
