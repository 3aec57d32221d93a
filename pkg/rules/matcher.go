package rules

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/logging"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/rs/zerolog"
)

// MatcherOptions configures a Matcher
type MatcherOptions struct {
	// Escapes protect every path containing one of them
	Escapes []string

	// SelfPath is the running program; it is never compiled or deleted
	SelfPath string

	// SkipMarker is the pattern a line must match to exempt its file
	SkipMarker string

	// MarkerLines is how many leading lines are inspected for the marker
	MarkerLines int
}

// Matcher applies escape and skip-marker rules to candidate paths
type Matcher struct {
	fs          types.FS
	escapes     EscapeList
	selfPath    string
	marker      *regexp.Regexp
	markerLines int
	logger      zerolog.Logger
}

// NewMatcher creates a matcher reading files through fsys
func NewMatcher(fsys types.FS, opts MatcherOptions) (*Matcher, error) {
	var marker *regexp.Regexp
	if opts.SkipMarker != "" {
		re, err := regexp.Compile(opts.SkipMarker)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid skip marker pattern").
				WithDetail("pattern", opts.SkipMarker)
		}
		marker = re
	}

	return &Matcher{
		fs:          fsys,
		escapes:     EscapeList(opts.Escapes),
		selfPath:    opts.SelfPath,
		marker:      marker,
		markerLines: opts.MarkerLines,
		logger:      logging.GetLogger("rules.matcher"),
	}, nil
}

// Escaped reports whether path is protected by an escape or is the program itself
func (m *Matcher) Escaped(path string) bool {
	if m.selfPath != "" && path == m.selfPath {
		return true
	}
	return m.escapes.Matches(path)
}

// HasSkipMarker reports whether one of the first lines of path matches the skip marker
func (m *Matcher) HasSkipMarker(path string) (bool, error) {
	if m.marker == nil || m.markerLines <= 0 {
		return false, nil
	}

	f, err := m.fs.Open(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", path)
	}
	defer func() { _ = f.Close() }()

	reader := bufio.NewReader(f)
	for i := 0; i < m.markerLines; i++ {
		line, err := reader.ReadString('\n')
		if line != "" && m.marker.MatchString(strings.TrimRight(line, "\r\n")) {
			m.logger.Trace().Str("file", path).Int("line", i+1).Msg("Skip marker found")
			return true, nil
		}
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
		}
	}
	return false, nil
}
