// pkg/rules/scanner_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test lazy source discovery and exclusion order

package rules

import (
	"slices"
	"testing"

	"github.com/arthur-debert/cyrelease/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner(t *testing.T, tree map[string]string, prune ...string) *Scanner {
	t.Helper()
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/app", tree)

	m, err := NewMatcher(fsys, MatcherOptions{
		Escapes:     []string{"__init__.py", "test.py", "setup.py"},
		SelfPath:    "/app/release.py",
		SkipMarker:  testMarker,
		MarkerLines: 10,
	})
	require.NoError(t, err)

	return NewScanner(fsys, m, ScannerOptions{
		Extension:         ".py",
		ExcludeSubstrings: []string{"yml"},
		Prune:             prune,
	})
}

func TestScanner_Sources(t *testing.T) {
	s := newTestScanner(t, map[string]string{
		"release.py":         "",
		"setup.py":           "",
		"a.py":               "",
		"b.py":               "# cython: skip\n",
		"pkg/__init__.py":    "",
		"pkg/test.py":        "",
		"pkg/latest.py":      "",
		"pkg/model.py":       "",
		"pkg/model.so":       "",
		"yml_loader/conf.py": "",
		"data/notes.txt":     "",
		"build/0/pkg/gen.py": "",
	}, "/app/build")

	skipped := map[string]SkipReason{}
	got := slices.Collect(s.Sources("/app", func(path string, reason SkipReason) {
		skipped[path] = reason
	}))

	assert.Equal(t, []string{"/app/a.py", "/app/pkg/model.py"}, got)
	assert.Equal(t, map[string]SkipReason{
		"/app/release.py":         SkipEscaped,
		"/app/setup.py":           SkipEscaped,
		"/app/b.py":               SkipMarker,
		"/app/pkg/__init__.py":    SkipEscaped,
		"/app/pkg/test.py":        SkipEscaped,
		"/app/pkg/latest.py":      SkipEscaped,
		"/app/yml_loader/conf.py": SkipExcluded,
	}, skipped)
}

func TestScanner_SourcesIsLazy(t *testing.T) {
	s := newTestScanner(t, map[string]string{
		"a.py": "",
		"b.py": "",
		"c.py": "",
	})

	var seen []string
	for path := range s.Sources("/app", nil) {
		seen = append(seen, path)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"/app/a.py", "/app/b.py"}, seen)
}

func TestScanner_Files(t *testing.T) {
	s := newTestScanner(t, map[string]string{
		"a.so":         "",
		"__init__.so":  "",
		"pkg/b.so":     "",
		"pkg/b.py":     "",
		"pkg/b.so.bak": "",
	})

	got := slices.Collect(s.Files("/app", ".so"))
	assert.Equal(t, []string{"/app/__init__.so", "/app/a.so", "/app/pkg/b.so"}, got)
}

func TestScanner_MissingRoot(t *testing.T) {
	s := newTestScanner(t, map[string]string{"a.py": ""})
	assert.Empty(t, slices.Collect(s.Sources("/missing", nil)))
}
