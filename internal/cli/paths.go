package cli

import (
	"path/filepath"

	"github.com/arthur-debert/cyrelease/pkg/logging"
	"github.com/arthur-debert/cyrelease/pkg/types"
)

// resolvePaths makes every path absolute against wd and drops the ones
// that do not exist. The result is never nil.
func resolvePaths(fsys types.FS, wd string, paths []string) []string {
	logger := logging.GetLogger("cli.paths")
	out := []string{}
	seen := map[string]bool{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(wd, abs)
		}
		abs = filepath.Clean(abs)
		if _, err := fsys.Stat(abs); err != nil {
			logger.Debug().Str("path", p).Msg("Dropping non-existent path")
			continue
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
	}
	return out
}
