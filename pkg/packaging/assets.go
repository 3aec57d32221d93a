package packaging

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/filesystem"
	"github.com/arthur-debert/cyrelease/pkg/types"
)

// DiscoverAssets returns every file under root whose name matches one of
// patterns, as slash-separated paths relative to root. Results are grouped
// by pattern in the given order and sorted within a group; a file matching
// several patterns is listed once, under the first.
func DiscoverAssets(fsys types.FS, root string, patterns []string) ([]string, error) {
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid asset pattern %q", p)
		}
	}

	groups := make([][]string, len(patterns))
	err := filesystem.Walk(fsys, root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		for i, p := range patterns {
			if ok, _ := filepath.Match(p, entry.Name()); ok {
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					return relErr
				}
				groups[i] = append(groups[i], filepath.ToSlash(rel))
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot scan %s for assets", root)
	}

	var assets []string
	for _, g := range groups {
		sort.Strings(g)
		assets = append(assets, g...)
	}
	return assets, nil
}

// ManifestContent renders one include line per asset
func ManifestContent(assets []string) string {
	var b strings.Builder
	for _, a := range assets {
		b.WriteString("include ")
		b.WriteString(a)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteManifest writes the inclusion manifest, replacing any existing one
func WriteManifest(fsys types.FS, path string, assets []string) error {
	if err := fsys.WriteFile(path, []byte(ManifestContent(assets)), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifest, "failed to write %s", path)
	}
	return nil
}

// EnsureMarker makes sure the package marker file exists. An existing marker
// is truncated unless preserve is set.
func EnsureMarker(fsys types.FS, path string, preserve bool) error {
	if preserve && filesystem.Exists(fsys, path) {
		return nil
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := fsys.WriteFile(path, nil, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write marker %s", path)
	}
	return nil
}

// PackageData returns the assets under the package directory pkgDir,
// relative to it
func PackageData(assets []string, pkgDir string) []string {
	prefix := strings.TrimSuffix(filepath.ToSlash(pkgDir), "/") + "/"
	var out []string
	for _, a := range assets {
		if rest, ok := strings.CutPrefix(a, prefix); ok {
			out = append(out, rest)
		}
	}
	return out
}
