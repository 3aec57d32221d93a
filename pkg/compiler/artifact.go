package compiler

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/filesystem"
	"github.com/arthur-debert/cyrelease/pkg/types"
)

// Stem returns the file name of path without its extension
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// MatchesArtifact reports whether name is a binary built from stem:
// either <stem><ext> or <stem>.<tag><ext>.
func MatchesArtifact(name, stem, ext string) bool {
	if name == stem+ext {
		return true
	}
	return strings.HasPrefix(name, stem+".") && strings.HasSuffix(name, ext) &&
		len(name) > len(stem)+1+len(ext)
}

// FindArtifact searches buildDir recursively for the binary built from stem.
// It returns ErrArtifactMissing when the toolchain left nothing behind.
func FindArtifact(fsys types.FS, buildDir, stem, ext string) (string, error) {
	var found string
	err := filesystem.Walk(fsys, buildDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && MatchesArtifact(entry.Name(), stem, ext) {
			found = path
			return errFound
		}
		return nil
	})
	if found != "" {
		return found, nil
	}
	if err != nil && !stderrors.Is(err, errFound) {
		return "", errors.Wrapf(err, errors.ErrArtifactMissing, "cannot search %s", buildDir)
	}
	return "", errors.Newf(errors.ErrArtifactMissing, "no %s%s artifact under %s", stem, ext, buildDir)
}

var errFound = stderrors.New("artifact found")

// Relocation describes where a compiled binary goes
type Relocation struct {
	Source   string
	Artifact string

	// Extension of the binary placed next to the source
	Extension string

	// Intermediates are extensions of toolchain leftovers next to the source
	Intermediates []string
}

// Target returns the path the binary is copied to: <dir>/<stem><ext>
func (r Relocation) Target() string {
	return filepath.Join(filepath.Dir(r.Source), Stem(r.Source)+r.Extension)
}

// Relocator places a compiled binary next to its source
type Relocator interface {
	Relocate(r Relocation) (string, error)
}

// FSRelocator relocates through a types.FS
type FSRelocator struct {
	FS types.FS
}

// Relocate implements Relocator
func (f FSRelocator) Relocate(r Relocation) (string, error) {
	return Relocate(f.FS, r)
}

// Relocate copies the artifact next to the source, then removes the build
// copy and any intermediate translation file. It returns the target path.
func Relocate(fsys types.FS, r Relocation) (string, error) {
	target := r.Target()
	if err := filesystem.CopyFile(fsys, r.Artifact, target); err != nil {
		return "", errors.Wrapf(err, errors.ErrRelocate, "failed to copy %s to %s", r.Artifact, target)
	}
	if err := fsys.Remove(r.Artifact); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return target, errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", r.Artifact)
	}

	base := filepath.Join(filepath.Dir(r.Source), Stem(r.Source))
	for _, ext := range r.Intermediates {
		leftover := base + ext
		if err := fsys.Remove(leftover); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return target, errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", leftover)
		}
	}
	return target, nil
}
