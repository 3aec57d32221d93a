package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/cyrelease/pkg/types"
)

// SkipDir can be returned by a WalkFunc to skip the directory it was called for
var SkipDir = fs.SkipDir

// WalkFunc is called for every entry below the walk root. A non-nil err means
// the directory at path could not be read; returning nil continues the walk.
type WalkFunc func(path string, entry fs.DirEntry, err error) error

// Walk traverses the tree rooted at root in lexical order, calling fn for
// each file and directory. Symlinked directories are not followed.
func Walk(fsys types.FS, root string, fn WalkFunc) error {
	info, err := fsys.Stat(root)
	if err != nil {
		return fn(root, nil, err)
	}
	err = walk(fsys, root, fs.FileInfoToDirEntry(info), fn)
	if errors.Is(err, SkipDir) {
		return nil
	}
	return err
}

func walk(fsys types.FS, path string, entry fs.DirEntry, fn WalkFunc) error {
	if err := fn(path, entry, nil); err != nil {
		return err
	}
	if !entry.IsDir() {
		return nil
	}

	entries, err := fsys.ReadDir(path)
	if err != nil {
		return fn(path, entry, err)
	}

	for _, child := range entries {
		err := walk(fsys, filepath.Join(path, child.Name()), child, fn)
		if err != nil {
			if errors.Is(err, SkipDir) {
				if child.IsDir() {
					continue
				}
				return nil
			}
			return err
		}
	}
	return nil
}

// CopyFile copies src to dst, replacing dst if it exists. The destination
// keeps the permission bits of the source.
func CopyFile(fsys types.FS, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	return fsys.WriteFile(dst, data, info.Mode().Perm())
}

// Exists reports whether path exists. Errors other than not-exist count as existing.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
