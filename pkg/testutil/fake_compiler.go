package testutil

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/cyrelease/pkg/compiler"
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/types"
)

// SyntaxError is the token that makes FakeCompiler reject a source file
const SyntaxError = "<<syntax error>>"

// NoArtifact is the token that makes FakeCompiler succeed without output
const NoArtifact = "<<no artifact>>"

// ArtifactTag is the platform tag FakeCompiler inserts in binary names
const ArtifactTag = ".cpython-311-x86_64-linux-gnu"

// FakeCompiler mimics the extension toolchain on a types.FS: it writes a
// tagged binary below the job's build dir and a translation file next to
// the source. It is safe for concurrent use.
type FakeCompiler struct {
	FS types.FS

	mu   sync.Mutex
	jobs []compiler.Job
}

// NewFakeCompiler creates a fake compiler working on fsys
func NewFakeCompiler(fsys types.FS) *FakeCompiler {
	return &FakeCompiler{FS: fsys}
}

// Compile implements compiler.Compiler
func (f *FakeCompiler) Compile(ctx context.Context, job compiler.Job) error {
	f.mu.Lock()
	f.jobs = append(f.jobs, job)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCompile, "canceled")
	}

	data, err := f.FS.ReadFile(job.Source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCompile, "failed to compile %s", job.Source)
	}
	content := string(data)
	if strings.Contains(content, SyntaxError) {
		return errors.Newf(errors.ErrCompile, "failed to compile %s", job.Source).
			WithDetail("stderr", "SyntaxError: invalid syntax")
	}

	stem := compiler.Stem(job.Source)
	translation := filepath.Join(filepath.Dir(job.Source), stem+".c")
	if err := f.FS.WriteFile(translation, []byte("/* generated */"), 0644); err != nil {
		return err
	}
	if strings.Contains(content, NoArtifact) {
		return nil
	}

	libDir := filepath.Join(job.BuildDir, "lib")
	if err := f.FS.MkdirAll(libDir, 0755); err != nil {
		return err
	}
	return f.FS.WriteFile(filepath.Join(libDir, stem+ArtifactTag+".so"), []byte(BinaryContent(job.Source)), 0755)
}

// Jobs returns a copy of every job received so far
func (f *FakeCompiler) Jobs() []compiler.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]compiler.Job(nil), f.jobs...)
}

// Sources returns the source of every job received so far
func (f *FakeCompiler) Sources() []string {
	var out []string
	for _, job := range f.Jobs() {
		out = append(out, job.Source)
	}
	return out
}

// BinaryContent is what FakeCompiler writes into the binary built from source
func BinaryContent(source string) string {
	return "ELF:" + source
}
