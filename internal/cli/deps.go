package cli

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/cyrelease/pkg/compiler"
	"github.com/arthur-debert/cyrelease/pkg/config"
	"github.com/arthur-debert/cyrelease/pkg/executor"
	"github.com/arthur-debert/cyrelease/pkg/filesystem"
	"github.com/arthur-debert/cyrelease/pkg/types"
)

// Deps are the collaborators the commands are built from
type Deps struct {
	FS     types.FS
	Runner executor.Runner

	// Compiler builds the compiler for a run; nil runs the configured command
	Compiler func(cfg *config.Config) compiler.Compiler

	// Relocator places binaries; nil relocates through FS
	Relocator compiler.Relocator

	// Getwd returns the directory relative paths are resolved against
	Getwd func() (string, error)

	// SelfPath is the running program, protected from compilation and deletion
	SelfPath string
}

// DefaultDeps returns the production collaborators
func DefaultDeps() Deps {
	self, err := os.Executable()
	if err == nil {
		if resolved, rerr := filepath.EvalSymlinks(self); rerr == nil {
			self = resolved
		}
	}
	return Deps{
		FS:        filesystem.NewOS(),
		Runner:    executor.New(),
		Relocator: compiler.NewSynthRelocator(),
		Getwd:     os.Getwd,
		SelfPath:  self,
	}
}

func (d Deps) compiler(cfg *config.Config) compiler.Compiler {
	if d.Compiler != nil {
		return d.Compiler(cfg)
	}
	return compiler.NewCommandCompiler(d.Runner, cfg.Compiler)
}
