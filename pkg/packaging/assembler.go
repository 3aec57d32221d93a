package packaging

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/cyrelease/pkg/config"
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/executor"
	"github.com/arthur-debert/cyrelease/pkg/filesystem"
	"github.com/arthur-debert/cyrelease/pkg/logging"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/rs/zerolog"
)

// Assembler builds the distribution of the tree rooted at Root
type Assembler struct {
	cfg    config.PackageConfig
	fs     types.FS
	runner executor.Runner
	root   string
	logger zerolog.Logger
}

// Result describes what Assemble produced
type Result struct {
	Root        string   `json:"root" yaml:"root"`
	Assets      []string `json:"assets" yaml:"assets"`
	Manifest    string   `json:"manifest" yaml:"manifest"`
	Marker      string   `json:"marker" yaml:"marker"`
	ProjectFile string   `json:"projectFile,omitempty" yaml:"projectFile,omitempty"`
	Output      string   `json:"output,omitempty" yaml:"output,omitempty"`
}

// NewAssembler creates an assembler for the tree at root
func NewAssembler(cfg config.PackageConfig, fsys types.FS, runner executor.Runner, root string) *Assembler {
	return &Assembler{
		cfg:    cfg,
		fs:     fsys,
		runner: runner,
		root:   root,
		logger: logging.GetLogger("packaging"),
	}
}

func (a *Assembler) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(a.root, rel)
}

// Prepare writes every input of the packaging toolchain without running it
func (a *Assembler) Prepare() (*Result, error) {
	assets, err := DiscoverAssets(a.fs, a.root, a.cfg.AssetPatterns)
	if err != nil {
		return nil, err
	}
	a.logger.Info().Int("count", len(assets)).Msg("Assets discovered")

	result := &Result{
		Root:     a.root,
		Assets:   assets,
		Manifest: a.path(a.cfg.Manifest),
		Marker:   a.path(a.cfg.MarkerPath()),
	}

	if err := WriteManifest(a.fs, result.Manifest, assets); err != nil {
		return nil, err
	}
	a.logger.Debug().Str("path", result.Manifest).Msg("Manifest written")

	if err := EnsureMarker(a.fs, result.Marker, a.cfg.PreserveMarker); err != nil {
		return nil, err
	}
	a.logger.Debug().Str("path", result.Marker).Bool("preserve", a.cfg.PreserveMarker).Msg("Package marker ready")

	if a.cfg.ProjectFile != "" {
		result.ProjectFile = a.path(a.cfg.ProjectFile)
		if err := a.writeProject(result.ProjectFile, assets, result.Marker); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// writeProject renders the project file unless an existing one is preserved
func (a *Assembler) writeProject(path string, assets []string, marker string) error {
	if filesystem.Exists(a.fs, path) {
		if a.cfg.PreserveProject {
			a.logger.Info().Str("path", path).Msg("Keeping existing project file")
			return nil
		}
		a.logger.Warn().Str("path", path).Msg("Overwriting existing project file; set package.preserve_project to keep it")
	}

	meta := Metadata{
		Name:         a.cfg.Name,
		Version:      a.cfg.Version,
		Description:  a.cfg.Description,
		License:      a.cfg.License,
		Requirements: a.cfg.Requirements,
	}
	pkgDir, _ := filepath.Rel(a.root, filepath.Dir(marker))
	if err := WriteProject(a.fs, path, meta, PackageData(assets, pkgDir)); err != nil {
		return err
	}
	a.logger.Debug().Str("path", path).Msg("Project file written")
	return nil
}

// Assemble prepares the toolchain inputs and runs the packaging toolchain
// in the root directory. Any failure aborts the assembly.
func (a *Assembler) Assemble(ctx context.Context) (*Result, error) {
	done := logging.LogOperationStart(a.logger, "package")
	defer done()

	result, err := a.Prepare()
	if err != nil {
		return nil, err
	}

	res, err := a.runner.Run(ctx, executor.Command{
		Name: a.cfg.Command,
		Args: a.cfg.Args,
		Dir:  a.root,
	})
	if err != nil {
		return result, errors.Wrapf(err, errors.ErrPackage, "packaging toolchain failed for %s %s", a.cfg.Name, a.cfg.Version).
			WithDetail("stderr", errors.GetErrorDetails(err)["stderr"])
	}
	result.Output = executor.Tail(res.Stdout, 5)

	a.logger.Info().
		Str("name", a.cfg.Name).
		Str("version", a.cfg.Version).
		Msg("Distribution built")
	return result, nil
}
