package cli

import (
	"path/filepath"

	"github.com/arthur-debert/cyrelease/pkg/config"
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/logging"
	"github.com/arthur-debert/cyrelease/pkg/release"
	"github.com/arthur-debert/cyrelease/pkg/report"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/arthur-debert/cyrelease/pkg/ui"
	"github.com/spf13/cobra"
)

// buildOptions are the flags of the root (build) command
type buildOptions struct {
	deleteSo int
	deletePy int
	build    int
	jobs     int
	junit    string
	strict   bool
}

func (b *buildOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&b.deleteSo, "delete_so", 0, MsgFlagDeleteSo)
	flags.IntVar(&b.deletePy, "delete_py", 1, MsgFlagDeletePy)
	flags.IntVarP(&b.build, "build", "b", 1, MsgFlagBuild)
	flags.IntVarP(&b.jobs, "jobs", "j", -1, MsgFlagJobs)
	flags.StringVar(&b.junit, "junit", "", MsgFlagJUnit)
	flags.BoolVar(&b.strict, "strict", false, MsgFlagStrict)
}

// binaryFlag converts a 0/1 flag to a bool
func binaryFlag(name string, v int) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Newf(errors.ErrInvalidInput, MsgErrFlagBinary, name, v)
	}
}

// newOrchestrator builds the orchestrator of one invocation
func newOrchestrator(deps Deps, cfg *config.Config, wd string) (*release.Orchestrator, error) {
	buildRoot := cfg.Compiler.BuildRoot
	if !filepath.IsAbs(buildRoot) {
		buildRoot = filepath.Join(wd, buildRoot)
	}
	return release.New(release.Params{
		Config:    cfg,
		FS:        deps.FS,
		Compiler:  deps.compiler(cfg),
		Relocator: deps.Relocator,
		SelfPath:  deps.SelfPath,
		BuildRoot: buildRoot,
	})
}

func runBuild(cmd *cobra.Command, deps Deps, opts *globalOptions, b *buildOptions, args []string) error {
	logger := logging.GetLogger("cli.build")

	deleteSo, err := binaryFlag("delete_so", b.deleteSo)
	if err != nil {
		return err
	}
	deletePy, err := binaryFlag("delete_py", b.deletePy)
	if err != nil {
		return err
	}
	compile, err := binaryFlag("build", b.build)
	if err != nil {
		return err
	}

	renderer, err := newRenderer(opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	cfg, wd, err := loadConfig(deps, opts)
	if err != nil {
		return err
	}
	if b.jobs >= 0 {
		cfg.Release.Concurrency = b.jobs
	}

	dirs := resolvePaths(deps.FS, wd, append(append([]string{}, opts.paths...), args...))
	if len(dirs) == 0 {
		return renderer.RenderMessage(MsgNoPaths)
	}

	orch, err := newOrchestrator(deps, cfg, wd)
	if err != nil {
		return err
	}

	var reports []*types.Report
	if compile {
		logger.Info().Strs("paths", dirs).Msg("Starting compilation")
		rep, err := orch.Start(cmd.Context(), release.Options{
			Dirs:                dirs,
			Escapes:             opts.escapes,
			DeleteBinariesFirst: deleteSo,
			DeleteSourcesAfter:  deletePy,
		})
		if err != nil {
			return err
		}
		reports = append(reports, rep)
	} else {
		if deleteSo {
			rep, err := orch.ClearBinaries(cmd.Context(), dirs, opts.escapes)
			if err != nil {
				return err
			}
			reports = append(reports, rep)
		}
		if deletePy {
			rep, err := orch.ClearSources(cmd.Context(), dirs, opts.escapes)
			if err != nil {
				return err
			}
			reports = append(reports, rep)
		}
	}

	return finishReports(deps, renderer, reports, b.junit, b.strict)
}

// finishReports renders every report, writes the optional JUnit file and
// applies --strict
func finishReports(deps Deps, renderer ui.Renderer, reports []*types.Report, junit string, strict bool) error {
	failed := 0
	for _, rep := range reports {
		if err := renderer.RenderResult(rep); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to render report")
		}
		failed += len(rep.Failures())

		if junit != "" && rep.Operation == release.OperationBuild {
			if err := report.SaveJUnit(deps.FS, junit, rep); err != nil {
				return err
			}
			logger := logging.GetLogger("cli")
			logger.Info().Msgf(MsgJUnitWritten, junit)
		}
	}

	if strict && failed > 0 {
		return errors.Newf(errors.ErrCompile, MsgFailedFilesError, failed)
	}
	return nil
}
