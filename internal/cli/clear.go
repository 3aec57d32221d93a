package cli

import (
	"github.com/arthur-debert/cyrelease/pkg/release"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/spf13/cobra"
)

type clearFunc func(orch *release.Orchestrator, cmd *cobra.Command, dirs, escapes []string) (*types.Report, error)

func newClearSrcCmd(deps Deps, opts *globalOptions) *cobra.Command {
	return newClearCmd(deps, opts, "clear-src", MsgClearSrcShort,
		func(orch *release.Orchestrator, cmd *cobra.Command, dirs, escapes []string) (*types.Report, error) {
			return orch.ClearSources(cmd.Context(), dirs, escapes)
		})
}

func newClearBinCmd(deps Deps, opts *globalOptions) *cobra.Command {
	return newClearCmd(deps, opts, "clear-bin", MsgClearBinShort,
		func(orch *release.Orchestrator, cmd *cobra.Command, dirs, escapes []string) (*types.Report, error) {
			return orch.ClearBinaries(cmd.Context(), dirs, escapes)
		})
}

func newClearCmd(deps Deps, opts *globalOptions, name, short string, run clearFunc) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [paths...]",
		Short: short,
		Long:  MsgClearLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cfg, wd, err := loadConfig(deps, opts)
			if err != nil {
				return err
			}

			dirs := resolvePaths(deps.FS, wd, append(append([]string{}, opts.paths...), args...))
			if len(dirs) == 0 {
				return renderer.RenderMessage(MsgNoPaths)
			}

			orch, err := newOrchestrator(deps, cfg, wd)
			if err != nil {
				return err
			}
			rep, err := run(orch, cmd, dirs, opts.escapes)
			if err != nil {
				return err
			}
			return finishReports(deps, renderer, []*types.Report{rep}, "", false)
		},
	}
}
