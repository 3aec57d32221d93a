package cli

import (
	"path/filepath"

	"github.com/arthur-debert/cyrelease/pkg/packaging"
	"github.com/spf13/cobra"
)

func newPackageCmd(deps Deps, opts *globalOptions) *cobra.Command {
	var prepareOnly bool

	cmd := &cobra.Command{
		Use:   "package [dir]",
		Short: MsgPackageShort,
		Long:  MsgPackageLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cfg, wd, err := loadConfig(deps, opts)
			if err != nil {
				return err
			}

			root := wd
			if len(args) == 1 {
				root = args[0]
				if !filepath.IsAbs(root) {
					root = filepath.Join(wd, root)
				}
			}

			assembler := packaging.NewAssembler(cfg.Package, deps.FS, deps.Runner, root)

			var result *packaging.Result
			if prepareOnly {
				result, err = assembler.Prepare()
			} else {
				result, err = assembler.Assemble(cmd.Context())
			}
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}

	cmd.Flags().BoolVar(&prepareOnly, "prepare-only", false, MsgFlagPrepareOnly)
	return cmd
}
