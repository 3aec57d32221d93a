package cli

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/cyrelease/pkg/config"
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/filesystem"
	"github.com/spf13/cobra"
)

func newGenConfigCmd(deps Deps) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "gen-config",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			wd, err := deps.Getwd()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
			}
			path := filepath.Join(wd, config.ProjectConfigFile)
			if filesystem.Exists(deps.FS, path) {
				return errors.Newf(errors.ErrFileCreate, MsgConfigExists, path)
			}
			if err := deps.FS.WriteFile(path, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}
