package cli

import (
	"embed"
	"fmt"
	"io"

	"github.com/arthur-debert/cyrelease/internal/version"
	"github.com/arthur-debert/cyrelease/pkg/cobrax/topics"
	"github.com/arthur-debert/cyrelease/pkg/config"
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/logging"
	"github.com/arthur-debert/cyrelease/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	quiet      bool
	output     string
	configFile string
	paths      []string
	escapes    []string
}

// NewRootCmd creates the root command with the production collaborators
func NewRootCmd() *cobra.Command {
	return newRootCmd(DefaultDeps())
}

func newRootCmd(deps Deps) *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}
	build := &buildOptions{}

	rootCmd := &cobra.Command{
		Use:     "cyrelease [paths...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.quiet {
				logging.SetupLogger(logging.Quiet)
			} else {
				logging.SetupLogger(opts.verbosity)
			}
			logger := logging.WithFields(map[string]interface{}{
				"command": cmd.Name(),
				"version": version.Version,
			})
			logger.Debug().Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, deps, opts, build, args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, MsgFlagQuiet)
	flags.StringVarP(&opts.output, "output", "o", "auto", MsgFlagOutput)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	flags.StringArrayVarP(&opts.paths, "path", "p", nil, MsgFlagPath)
	flags.StringArrayVarP(&opts.escapes, "escape", "e", nil, MsgFlagEscape)

	build.register(rootCmd)

	rootCmd.SetUsageTemplate(usageTemplate)

	rootCmd.AddCommand(newClearSrcCmd(deps, opts))
	rootCmd.AddCommand(newClearBinCmd(deps, opts))
	rootCmd.AddCommand(newPackageCmd(deps, opts))
	rootCmd.AddCommand(newGenConfigCmd(deps))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	if err := topics.Initialize(rootCmd, topicsFS, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// loadConfig merges the configuration layers for the working directory
func loadConfig(deps Deps, opts *globalOptions) (*config.Config, string, error) {
	wd, err := deps.Getwd()
	if err != nil {
		return nil, "", errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
	}
	cfg, err := config.Load(config.LoadOptions{
		ProjectDir: wd,
		ConfigFile: opts.configFile,
	})
	if err != nil {
		return nil, "", err
	}
	return cfg, wd, nil
}

func newRenderer(opts *globalOptions, w io.Writer) (ui.Renderer, error) {
	format, err := ui.ParseFormat(opts.output)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --output")
	}
	return ui.NewRenderer(format, w)
}

// RenderError prints err to w in the requested output format, falling back
// to plain text when the format itself is invalid
func RenderError(w io.Writer, output string, err error) {
	format, perr := ui.ParseFormat(output)
	if perr != nil {
		format = ui.FormatText
	}
	r, rerr := ui.NewRenderer(format, w)
	if rerr != nil {
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	_ = r.RenderError(err)
}
