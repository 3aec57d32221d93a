package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

const (
	// EnvPrefix prefixes every configuration environment variable.
	// Sections and keys are separated by a double underscore:
	// CYRELEASE_COMPILER__BUILD_ROOT=out
	EnvPrefix = "CYRELEASE_"

	// ProjectConfigFile is looked up in the project directory
	ProjectConfigFile = ".cyrelease.toml"
)

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions controls which layers Load reads
type LoadOptions struct {
	// ProjectDir is searched for .cyrelease.toml. Empty means the working directory.
	ProjectDir string

	// ConfigFile replaces the project file lookup. It must exist.
	ConfigFile string

	// SkipUserConfig ignores $XDG_CONFIG_HOME/cyrelease/config.toml
	SkipUserConfig bool

	// SkipProjectConfig ignores .cyrelease.toml
	SkipProjectConfig bool

	// SkipEnv ignores CYRELEASE_ environment variables
	SkipEnv bool
}

// Default returns the embedded defaults only
func Default() (*Config, error) {
	return Load(LoadOptions{SkipUserConfig: true, SkipProjectConfig: true, SkipEnv: true})
}

// Load merges defaults, user config, project config and environment, in that order
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	if !opts.SkipUserConfig {
		if path := UserConfigPath(); fileExists(path) {
			logger.Debug().Str("path", path).Msg("Loading user config")
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load user config from %s", path)
			}
		}
	}

	// 3. Project config, or the explicit --config file
	if opts.ConfigFile != "" {
		if !fileExists(opts.ConfigFile) {
			return nil, errors.Newf(errors.ErrConfigLoad, "config file not found: %s", opts.ConfigFile)
		}
		logger.Debug().Str("path", opts.ConfigFile).Msg("Loading config file")
		if err := k.Load(file.Provider(opts.ConfigFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", opts.ConfigFile)
		}
	} else if !opts.SkipProjectConfig {
		dir := opts.ProjectDir
		if dir == "" {
			dir = "."
		}
		path := filepath.Join(dir, ProjectConfigFile)
		if fileExists(path) {
			logger.Debug().Str("path", path).Msg("Loading project config")
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load project config from %s", path)
			}
		}
	}

	// 4. Environment
	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 6. Validate
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// UserConfigPath returns the per-user config file location
func UserConfigPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, "cyrelease", "config.toml")
}

func validate(cfg *Config) error {
	for name, ext := range map[string]string{
		"source.extension": cfg.Source.Extension,
		"binary.extension": cfg.Binary.Extension,
	} {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return errors.Newf(errors.ErrConfigValid, "%s must start with a dot, got %q", name, ext).
				WithDetail("key", name)
		}
	}

	if _, err := regexp.Compile(cfg.Source.SkipMarker); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "source.skip_marker is not a valid pattern").
			WithDetail("key", "source.skip_marker")
	}
	if cfg.Source.MarkerLines < 0 {
		return errors.Newf(errors.ErrConfigValid, "source.marker_lines must not be negative, got %d", cfg.Source.MarkerLines)
	}
	if cfg.Compiler.Command == "" {
		return errors.New(errors.ErrConfigValid, "compiler.command must be set")
	}
	if cfg.Compiler.BuildRoot == "" {
		return errors.New(errors.ErrConfigValid, "compiler.build_root must be set")
	}
	if cfg.Compiler.Timeout < 0 {
		return errors.New(errors.ErrConfigValid, "compiler.timeout must not be negative")
	}
	if cfg.Release.Concurrency < 0 {
		return errors.Newf(errors.ErrConfigValid, "release.concurrency must not be negative, got %d", cfg.Release.Concurrency)
	}
	if cfg.Package.Name == "" {
		return errors.New(errors.ErrConfigValid, "package.name must be set")
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
