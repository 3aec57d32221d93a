package config

import (
	"path/filepath"
	"time"
)

// Config is the fully merged configuration for one invocation
type Config struct {
	Source   SourceConfig   `koanf:"source"`
	Binary   BinaryConfig   `koanf:"binary"`
	Escapes  EscapesConfig  `koanf:"escapes"`
	Compiler CompilerConfig `koanf:"compiler"`
	Release  ReleaseConfig  `koanf:"release"`
	Package  PackageConfig  `koanf:"package"`
}

// SourceConfig describes which files are compile candidates
type SourceConfig struct {
	Extension         string   `koanf:"extension"`
	SkipMarker        string   `koanf:"skip_marker"`
	MarkerLines       int      `koanf:"marker_lines"`
	ExcludeSubstrings []string `koanf:"exclude_substrings"`
}

// BinaryConfig describes the compiled artifacts
type BinaryConfig struct {
	Extension              string   `koanf:"extension"`
	IntermediateExtensions []string `koanf:"intermediate_extensions"`
}

// EscapesConfig holds the default escape lists of each operation
type EscapesConfig struct {
	Build         []string `koanf:"build"`
	ClearSources  []string `koanf:"clear_sources"`
	ClearBinaries []string `koanf:"clear_binaries"`
}

// CompilerConfig describes how the external toolchain is invoked.
// Args may contain the placeholders {source}, {build_dir} and {language_level}.
type CompilerConfig struct {
	Command       string        `koanf:"command"`
	Args          []string      `koanf:"args"`
	BuildRoot     string        `koanf:"build_root"`
	LanguageLevel string        `koanf:"language_level"`
	Timeout       time.Duration `koanf:"timeout"`
}

// ReleaseConfig tunes the orchestrator
type ReleaseConfig struct {
	Concurrency int `koanf:"concurrency"`
}

// PackageConfig describes the distribution built by the package assembler
type PackageConfig struct {
	Name            string   `koanf:"name"`
	Version         string   `koanf:"version"`
	Description     string   `koanf:"description"`
	License         string   `koanf:"license"`
	Requirements    []string `koanf:"requirements"`
	AssetPatterns   []string `koanf:"asset_patterns"`
	Manifest        string   `koanf:"manifest"`
	Marker          string   `koanf:"marker"`
	PreserveMarker  bool     `koanf:"preserve_marker"`
	ProjectFile     string   `koanf:"project_file"`
	PreserveProject bool     `koanf:"preserve_project"`
	Command         string   `koanf:"command"`
	Args            []string `koanf:"args"`
}

// MarkerPath returns the package marker file, <name>/__init__.py unless configured
func (p PackageConfig) MarkerPath() string {
	if p.Marker != "" {
		return p.Marker
	}
	return filepath.Join(p.Name, "__init__.py")
}
