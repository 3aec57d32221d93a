package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Compile Python sources into native extensions and package them"
	MsgClearSrcShort   = "Delete source files, honoring escapes"
	MsgClearBinShort   = "Delete compiled binaries, honoring escapes"
	MsgPackageShort    = "Assemble the installable distribution"
	MsgGenConfigShort  = "Print or write the default configuration"
	MsgGenConfigLong   = "Output the default configuration with every value commented out.\n\nWith -w, write it to .cyrelease.toml in the current directory instead."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"

	// Status messages
	MsgNoPaths          = "No existing paths given; nothing to do."
	MsgConfigWritten    = "Wrote %s\n"
	MsgConfigExists     = "%s already exists; refusing to overwrite"
	MsgVersionFormat    = "cyrelease version %s\n  commit: %s\n  built:  %s\n"
	MsgJUnitWritten     = "JUnit report written to %s"
	MsgFailedFilesError = "%d file(s) failed to compile"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v DEBUG, -vv TRACE)"
	MsgFlagQuiet       = "Only log warnings and errors"
	MsgFlagOutput      = "Output format: auto, term, text, json or yaml"
	MsgFlagConfig      = "Configuration file (replaces the project .cyrelease.toml)"
	MsgFlagPath        = "Directory to process; repeatable, extra arguments are paths too"
	MsgFlagEscape      = "Substring protecting matching paths; repeatable, replaces the defaults"
	MsgFlagDeleteSo    = "Delete existing .so files first (-dso): 0 keep, 1 delete"
	MsgFlagDeletePy    = "Delete .py sources after compiling (-dpy): 0 keep, 1 delete"
	MsgFlagBuild       = "Compile (1) or only run the deletions selected by -dso/-dpy (0)"
	MsgFlagJobs        = "Maximum number of directories compiled in parallel (0: one per directory)"
	MsgFlagJUnit       = "Write a JUnit XML report to this file"
	MsgFlagStrict      = "Exit with status 1 when any file failed to compile"
	MsgFlagWrite       = "Write .cyrelease.toml instead of printing"
	MsgFlagPrepareOnly = "Write the manifest, marker and project file without running the toolchain"

	// Error messages
	MsgErrFlagBinary = "--%s must be 0 or 1, got %d"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/package-long.txt
	msgPackageLongRaw string
	MsgPackageLong    = strings.TrimSpace(msgPackageLongRaw)

	//go:embed msgs/clear-long.txt
	msgClearLongRaw string
	MsgClearLong    = strings.TrimSpace(msgClearLongRaw)
)

// MsgRootExample shows the classic invocations
const MsgRootExample = `  cyrelease -p microservice/device -b 0 -dso 1 -dpy 0   # only delete binaries
  cyrelease -p app lib                                   # compile app and lib, delete sources
  cyrelease -p app -dpy 0 --junit out/junit.xml          # keep sources, write a CI report`
