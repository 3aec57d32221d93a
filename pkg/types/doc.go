// Package types defines the core types and interfaces shared by the release
// orchestrator and the package assembler: the FS abstraction, directory
// tasks, and the per-run report.
package types
