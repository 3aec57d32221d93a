// Package release compiles source trees into native extensions in place.
//
// An Orchestrator is built once per invocation. Start runs one worker per
// input directory; each worker walks its tree lazily, compiles every
// eligible source through a compiler.Compiler, moves the binary next to the
// source and optionally deletes the source. Failures are isolated per file
// and collected in the worker's types.TaskResult, never shared between
// workers. ClearSources and ClearBinaries are the deletion-only operations.
package release
