// Package executor runs the external toolchains cyrelease drives: the
// per-file extension compiler and the one-shot packaging build.
//
// Output is captured rather than streamed so that parallel workers do not
// interleave toolchain chatter on the console. It is logged at debug level,
// and attached to the error when the command fails.
package executor
