// Package testutil provides utilities for testing cyrelease components.
//
// Key components:
//   - NewTestFS: afero-backed in-memory types.FS
//   - WriteTree: declarative setup of a source tree
//   - FakeCompiler: a compiler.Compiler that writes artifacts without a toolchain
//
// Most tests run entirely in memory. Only tests that exercise the external
// command runner use the real filesystem (t.TempDir).
package testutil
