// Package filesystem provides filesystem implementations for cyrelease.
//
// This package contains implementations of the types.FS interface,
// the standard OS filesystem and an afero-backed one used by tests,
// plus the tree walking and copy helpers built on top of it.
package filesystem
