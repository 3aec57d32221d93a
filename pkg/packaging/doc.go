// Package packaging assembles an installable distribution from a compiled
// tree: it discovers the non-source assets, writes the inclusion manifest,
// makes sure the package marker exists, renders pyproject.toml and runs the
// packaging toolchain.
package packaging
