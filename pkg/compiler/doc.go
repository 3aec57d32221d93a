// Package compiler adapts the external extension toolchain.
//
// A Compiler turns one source file into a native binary somewhere below a
// build directory. The helpers in this package then find that binary and
// move it next to its source under the plain <stem><ext> name, dropping the
// platform tag the toolchain adds (model.cpython-311-x86_64-linux-gnu.so
// becomes model.so).
package compiler
