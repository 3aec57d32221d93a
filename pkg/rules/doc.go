// Package rules decides which files a release run may touch.
//
// # Escapes
//
// An escape is a plain substring. A path is escaped when any escape occurs
// anywhere in its string form, so "test.py" escapes "latest.py" as well as
// "tests/test.py". The running executable is always escaped.
//
// # Skip markers
//
// A source file opts out of compilation with a comment in its first lines:
//
//	# -*- coding: utf-8 -*-
//	# cython: skip
//
// The pattern and the number of lines inspected come from the
// [source] section of the configuration.
//
// # Scanning
//
// Scanner walks a directory tree and yields candidates lazily as an
// iter.Seq, so a worker starts compiling before the walk has finished.
package rules
