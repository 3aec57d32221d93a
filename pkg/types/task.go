package types

// Task is the unit of work handed to one release worker: a single top-level
// directory plus the flags shared by every worker of the run.
type Task struct {
	// Index is the worker number, used to give each worker its own build dir
	Index int

	// Dir is the absolute path of the directory to compile
	Dir string

	// Escapes are substrings that exclude a path from compilation and deletion
	Escapes []string

	// DeleteBinariesFirst removes existing binaries under Dir before compiling
	DeleteBinariesFirst bool

	// DeleteSourcesAfter removes each source once its binary is in place
	DeleteSourcesAfter bool
}
