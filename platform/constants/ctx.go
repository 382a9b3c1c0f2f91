// Description: This file contains constants for the bindings exposed to user scripts.
package constants

const (
	// Ctx is the binding name for the working copy of the caller's context
	// object inside a script. Scripts read and write arbitrary keys of it.
	Ctx = "ctx"

	// Log is the binding name for the logging intrinsic inside a script.
	Log = "log"
)
