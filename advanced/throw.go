package advanced

import "github.com/pkg/errors"

// Threading errors through every helper of an insertion step (point location,
// cavity growth, boundary extraction, validation of the new fan) would add a
// lot of noise. Instead, the planning phase panics with a stepError, and the
// public entry points recover and convert it back into an error. Planning never
// mutates the mesh, so a recovered step leaves nothing half done.
//
// Any other panic is a bug and is re-raised.

type stepError struct {
	error
}

// Panic with an error wrapping one of the package's sentinel errors.
func fatalf(cause error, format string, args ...interface{}) {
	panic(stepError{errors.Wrapf(cause, format, args...)})
}

func handleStepPanic(r interface{}) error {
	if r != nil {
		if err, ok := r.(stepError); ok {
			return err.error
		}
		panic(r)
	}
	return nil
}
