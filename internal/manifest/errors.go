package manifest

import (
	"errors"
	"fmt"
)

// ErrMalformed matches any error produced by a manifest file that could not
// be parsed.
var ErrMalformed = errors.New("malformed manifest")

// MalformedError carries the offending file and the parser error.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed manifest %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }
