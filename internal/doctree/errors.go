package doctree

import (
	"errors"
	"fmt"
)

// ErrStructure marks input that is not a well-formed question bank.
var ErrStructure = errors.New("malformed question bank")

// ParseError reports why a file could not be read as a question bank.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %v", ErrStructure, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.File, ErrStructure, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrStructure, e.Err}
}
