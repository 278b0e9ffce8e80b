package extract

import (
	"errors"
	"fmt"
)

// ErrUnparseable marks answers where no expected phrase could be located.
var ErrUnparseable = errors.New("unparseable answer")

// ParseError names the extractor that failed and why.
type ParseError struct {
	Extractor string
	Reason    string
}

// Error renders the extractor and reason.
func (err *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", err.Extractor, err.Reason)
}

// Is matches ErrUnparseable.
func (err *ParseError) Is(target error) bool {
	return target == ErrUnparseable
}

func unparseable(extractor, reason string) error {
	return &ParseError{Extractor: extractor, Reason: reason}
}
