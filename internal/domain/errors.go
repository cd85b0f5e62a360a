package domain

import (
	"errors"
	"fmt"

	m "cify.dev/pkg/cify/internal/model"
)

// Embed error kinds. Match them with errors.Is.
var (
	// ErrSourceNotFound reports a source that does not exist or cannot be read.
	ErrSourceNotFound = errors.New("source not found")
	// ErrDestinationUnwritable reports a destination that cannot be created or opened.
	ErrDestinationUnwritable = errors.New("destination unwritable")
	// ErrIOFailure reports any other read or write failure.
	ErrIOFailure = errors.New("i/o failure")
)

// EmbedError ties a failure kind to the path that caused it.
type EmbedError struct {
	Kind error
	Path m.Path
	Err  error
}

func (e *EmbedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	}

	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *EmbedError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

func newEmbedError(kind error, path m.Path, err error) *EmbedError {
	return &EmbedError{Kind: kind, Path: path, Err: err}
}
