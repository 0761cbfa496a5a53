package hn

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexUnavailable marks a failed or malformed top stories request.
	// It is fatal to a fetch.
	ErrIndexUnavailable = errors.New("top stories unavailable")
	// ErrItemUnavailable marks a single story that could not be resolved.
	// Callers skip the item and carry on.
	ErrItemUnavailable = errors.New("item unavailable")

	errItemDeleted = errors.New("item deleted")
	errItemDead    = errors.New("item dead")
	errItemNull    = errors.New("item does not exist")
)

func missingField(name string) error {
	return fmt.Errorf("missing field %q", name)
}

type IndexError struct {
	Err error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %v", ErrIndexUnavailable, e.Err)
}

func (e *IndexError) Unwrap() []error {
	return []error{ErrIndexUnavailable, e.Err}
}

type ItemError struct {
	ID  uint64
	Err error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d unavailable: %v", e.ID, e.Err)
}

func (e *ItemError) Unwrap() []error {
	return []error{ErrItemUnavailable, e.Err}
}
