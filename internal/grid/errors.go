package grid

import (
	"errors"
	"fmt"
)

var (
	ErrNoWords       = errors.New("grid: word list is empty")
	ErrEmptyWord     = errors.New("grid: empty word")
	ErrMalformedWord = errors.New("grid: word must be uppercase letters A-Z")
	ErrWordTooLong   = errors.New("grid: word longer than grid")
	ErrDuplicateWord = errors.New("grid: duplicate word")
	ErrOverCapacity  = errors.New("grid: words exceed grid capacity")
	ErrUnplaceable   = errors.New("grid: word could not be placed")
	ErrOutOfBounds   = errors.New("grid: cell out of bounds")
)

// UnplaceableWordError reports a word that found no legal placement within
// the retry budget. It matches ErrUnplaceable under errors.Is.
type UnplaceableWordError struct {
	Word     string
	Attempts int
}

func (e *UnplaceableWordError) Error() string {
	return fmt.Sprintf("grid: word %q could not be placed after %d attempts", e.Word, e.Attempts)
}

func (e *UnplaceableWordError) Is(target error) bool { return target == ErrUnplaceable }
