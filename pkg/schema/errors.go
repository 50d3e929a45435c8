package schema

import (
	"errors"
)

var (
	// ErrNoPath is returned when no path was given to check.
	ErrNoPath = errors.New("no path given")

	// ErrPathNotFound is returned when the path to check does not exist.
	ErrPathNotFound = errors.New("path not found")
)
