package project

import "errors"

var (
	// ErrWindowNotFound indicates no open window references the given unit.
	ErrWindowNotFound = errors.New("window not found")

	// ErrUnitNotFound indicates no unit has the given identifier.
	ErrUnitNotFound = errors.New("unit not found")
)

// IsWindowNotFound checks if an error indicates a window was not found.
func IsWindowNotFound(err error) bool {
	return errors.Is(err, ErrWindowNotFound)
}

// IsUnitNotFound checks if an error indicates a unit was not found.
func IsUnitNotFound(err error) bool {
	return errors.Is(err, ErrUnitNotFound)
}
