package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// Shopping list input errors, reported back to the sender as-is.
	ErrEmptyItemName    = errors.New("item name is empty")
	ErrItemNameTooLong  = errors.New("item name is too long")
	ErrNumericItemName  = errors.New("item name cannot be only digits")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrEmptySelector    = errors.New("item name or number is required")
	ErrItemNotFound     = errors.New("item not found")

	// ErrStoreUnavailable wraps every failure of the backing store that is not
	// attributable to user input: timeouts, auth failures, malformed responses.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IsUserInput reports whether err is caused by what the sender typed and can
// be answered with a specific message instead of a generic failure.
func IsUserInput(err error) bool {
	switch {
	case errors.Is(err, ErrEmptyItemName),
		errors.Is(err, ErrItemNameTooLong),
		errors.Is(err, ErrNumericItemName),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrEmptySelector),
		errors.Is(err, ErrItemNotFound):
		return true
	}
	return false
}
