package store

import (
	"errors"
	"fmt"
)

// Base sentinels. Implementations wrap these so callers can match on the
// category with errors.Is regardless of the entity involved.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrDuplicate     = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")
)

// Entity-specific sentinels.
var (
	ErrUserNotFound         = notFound("user")
	ErrFlashcardNotFound    = notFound("flashcard")
	ErrStudySessionNotFound = notFound("study session")

	// ErrEmailExists is returned by UserStore.Create for a taken email.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

func notFound(entity string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, entity)
}

// IsNotFoundError reports whether err is ErrNotFound or one of its variants.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is ErrDuplicate or one of its variants.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
