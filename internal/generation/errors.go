package generation

import (
	"errors"
	"fmt"
)

// Provider failures. Generators wrap one of these around the provider error
// so the API layer can pick a status without knowing the provider.
var (
	ErrGenerationFailed = errors.New("failed to generate cards from text")
	ErrInvalidResponse  = errors.New("invalid response from language model")
	ErrContentBlocked   = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is the only category CallWithRetry retries.
	ErrTransientFailure = errors.New("transient error during card generation")
	ErrInvalidConfig    = errors.New("invalid generator configuration")
)

// Request validation failures from Request.Normalize.
var (
	ErrEmptyText        = errors.New("source text cannot be empty")
	ErrInvalidCardCount = fmt.Errorf("number of cards must be between 1 and %d", MaxNumCards)
)
