package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashlearn/internal/api/shared"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/generation"
	"github.com/phrazzld/flashlearn/internal/service"
	"github.com/phrazzld/flashlearn/internal/service/auth"
	"github.com/phrazzld/flashlearn/internal/store"
)

// badRequestErrors are client input errors that map to 400.
var badRequestErrors = []error{
	domain.ErrValidation,
	domain.ErrInvalidID,
	domain.ErrInvalidDifficulty,
	domain.ErrInvalidEmail,
	domain.ErrEmptyEmail,
	domain.ErrInvalidUsername,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrFlashcardQuestionEmpty,
	domain.ErrFlashcardAnswerEmpty,
	domain.ErrFlashcardTopicEmpty,
	domain.ErrInvalidTargetCount,
	domain.ErrNegativeResponseTime,
	generation.ErrEmptyText,
	generation.ErrInvalidCardCount,
	store.ErrInvalidEntity,
	shared.ErrEmptyBody,
}

// MapErrorToStatusCode maps an error from any layer to an HTTP status.
// Unknown errors are 500.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case err == nil:
		return http.StatusInternalServerError

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, domain.ErrSessionNotActive),
		errors.Is(err, domain.ErrInvalidSessionTransition):
		return http.StatusConflict

	case errors.As(err, &validationErrs), isBadRequest(err):
		return http.StatusBadRequest

	case errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrInvalidResponse):
		return http.StatusUnprocessableEntity

	case errors.Is(err, generation.ErrTransientFailure):
		return http.StatusServiceUnavailable

	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidConfig):
		return http.StatusBadGateway

	case errors.Is(err, service.ErrGeneratorUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

func isBadRequest(err error) bool {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	var vErr *domain.ValidationError
	return errors.As(err, &vErr)
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var vErr *domain.ValidationError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrFlashcardNotFound):
		return "Flashcard not found"
	case errors.Is(err, store.ErrStudySessionNotFound):
		return "Study session not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, domain.ErrSessionNotActive):
		return "Study session is not active"
	case errors.Is(err, domain.ErrInvalidSessionTransition):
		return "Study session cannot change to that status"

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.As(err, &vErr):
		return fmt.Sprintf("Invalid %s: %s", vErr.Field, vErr.Message)
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case isBadRequest(err):
		// Domain and generation input errors are written for clients.
		return capitalize(rootMessage(err))

	case errors.Is(err, generation.ErrContentBlocked):
		return "The text was rejected by the content safety filter"
	case errors.Is(err, generation.ErrInvalidResponse):
		return "The language model returned no usable flashcards"
	case errors.Is(err, generation.ErrTransientFailure):
		return "Flashcard generation is temporarily unavailable, please retry"
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidConfig):
		return "Flashcard generation failed"
	case errors.Is(err, service.ErrGeneratorUnavailable):
		return "Flashcard generation is not configured"

	default:
		return "An unexpected error occurred"
	}
}

// rootMessage returns the message of the innermost wrapped error.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// SanitizeValidationError turns validator errors into a message naming the
// first offending field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}
	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "too short or too small"
	case "max", "lte":
		return "too long or too large"
	case "oneof":
		return "invalid value"
	case "uuid", "uuid4":
		return "invalid ID format"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted detail. A non-empty fallback replaces the generic 500 message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
