package srs

import (
	"errors"
	"fmt"
	"strings"
)

// Scheduling constants of the modified SM-2 algorithm.
const (
	MinEasinessFactor = 1.3
	MaxEasinessFactor = 2.5

	// Quality ratings below this are treated as a forgotten card.
	PassingQuality = 3
	MaxQuality     = 5

	FirstReviewIntervalDays  = 1
	SecondReviewIntervalDays = 3

	// DefaultAverageResponseSeconds is used when no response-time history exists.
	DefaultAverageResponseSeconds = 30.0
)

// ErrInvalidEasinessMode is returned for an unknown EasinessMode.
var ErrInvalidEasinessMode = errors.New("invalid easiness mode")

// EasinessMode selects where the engine takes a card's easiness factor from.
type EasinessMode string

const (
	// EasinessModeLegacy recomputes easiness from the review count on every
	// answer and ignores the stored interval.
	EasinessModeLegacy EasinessMode = "legacy"

	// EasinessModePersisted feeds the card's stored easiness factor and
	// interval back into the scheduler.
	EasinessModePersisted EasinessMode = "persisted"
)

// ParseEasinessMode converts a config string into an EasinessMode.
// The empty string maps to EasinessModeLegacy.
func ParseEasinessMode(s string) (EasinessMode, error) {
	switch mode := EasinessMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return EasinessModeLegacy, nil
	case EasinessModeLegacy, EasinessModePersisted:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEasinessMode, s)
	}
}

// Params configures an Engine.
type Params struct {
	EasinessMode                  EasinessMode
	DefaultAverageResponseSeconds float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the defaults.
type ParamsConfig struct {
	EasinessMode                  string
	DefaultAverageResponseSeconds float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		EasinessMode:                  EasinessModeLegacy,
		DefaultAverageResponseSeconds: DefaultAverageResponseSeconds,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) (*Params, error) {
	params := NewDefaultParams()

	mode, err := ParseEasinessMode(config.EasinessMode)
	if err != nil {
		return nil, err
	}
	params.EasinessMode = mode

	if config.DefaultAverageResponseSeconds > 0 {
		params.DefaultAverageResponseSeconds = config.DefaultAverageResponseSeconds
	}

	return params, nil
}
