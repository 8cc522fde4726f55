package intent

import (
	"errors"
	"fmt"
)

// ErrBlankIntent is returned when the intent phrase is empty or whitespace.
var ErrBlankIntent = errors.New("intent: phrase must not be blank")

// ErrInvalidLanguage is returned when the requested language has no
// dictionary (including the empty language).
type ErrInvalidLanguage struct {
	Language Language
}

func (e *ErrInvalidLanguage) Error() string {
	if e.Language == "" {
		return "intent: language must not be empty"
	}
	return fmt.Sprintf("intent: language not supported: %s", e.Language)
}

// ErrUnknownIntent is returned when a phrase has no entry in the language's
// dictionary.
type ErrUnknownIntent struct {
	Phrase   string
	Language Language
}

func (e *ErrUnknownIntent) Error() string {
	return fmt.Sprintf("intent: unknown intent for language %s: %q", e.Language, e.Phrase)
}
