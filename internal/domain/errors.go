package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownValenceLevel signals a valence outside the seven levels. Reaching it from
	// Build means an upstream caller constructed a level by hand.
	ErrUnknownValenceLevel = errors.New("unknown valence level")
	// ErrIncompleteSelection is user-correctable: re-prompt for labels and associations.
	ErrIncompleteSelection = errors.New("incomplete selection")
	ErrUnknownKind         = errors.New("unknown record kind")
	ErrUnknownLabel        = errors.New("unknown label")
	ErrUnknownAssociation  = errors.New("unknown association")
)

// ValidationCode classifies a ValidationError.
type ValidationCode string

const (
	CodeUnknownValenceLevel ValidationCode = "unknown_valence_level"
	CodeIncompleteSelection ValidationCode = "incomplete_selection"
	CodeUnknownKind         ValidationCode = "unknown_kind"
	CodeUnknownLabel        ValidationCode = "unknown_label"
	CodeUnknownAssociation  ValidationCode = "unknown_association"
)

// ValidationError is returned by Build when an observation cannot become a record.
type ValidationError struct {
	Code  ValidationCode
	Field string
	Kind  Kind
	// Value is the rejected input as the caller supplied it, when known.
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeIncompleteSelection:
		return fmt.Sprintf("%s: %s requires at least one %s", ErrIncompleteSelection, e.Kind, e.Field)
	case CodeUnknownValenceLevel:
		if e.Value != "" {
			return fmt.Sprintf("%s in field %s: %q", ErrUnknownValenceLevel, e.Field, e.Value)
		}
		return fmt.Sprintf("%s in field %s", ErrUnknownValenceLevel, e.Field)
	case CodeUnknownKind:
		if e.Value != "" {
			return fmt.Sprintf("%s: %q", ErrUnknownKind, e.Value)
		}
		return fmt.Sprintf("%s: %d", ErrUnknownKind, int(e.Kind))
	case CodeUnknownLabel:
		return fmt.Sprintf("%s: %s", ErrUnknownLabel, e.Value)
	case CodeUnknownAssociation:
		return fmt.Sprintf("%s: %s", ErrUnknownAssociation, e.Value)
	default:
		return "invalid observation"
	}
}

// Is lets callers match with errors.Is against the package sentinels.
func (e *ValidationError) Is(target error) bool {
	switch e.Code {
	case CodeUnknownValenceLevel:
		return target == ErrUnknownValenceLevel
	case CodeIncompleteSelection:
		return target == ErrIncompleteSelection
	case CodeUnknownKind:
		return target == ErrUnknownKind
	case CodeUnknownLabel:
		return target == ErrUnknownLabel
	case CodeUnknownAssociation:
		return target == ErrUnknownAssociation
	}
	return false
}

// IsValidationError reports whether err came from record validation.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
