package ssml

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField reports an empty required attribute.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidEnum reports a value outside a closed set.
	ErrInvalidEnum = errors.New("invalid enum value")
	// ErrUnknownTag reports a fragment whose tag has no builder.
	ErrUnknownTag = errors.New("unknown tag")
	// ErrUnknownParam reports a fragment parameter the tag does not accept.
	ErrUnknownParam = errors.New("unknown parameter")
)

// FieldError is returned when a request is rejected before formatting.
// Err is one of the sentinel errors above.
type FieldError struct {
	Tag   Tag
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("ssml %s: %s", e.Tag, e.Err)
	if e.Field != "" {
		msg += fmt.Sprintf(" %q", e.Field)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (got %q)", e.Value)
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missingField(tag Tag, field string) error {
	return &FieldError{Tag: tag, Field: field, Err: ErrMissingField}
}

func invalidEnum(tag Tag, field, value string) error {
	return &FieldError{Tag: tag, Field: field, Value: value, Err: ErrInvalidEnum}
}

func requireField(tag Tag, field, value string) error {
	if value == "" {
		return missingField(tag, field)
	}
	return nil
}

// requireEnum rejects an empty or unknown value.
func requireEnum[E enum](tag Tag, field string, v E) error {
	if v == "" {
		return missingField(tag, field)
	}
	if !v.Valid() {
		return invalidEnum(tag, field, string(v))
	}
	return nil
}

// optionalEnum accepts an empty value and rejects an unknown one.
func optionalEnum[E enum](tag Tag, field string, v E) error {
	if v == "" || v.Valid() {
		return nil
	}
	return invalidEnum(tag, field, string(v))
}
