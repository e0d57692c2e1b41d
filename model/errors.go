package model

import (
	"fmt"
)

// Structural errors: malformed or under-specified input to a constructor or
// conversion. They are surfaced immediately to the caller and never silently
// defaulted.

// InvalidAccountTypeError is returned when the first segment of an account
// name matches none of the five root names.
type InvalidAccountTypeError struct {
	Name    string
	Segment string
}

func (e *InvalidAccountTypeError) Error() string {
	return fmt.Sprintf("invalid account type %q in account %q", e.Segment, e.Name)
}

// InvalidCurrencyError is returned when a currency token violates the
// currency syntax.
type InvalidCurrencyError struct {
	Token string
}

func (e *InvalidCurrencyError) Error() string {
	return fmt.Sprintf("invalid currency %q", e.Token)
}

// InvalidDateError is returned when a date string is not a valid ISO 8601
// calendar date.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q", e.Value)
}

// UnknownBookingTokenError is returned when a booking method token is not
// one of STRICT, STRICT_WITH_SIZE, NONE, AVERAGE, FIFO, LIFO.
type UnknownBookingTokenError struct {
	Token string
}

func (e *UnknownBookingTokenError) Error() string {
	return fmt.Sprintf("unknown booking method %q", e.Token)
}

// IncompleteConversionError is returned when converting an IncompleteAmount
// missing its number and/or currency into an Amount.
type IncompleteConversionError struct {
	Amount IncompleteAmount
}

func (e *IncompleteConversionError) Error() string {
	return fmt.Sprintf("incomplete amount %q cannot be converted", e.Amount.String())
}

// MultipleEmptyPostingsError is returned when more than one posting of a
// transaction omits its amount; at most one posting may be auto-balanced.
type MultipleEmptyPostingsError struct {
	Date Date
}

func (e *MultipleEmptyPostingsError) Error() string {
	return fmt.Sprintf("%s: more than one posting without an amount", e.Date)
}

// MissingFieldError is returned by a constructor when a required field is
// absent.
type MissingFieldError struct {
	Entity string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Entity, e.Field)
}
