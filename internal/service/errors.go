// Package service provides the booking, catalog and AI-assisted intake logic.
package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound matches every "unknown id" error below.
	ErrNotFound = errors.New("not found")

	ErrGroupNotFound   error = &notFoundError{what: "group"}
	ErrSessionNotFound error = &notFoundError{what: "session"}
	ErrBookingNotFound error = &notFoundError{what: "booking"}

	// ErrCapacityExceeded is returned when a session has no seats left.
	ErrCapacityExceeded = errors.New("session is fully booked")

	// ErrParse is returned when model output holds no usable JSON.
	ErrParse = errors.New("could not parse model output")

	// ErrGeneration is returned when the text-completion service fails or
	// produces nothing usable for a summary.
	ErrGeneration = errors.New("generation failed")
)

type notFoundError struct {
	what string
}

func (e *notFoundError) Error() string {
	return e.what + " not found"
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError captures missing or malformed request fields.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for f := range v.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + " " + v.FieldErrors[f]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
