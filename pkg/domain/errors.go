package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateArea is returned when two regions define the same area name.
// It is a configuration bug, not a runtime condition.
var ErrDuplicateArea = errors.New("duplicate area name")

// ErrAreaNotFound is returned when a lookup names an area the world does not define.
var ErrAreaNotFound = errors.New("area not found")

// ErrSequenceNotFound is returned when a liminal key is not registered.
var ErrSequenceNotFound = errors.New("liminal sequence not found")

// ErrLayoutNotFound is returned by layout caches on a miss.
var ErrLayoutNotFound = errors.New("layout not found")

// ErrInvalidDirection is returned when a direction string cannot be parsed.
var ErrInvalidDirection = errors.New("invalid direction")

// ErrFrozen is returned when a frozen registry builder is modified.
var ErrFrozen = errors.New("registry already frozen")

// DuplicateAreaError reports both locations of a clashing area name.
type DuplicateAreaError struct {
	Name   string
	First  string // "zone/region" of the first definition
	Second string
}

func (e *DuplicateAreaError) Error() string {
	return fmt.Sprintf("%s: %q defined in both %s and %s", ErrDuplicateArea, e.Name, e.First, e.Second)
}

func (e *DuplicateAreaError) Unwrap() error {
	return ErrDuplicateArea
}
