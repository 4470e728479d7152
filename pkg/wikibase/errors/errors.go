package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedInput = fmt.Errorf("malformed input")
var ErrMissingType = fmt.Errorf("missing type")
var ErrUnsupportedType = fmt.Errorf("unsupported type")
var ErrMissingAttribute = fmt.Errorf("missing attribute")
var ErrInvalidAttribute = fmt.Errorf("invalid attribute")
var ErrUnsupportedObject = fmt.Errorf("unsupported object")

type myError struct {
	msg    string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

// NewMalformedInputError reports a value that does not have the required container shape
func NewMalformedInputError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrMalformedInput,
	}
}

// NewMissingTypeError reports that the discriminator attribute is absent
func NewMissingTypeError(attribute string) error {
	return &myError{
		msg:    fmt.Sprintf("the %s attribute is missing", attribute),
		target: ErrMissingType,
	}
}

// UnsupportedTypeError is returned when a discriminator carries an unrecognized value
type UnsupportedTypeError struct {
	Type any
}

func NewUnsupportedTypeError(typ any) error {
	return &UnsupportedTypeError{Type: typ}
}

func (ute UnsupportedTypeError) Error() string {
	return fmt.Sprintf("type %v is not supported", ute.Type)
}

func (ute UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupportedType }

// MissingAttributeError names the required attribute that was absent
type MissingAttributeError struct {
	Attribute string
}

func NewMissingAttributeError(attribute string) error {
	return &MissingAttributeError{Attribute: attribute}
}

func (mae MissingAttributeError) Error() string {
	return fmt.Sprintf("attribute \"%s\" is missing", mae.Attribute)
}

func (mae MissingAttributeError) Is(target error) bool { return target == ErrMissingAttribute }

// InvalidAttributeError carries the attribute, the offending value and a human readable reason
type InvalidAttributeError struct {
	Attribute string
	Value     any
	Reason    string
}

func NewInvalidAttributeError(attribute string, value any, reason string) error {
	return &InvalidAttributeError{
		Attribute: attribute,
		Value:     value,
		Reason:    reason,
	}
}

func (iae InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid value for attribute \"%s\": %s", iae.Attribute, iae.Reason)
}

func (iae InvalidAttributeError) Is(target error) bool { return target == ErrInvalidAttribute }

// UnsupportedObjectError signals that a serializer was handed an object it does not claim
type UnsupportedObjectError struct {
	Object any
	Reason string
}

func NewUnsupportedObjectError(object any, reason string) error {
	return &UnsupportedObjectError{Object: object, Reason: reason}
}

func (uoe UnsupportedObjectError) Error() string {
	return fmt.Sprintf("%s (got %T)", uoe.Reason, uoe.Object)
}

func (uoe UnsupportedObjectError) Is(target error) bool { return target == ErrUnsupportedObject }

// PositionError records where in a nested container a validation error occurred
type PositionError struct {
	Segments []string
	Err      error
}

func (pe PositionError) Path() string {
	return "/" + strings.Join(pe.Segments, "/")
}

func (pe PositionError) Error() string {
	return fmt.Sprintf("%s: %s", pe.Path(), pe.Err.Error())
}

func (pe PositionError) Unwrap() error {
	return pe.Err
}

// AtPosition prefixes the position of err with segment. Nested calls build the
// path from the innermost container outwards.
func AtPosition(err error, segment any) error {
	if err == nil {
		return nil
	}

	seg := fmt.Sprintf("%v", segment)

	var pe *PositionError
	if errors.As(err, &pe) {
		return &PositionError{
			Segments: append([]string{seg}, pe.Segments...),
			Err:      pe.Err,
		}
	}

	return &PositionError{Segments: []string{seg}, Err: err}
}

// PositionOf returns the recorded path of err, or an empty string when no position is known
func PositionOf(err error) string {
	var pe *PositionError
	if errors.As(err, &pe) {
		return pe.Path()
	}
	return ""
}
