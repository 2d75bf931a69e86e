package payload

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnserializable is returned by Save and Load when the element's type was
// registered without save/load support.
var ErrUnserializable = errors.New("no save/load support")

// UnserializableTypeError reports which type lacked save/load support.
// It matches ErrUnserializable under errors.Is.
type UnserializableTypeError struct {
	ID TypeID
}

func (e *UnserializableTypeError) Error() string {
	return fmt.Sprintf("type %s has no save/load support", e.ID)
}

func (e *UnserializableTypeError) Unwrap() error { return ErrUnserializable }

// UnknownTypeError is returned when a value's type was never registered.
type UnknownTypeError struct {
	Type reflect.Type
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("type %s is not registered", e.Type)
}
