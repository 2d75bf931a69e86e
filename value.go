package payload

import (
	"fmt"
	"reflect"
)

// Value is one type-erased element: exactly one concrete value behind a
// non-generic interface.
//
// Get and GetMutable are raw access: the caller must already know the
// stored type, either from Type or by routing through the match/apply
// primitives. Interpreting the storage as a different type is a contract
// violation and panics in the typed helpers.
type Value interface {
	// Type returns the element's runtime identity. It never changes after
	// construction.
	Type() TypeID

	// Get returns the current value.
	Get() any

	// GetMutable returns a pointer to the element's storage (*T for a
	// stored T). Writes through it are visible to everything aliasing the
	// storage.
	GetMutable() any

	// Copy returns an independent copy; mutating it is never observable
	// through the original, and vice versa.
	Copy() Value

	// Save writes the value to sink. Errors from the sink propagate
	// unchanged; a type without save support yields ErrUnserializable.
	Save(sink Sink) error

	// Load replaces the value with one read from src, with the same error
	// contract as Save.
	Load(src Source) error

	fmt.Stringer
}

// boundValue adapts one registry entry to the Value interface. The same
// struct serves owning values and borrowed view elements; only what ptr
// points at differs.
type boundValue struct {
	e   *entry
	ptr any // *T for the entry's type
}

func (v *boundValue) Type() TypeID    { return v.e.id }
func (v *boundValue) Get() any        { return v.e.deref(v.ptr) }
func (v *boundValue) GetMutable() any { return v.ptr }
func (v *boundValue) String() string  { return v.e.str(v.ptr) }

func (v *boundValue) Copy() Value {
	return &boundValue{e: v.e, ptr: v.e.clone(v.ptr)}
}

func (v *boundValue) Save(sink Sink) error {
	if v.e.save == nil {
		return &UnserializableTypeError{ID: v.e.id}
	}
	return v.e.save(v.ptr, sink)
}

func (v *boundValue) Load(src Source) error {
	if v.e.load == nil {
		return &UnserializableTypeError{ID: v.e.id}
	}
	return v.e.load(v.ptr, src)
}

// NewValue wraps a copy of x as an owning Value.
func NewValue(r *Registry, x any) (Value, error) {
	rt := reflect.TypeOf(x)
	e, ok := r.lookup(rt)
	if !ok {
		return nil, &UnknownTypeError{Type: rt}
	}
	return e.own(x), nil
}

// GetAs returns the stored value as T. It panics if the stored type is not
// T; check Type or Matches first when in doubt.
func GetAs[T any](v Value) T {
	return v.Get().(T)
}

// GetMutableAs returns the element's storage as *T, with the same contract
// as GetAs.
func GetMutableAs[T any](v Value) *T {
	return v.GetMutable().(*T)
}
