package payload

import (
	"fmt"
	"reflect"
)

// entry is the per-type adapter table built once at registration. Every
// type-erased operation on a value of type T dispatches through these
// closures, which recover T without any unchecked casts.
type entry struct {
	id    TypeID
	wrap  func(ptr any) Value // borrow caller storage (ptr is *T)
	own   func(val any) Value // copy val (a T) into owned storage
	alloc func() Value        // owned zero value, for load targets
	deref func(ptr any) any
	clone func(ptr any) any
	str   func(ptr any) string
	save  func(ptr any, sink Sink) error // nil when unserializable
	load  func(ptr any, src Source) error
}

// Registry maps concrete types to their runtime identities and adapters.
//
// Registries are explicit: nothing in this package touches global state, so
// independent registries can coexist (one per test, one per connected peer,
// and so on). NewRegistry pre-registers the built-in types at fixed numbers;
// everything else is added with Register.
//
// A Registry must be fully configured before use. Register is not safe to
// call concurrently with lookups.
type Registry struct {
	byType map[reflect.Type]*entry
}

// Type numbers of the built-in set. These are stable across processes.
const (
	nrBool uint16 = iota + 1
	nrInt64
	nrUint64
	nrFloat64
	nrString
	nrBytes
	nrInt
)

// NewRegistry creates a registry with the built-in types pre-registered:
// bool, int64, uint64, float64, string, []byte, and int (serialized as
// int64).
func NewRegistry() *Registry {
	r := &Registry{byType: make(map[reflect.Type]*entry)}
	registerAs(r, nrBool,
		WithSave(func(v *bool, s Sink) error { return s.WriteBool(*v) }),
		WithLoad(func(v *bool, s Source) error { return read(v, s.ReadBool) }),
	)
	registerAs(r, nrInt64,
		WithSave(func(v *int64, s Sink) error { return s.WriteInt(*v) }),
		WithLoad(func(v *int64, s Source) error { return read(v, s.ReadInt) }),
	)
	registerAs(r, nrUint64,
		WithSave(func(v *uint64, s Sink) error { return s.WriteUint(*v) }),
		WithLoad(func(v *uint64, s Source) error { return read(v, s.ReadUint) }),
	)
	registerAs(r, nrFloat64,
		WithSave(func(v *float64, s Sink) error { return s.WriteFloat(*v) }),
		WithLoad(func(v *float64, s Source) error { return read(v, s.ReadFloat) }),
	)
	registerAs(r, nrString,
		WithSave(func(v *string, s Sink) error { return s.WriteString(*v) }),
		WithLoad(func(v *string, s Source) error { return read(v, s.ReadString) }),
	)
	registerAs(r, nrBytes,
		WithSave(func(v *[]byte, s Sink) error { return s.WriteBytes(*v) }),
		WithLoad(func(v *[]byte, s Source) error { return read(v, s.ReadBytes) }),
		WithClone(func(v *[]byte) []byte { return append([]byte(nil), *v...) }),
	)
	registerAs(r, nrInt,
		WithSave(func(v *int, s Sink) error { return s.WriteInt(int64(*v)) }),
		WithLoad(func(v *int, s Source) error {
			x, err := s.ReadInt()
			if err != nil {
				return err
			}
			*v = int(x)
			return nil
		}),
	)
	return r
}

// read assigns the result of a typed Source method, propagating its error.
func read[T any](dst *T, fn func() (T, error)) error {
	x, err := fn()
	if err != nil {
		return err
	}
	*dst = x
	return nil
}

// RegisterOption customizes the adapter built for one type.
type RegisterOption[T any] func(*regOptions[T])

type regOptions[T any] struct {
	save  func(*T, Sink) error
	load  func(*T, Source) error
	clone func(*T) T
	str   func(*T) string
}

// WithSave supplies the serialization routine for T. Without it, Register
// falls back to the Saver interface on *T; if neither exists, Save returns
// an UnserializableTypeError.
func WithSave[T any](fn func(*T, Sink) error) RegisterOption[T] {
	return func(o *regOptions[T]) { o.save = fn }
}

// WithLoad supplies the deserialization routine for T, with the same
// fallback chain as WithSave (the Loader interface, then unserializable).
func WithLoad[T any](fn func(*T, Source) error) RegisterOption[T] {
	return func(o *regOptions[T]) { o.load = fn }
}

// WithClone supplies the copy routine for T. The default is a plain value
// copy, which is wrong for types with reference semantics: a type holding a
// slice or map must register a clone so that Copy yields an independent
// value.
func WithClone[T any](fn func(*T) T) RegisterOption[T] {
	return func(o *regOptions[T]) { o.clone = fn }
}

// WithString overrides the human-readable rendering for T. The default uses
// fmt, which respects fmt.Stringer.
func WithString[T any](fn func(*T) string) RegisterOption[T] {
	return func(o *regOptions[T]) { o.str = fn }
}

// Register adds T to the registry as a custom type and returns its identity.
// Custom types carry CustomTypeNr; their identity lives in the stable key
// derived from the Go type.
//
// This is a package-level function (not a method) due to Go generics
// limitations: methods cannot have type parameters independent of the
// receiver.
//
// Register panics if T is already registered.
func Register[T any](r *Registry, opts ...RegisterOption[T]) TypeID {
	return registerAs(r, CustomTypeNr, opts...)
}

func registerAs[T any](r *Registry, nr uint16, opts ...RegisterOption[T]) TypeID {
	var o regOptions[T]
	for _, opt := range opts {
		opt(&o)
	}

	rt := reflect.TypeOf((*T)(nil)).Elem()
	if _, dup := r.byType[rt]; dup {
		panic(fmt.Sprintf("payload: type %s registered twice", rt))
	}

	e := &entry{id: TypeID{Nr: nr, Key: typeKey(rt)}}

	clone := o.clone
	if clone == nil {
		clone = func(v *T) T { return *v }
	}
	str := o.str
	if str == nil {
		str = func(v *T) string { return fmt.Sprintf("%v", *v) }
	}
	save := o.save
	if save == nil {
		if _, ok := any((*T)(nil)).(Saver); ok {
			save = func(v *T, s Sink) error { return any(v).(Saver).SavePayload(s) }
		}
	}
	load := o.load
	if load == nil {
		if _, ok := any((*T)(nil)).(Loader); ok {
			load = func(v *T, s Source) error { return any(v).(Loader).LoadPayload(s) }
		}
	}

	e.wrap = func(p any) Value { return &boundValue{e: e, ptr: p.(*T)} }
	e.own = func(v any) Value {
		x := v.(T)
		return &boundValue{e: e, ptr: &x}
	}
	e.alloc = func() Value {
		var x T
		return &boundValue{e: e, ptr: &x}
	}
	e.deref = func(p any) any { return *(p.(*T)) }
	e.clone = func(p any) any {
		c := clone(p.(*T))
		return &c
	}
	e.str = func(p any) string { return str(p.(*T)) }
	if save != nil {
		e.save = func(p any, s Sink) error { return save(p.(*T), s) }
	}
	if load != nil {
		e.load = func(p any, s Source) error { return load(p.(*T), s) }
	}

	r.byType[rt] = e
	return e.id
}

// typeKey derives the stable identity key for a Go type.
func typeKey(rt reflect.Type) string {
	if pp := rt.PkgPath(); pp != "" {
		return pp + "." + rt.Name()
	}
	return rt.String()
}

func (r *Registry) lookup(rt reflect.Type) (*entry, bool) {
	e, ok := r.byType[rt]
	return e, ok
}

// IDOf returns the identity registered for rt, or false if rt was never
// registered.
func (r *Registry) IDOf(rt reflect.Type) (TypeID, bool) {
	e, ok := r.byType[rt]
	if !ok {
		return TypeID{}, false
	}
	return e.id, true
}
