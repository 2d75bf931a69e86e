package payload

import (
	"fmt"
	"reflect"
)

// tupleBase implements the positional Tuple methods over a slice of element
// wrappers. View and Values differ only in how the wrappers came to be.
type tupleBase struct {
	vals   []Value
	token  uint32
	shared bool
}

func (t *tupleBase) Size() int         { return len(t.vals) }
func (t *tupleBase) TypeToken() uint32 { return t.token }
func (t *tupleBase) Shared() bool      { return t.shared }

// SetShared marks the tuple as potentially referenced from more than one
// place. Advisory only; see Tuple.
func (t *tupleBase) SetShared(shared bool) { t.shared = shared }

func (t *tupleBase) at(pos int) Value {
	if pos < 0 || pos >= len(t.vals) {
		panic(outOfRange(pos, len(t.vals)))
	}
	return t.vals[pos]
}

func (t *tupleBase) Type(pos int) TypeID          { return t.at(pos).Type() }
func (t *tupleBase) Get(pos int) any              { return t.at(pos).Get() }
func (t *tupleBase) GetMutable(pos int) any       { return t.at(pos).GetMutable() }
func (t *tupleBase) Stringify(pos int) string     { return t.at(pos).String() }
func (t *tupleBase) Copy(pos int) Value           { return t.at(pos).Copy() }
func (t *tupleBase) Save(pos int, s Sink) error   { return t.at(pos).Save(s) }
func (t *tupleBase) Load(pos int, s Source) error { return t.at(pos).Load(s) }

// View is a non-owning Tuple bound over live caller variables. It allocates
// only its element wrappers; the data stays where it is.
//
// The view performs no lifetime extension: the bound variables must outlive
// every use of the view, including uses after Clone.
type View struct {
	tupleBase
}

// NewView binds the pointed-to variables into a tuple shape. Every argument
// must be a non-nil pointer to a type registered with r.
//
//	n, s := int64(42), "hi"
//	v, err := payload.NewView(reg, &n, &s)
func NewView(r *Registry, ptrs ...any) (*View, error) {
	vals := make([]Value, len(ptrs))
	ids := make([]TypeID, len(ptrs))
	for i, p := range ptrs {
		rt := reflect.TypeOf(p)
		if rt == nil || rt.Kind() != reflect.Pointer {
			return nil, fmt.Errorf("payload: view argument %d is %T, want a pointer", i, p)
		}
		e, ok := r.lookup(rt.Elem())
		if !ok {
			return nil, &UnknownTypeError{Type: rt.Elem()}
		}
		vals[i] = e.wrap(p)
		ids[i] = e.id
	}
	return &View{tupleBase{vals: vals, token: tokenOf(ids)}}, nil
}

// MustView is NewView that panics on error. Intended for statically known
// type lists, where a failure is a programming error.
func MustView(r *Registry, ptrs ...any) *View {
	v, err := NewView(r, ptrs...)
	if err != nil {
		panic(err)
	}
	return v
}

// Clone returns a new view with fresh element wrappers bound to the same
// underlying variables. The clone aliases the original's data, never its
// wrappers: mutations through either view are visible through both.
func (v *View) Clone() *View {
	vals := make([]Value, len(v.vals))
	for i, val := range v.vals {
		bv := val.(*boundValue)
		vals[i] = bv.e.wrap(bv.ptr)
	}
	return &View{tupleBase{vals: vals, token: v.token, shared: v.shared}}
}

// Values is an owning Tuple: construction copies its inputs into storage
// the tuple controls, so it has no lifetime coupling to the caller.
type Values struct {
	tupleBase
}

// NewTuple copies xs into an owning tuple. Every argument must be a value
// of a type registered with r.
//
//	t, err := payload.NewTuple(reg, int64(42), "hi")
func NewTuple(r *Registry, xs ...any) (*Values, error) {
	vals := make([]Value, len(xs))
	ids := make([]TypeID, len(xs))
	for i, x := range xs {
		rt := reflect.TypeOf(x)
		e, ok := r.lookup(rt)
		if !ok {
			return nil, &UnknownTypeError{Type: rt}
		}
		vals[i] = e.own(x)
		ids[i] = e.id
	}
	return &Values{tupleBase{vals: vals, token: tokenOf(ids)}}, nil
}

// MustTuple is NewTuple that panics on error.
func MustTuple(r *Registry, xs ...any) *Values {
	t, err := NewTuple(r, xs...)
	if err != nil {
		panic(err)
	}
	return t
}

// CopyTuple copies every element of t into a new owning tuple. Useful to
// detach a message from view-bound storage before queueing it, or to build
// a load target with the same shape as an existing tuple.
func CopyTuple(t Tuple) *Values {
	vals := make([]Value, t.Size())
	for i := range vals {
		vals[i] = t.Copy(i)
	}
	return &Values{tupleBase{vals: vals, token: t.TypeToken()}}
}
