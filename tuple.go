package payload

import (
	"fmt"
	"strings"
)

// Tuple is an ordered, fixed-length sequence of type-erased values accessed
// by position. It is the shape that crosses component boundaries: queues,
// dispatchers, and serializers all see a Tuple, never the concrete types
// behind it.
//
// Size is constant for the object's lifetime. Positional methods require
// pos in [0, Size()) and panic otherwise; compliant callers never hit that
// path. Per-position semantics mirror Value.
//
// A Tuple performs no internal synchronization. Shared is advisory only: it
// tells a caller whether copy-on-write precautions are warranted before
// mutating, it enforces nothing.
type Tuple interface {
	Size() int

	// TypeToken is a coarse descriptor of the element type sequence,
	// computed once at construction. Equal element sequences always yield
	// equal tokens; unequal tokens prove the sequences differ. It is a
	// pre-filter, not proof of equality.
	TypeToken() uint32

	// Shared reports whether more than one reference to this tuple may
	// exist concurrently.
	Shared() bool

	Type(pos int) TypeID
	Get(pos int) any
	GetMutable(pos int) any
	Stringify(pos int) string
	Copy(pos int) Value
	Save(pos int, sink Sink) error
	Load(pos int, src Source) error
}

// IsEmpty reports whether t has no elements.
func IsEmpty(t Tuple) bool { return t.Size() == 0 }

// Stringify renders t as "(el0, el1, ...)". The empty tuple renders as "()".
func Stringify(t Tuple) string {
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < t.Size(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.Stringify(i))
	}
	b.WriteByte(')')
	return b.String()
}

// SaveTuple writes every element of t to sink in positional order. The
// first failure aborts the remaining elements and propagates unchanged.
func SaveTuple(t Tuple, sink Sink) error {
	for i := 0; i < t.Size(); i++ {
		if err := t.Save(i, sink); err != nil {
			return err
		}
	}
	return nil
}

// LoadTuple reads every element of t from src in positional order, with the
// same abort-on-first-failure contract as SaveTuple. The tuple's shape and
// element types are fixed; only the values change.
func LoadTuple(t Tuple, src Source) error {
	for i := 0; i < t.Size(); i++ {
		if err := t.Load(i, src); err != nil {
			return err
		}
	}
	return nil
}

// Matches reports whether the element at pos has the given identity, using
// the two-tier check from TypeID.Equal: number equality settles registered
// types, key equality settles custom ones.
func Matches(t Tuple, pos int, id TypeID) bool {
	return t.Type(pos).Equal(id)
}

// Empty is the zero-length tuple. It is stateless; use it wherever a Tuple
// is required and there is nothing to carry.
var Empty Tuple = emptyTuple{}

type emptyTuple struct{}

func (emptyTuple) Size() int         { return 0 }
func (emptyTuple) TypeToken() uint32 { return emptyToken }
func (emptyTuple) Shared() bool      { return false }

// The positional methods are unreachable under the size invariant; they
// fail fast if a caller gets here anyway.

func (emptyTuple) Type(pos int) TypeID          { panic(outOfRange(pos, 0)) }
func (emptyTuple) Get(pos int) any              { panic(outOfRange(pos, 0)) }
func (emptyTuple) GetMutable(pos int) any       { panic(outOfRange(pos, 0)) }
func (emptyTuple) Stringify(pos int) string     { panic(outOfRange(pos, 0)) }
func (emptyTuple) Copy(pos int) Value           { panic(outOfRange(pos, 0)) }
func (emptyTuple) Save(pos int, _ Sink) error   { panic(outOfRange(pos, 0)) }
func (emptyTuple) Load(pos int, _ Source) error { panic(outOfRange(pos, 0)) }

func outOfRange(pos, size int) string {
	return fmt.Sprintf("payload: position %d out of range for tuple of size %d", pos, size)
}
