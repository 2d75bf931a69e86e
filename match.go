package payload

import "reflect"

// MatchElement reports whether the element at pos has the runtime identity
// registered for rt. An unregistered rt matches nothing.
func MatchElement(r *Registry, t Tuple, pos int, rt reflect.Type) bool {
	id, ok := r.IDOf(rt)
	if !ok {
		return false
	}
	return t.Type(pos).Equal(id)
}

// Match reports whether t's contents are exactly the given types, in order.
// An arity mismatch is an immediate false; otherwise the scan short-circuits
// on the first position that differs.
//
//	payload.Match(reg, v, reflect.TypeFor[int64](), reflect.TypeFor[string]())
func Match(r *Registry, t Tuple, types ...reflect.Type) bool {
	if len(types) != t.Size() {
		return false
	}
	for i, rt := range types {
		if !MatchElement(r, t, i, rt) {
			return false
		}
	}
	return true
}

// TokenOf computes the type token for an ordered type list, the same token a
// tuple over values of those types reports. Returns false if any type is
// unregistered.
func TokenOf(r *Registry, types ...reflect.Type) (uint32, bool) {
	ids := make([]TypeID, len(types))
	for i, rt := range types {
		id, ok := r.IDOf(rt)
		if !ok {
			return 0, false
		}
		ids[i] = id
	}
	return tokenOf(ids), true
}

// Pred is a composable predicate over tuples, for callers that want custom
// control flow instead of the apply path. Predicates are cheap relative to
// dispatch and perform no side effects.
type Pred interface {
	Match(t Tuple) bool
}

// HasSize returns a Pred that matches tuples of exactly n elements.
func HasSize(n int) Pred {
	return hasSize{n: n}
}

type hasSize struct {
	n int
}

func (p hasSize) Match(t Tuple) bool { return t.Size() == p.n }

// ElementIs returns a Pred that matches when the element at pos has the
// given identity. Tuples too short to have a pos element do not match.
func ElementIs(pos int, id TypeID) Pred {
	return elementIs{pos: pos, id: id}
}

type elementIs struct {
	pos int
	id  TypeID
}

func (p elementIs) Match(t Tuple) bool {
	return p.pos < t.Size() && t.Type(p.pos).Equal(p.id)
}

// And returns a Pred that matches when all predicates match.
func And(ps ...Pred) Pred {
	return and{ps: ps}
}

type and struct {
	ps []Pred
}

func (p and) Match(t Tuple) bool {
	for _, sub := range p.ps {
		if !sub.Match(t) {
			return false
		}
	}
	return true
}

// Or returns a Pred that matches when any predicate matches.
func Or(ps ...Pred) Pred {
	return or{ps: ps}
}

type or struct {
	ps []Pred
}

func (p or) Match(t Tuple) bool {
	for _, sub := range p.ps {
		if sub.Match(t) {
			return true
		}
	}
	return false
}
