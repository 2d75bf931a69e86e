package payload

import (
	"fmt"
	"reflect"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Apply matches fn's parameter list against t and, on success, invokes fn
// with the tuple's contents.
//
// fn may be any non-variadic func whose parameters are registered types,
// each taken either by value (read binding) or by pointer (mutable binding
// aliasing the tuple's storage). The parameter types are deduced from fn's
// signature alone; pointers count as their element type for matching.
//
// fn may return nothing, a single value, an error, or (value, error). Apply
// returns fn's result and ok=true on a match. On a mismatch it returns
// (nil, false, nil) and fn is not invoked: a mismatch has zero side effects,
// so callers can probe a tuple against any number of candidates.
//
// Matching costs one type comparison per position up front; the invocation
// itself performs no further type checks.
func Apply(r *Registry, t Tuple, fn any) (result any, ok bool, err error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		panic(fmt.Sprintf("payload: Apply requires a func, got %T", fn))
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		panic("payload: Apply does not support variadic funcs")
	}
	if !matchSignature(r, t, ft) {
		return nil, false, nil
	}
	result, err = invoke(t, fv)
	return result, true, err
}

// matchSignature checks fn's decayed parameter list against t, arity first.
func matchSignature(r *Registry, t Tuple, ft reflect.Type) bool {
	if ft.NumIn() != t.Size() {
		return false
	}
	for i := 0; i < ft.NumIn(); i++ {
		pt := ft.In(i)
		if pt.Kind() == reflect.Pointer {
			pt = pt.Elem()
		}
		if !MatchElement(r, t, i, pt) {
			return false
		}
	}
	return true
}

// invoke binds one argument per position and calls fv. Only reached after
// matchSignature succeeded, so the type assertions behind GetMutable are
// guaranteed to hold.
func invoke(t Tuple, fv reflect.Value) (any, error) {
	ft := fv.Type()
	args := make([]reflect.Value, ft.NumIn())
	for i := range args {
		p := reflect.ValueOf(t.GetMutable(i))
		if ft.In(i).Kind() == reflect.Pointer {
			args[i] = p
		} else {
			args[i] = p.Elem()
		}
	}
	return splitResults(fv.Call(args))
}

// splitResults maps fn's return values onto (result, error).
func splitResults(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type() == errType {
			err, _ := out[0].Interface().(error)
			return nil, err
		}
		return out[0].Interface(), nil
	case 2:
		if out[1].Type() != errType {
			panic("payload: second return value must be error")
		}
		err, _ := out[1].Interface().(error)
		return out[0].Interface(), err
	default:
		panic("payload: Apply supports at most two return values")
	}
}

// Apply1 is the typed single-argument fast path: matching and binding happen
// without reflection on the call. The matching contract is the same as
// Apply's, but the signature is narrower: parameters are taken by value only
// and the callable returns exactly one result. Use Apply for pointer
// (mutable-binding) parameters or error-returning handlers.
func Apply1[A, R any](r *Registry, t Tuple, fn func(A) R) (R, bool) {
	var zero R
	if t.Size() != 1 || !MatchElement(r, t, 0, reflect.TypeOf((*A)(nil)).Elem()) {
		return zero, false
	}
	return fn(*t.GetMutable(0).(*A)), true
}

// Apply2 is the typed two-argument fast path.
func Apply2[A, B, R any](r *Registry, t Tuple, fn func(A, B) R) (R, bool) {
	var zero R
	if t.Size() != 2 ||
		!MatchElement(r, t, 0, reflect.TypeOf((*A)(nil)).Elem()) ||
		!MatchElement(r, t, 1, reflect.TypeOf((*B)(nil)).Elem()) {
		return zero, false
	}
	return fn(*t.GetMutable(0).(*A), *t.GetMutable(1).(*B)), true
}

// Apply3 is the typed three-argument fast path.
func Apply3[A, B, C, R any](r *Registry, t Tuple, fn func(A, B, C) R) (R, bool) {
	var zero R
	if t.Size() != 3 ||
		!MatchElement(r, t, 0, reflect.TypeOf((*A)(nil)).Elem()) ||
		!MatchElement(r, t, 1, reflect.TypeOf((*B)(nil)).Elem()) ||
		!MatchElement(r, t, 2, reflect.TypeOf((*C)(nil)).Elem()) {
		return zero, false
	}
	return fn(*t.GetMutable(0).(*A), *t.GetMutable(1).(*B), *t.GetMutable(2).(*C)), true
}
