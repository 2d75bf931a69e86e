package payload

import (
	"fmt"
	"reflect"
	"sync/atomic"
	"time"
)

// candidate is one registered callable plus everything precomputed at Add
// time: its reflected signature and the type token of its decayed parameter
// list.
type candidate struct {
	fv    reflect.Value
	ft    reflect.Type
	token uint32
	name  string
}

// Handlers is an ordered set of candidate callables dispatched against
// tuples: the message-handling counterpart of a switch over message shapes.
//
// Dispatch tries candidates in registration order and invokes the first
// whose parameter list matches the tuple, so earlier candidates shadow
// later ones with the same signature. Matching a candidate costs a token
// comparison first (cheap rejection), then one type comparison per position.
//
// Handlers is safe for concurrent Dispatch calls after configuration. Do
// not call Add concurrently with Dispatch.
type Handlers struct {
	reg   *Registry
	cands []candidate
	hooks hooks

	// Adaptive ordering: try the last matched candidate first.
	lastMatch atomic.Int32
}

// New creates an empty handler set over reg.
//
// Example:
//
//	h := payload.New(reg,
//	    payload.WithOnNoMatch(func(t payload.Tuple) {
//	        log.Printf("unhandled: %s", payload.Stringify(t))
//	    }),
//	)
func New(reg *Registry, opts ...Option) *Handlers {
	h := &Handlers{reg: reg}
	h.lastMatch.Store(-1)
	for _, opt := range opts {
		opt(&h.hooks)
	}
	return h
}

// Add appends fn as a dispatch candidate. fn must satisfy the Apply
// contract: a non-variadic func over registered parameter types, returning
// at most one value plus an optional error.
func (h *Handlers) Add(fn any) error {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return fmt.Errorf("payload: handler must be a func, got %T", fn)
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return fmt.Errorf("payload: handler %s is variadic", ft)
	}
	switch ft.NumOut() {
	case 0, 1:
	case 2:
		if ft.Out(1) != errType {
			return fmt.Errorf("payload: handler %s second return value must be error", ft)
		}
	default:
		return fmt.Errorf("payload: handler %s returns more than two values", ft)
	}
	types := make([]reflect.Type, ft.NumIn())
	for i := range types {
		pt := ft.In(i)
		if pt.Kind() == reflect.Pointer {
			pt = pt.Elem()
		}
		types[i] = pt
	}
	token, ok := TokenOf(h.reg, types...)
	if !ok {
		return fmt.Errorf("payload: handler %s has an unregistered parameter type", ft)
	}
	h.cands = append(h.cands, candidate{
		fv:    fv,
		ft:    ft,
		token: token,
		name:  ft.String(),
	})
	return nil
}

// MustAdd is Add that panics on error.
func (h *Handlers) MustAdd(fn any) {
	if err := h.Add(fn); err != nil {
		panic(err)
	}
}

// Dispatch invokes the first candidate whose parameter list matches t and
// returns its result. When nothing matches it returns (nil, false, nil)
// without side effects beyond the OnNoMatch hooks.
//
// The last matched candidate is tried first on subsequent calls; message
// streams tend to repeat shapes, so this keeps the hot path at one token
// comparison plus one signature check.
func (h *Handlers) Dispatch(t Tuple) (result any, ok bool, err error) {
	token := t.TypeToken()

	last := int(h.lastMatch.Load())
	if last >= 0 && last < len(h.cands) {
		if result, ok, err = h.try(last, t, token); ok {
			return result, ok, err
		}
	}

	for i := range h.cands {
		if i == last {
			continue
		}
		if result, ok, err = h.try(i, t, token); ok {
			h.lastMatch.Store(int32(i))
			return result, ok, err
		}
	}

	h.hooks.callOnNoMatch(t)
	return nil, false, nil
}

// try matches one candidate against t and invokes it on success. The token
// check rejects most non-matching candidates without touching the elements;
// unequal tokens prove the type sequences differ.
func (h *Handlers) try(i int, t Tuple, token uint32) (any, bool, error) {
	cand := &h.cands[i]
	if cand.token != token {
		return nil, false, nil
	}
	if !matchSignature(h.reg, t, cand.ft) {
		return nil, false, nil
	}
	h.hooks.callOnMatch(cand.name)
	start := time.Now()
	result, err := invoke(t, cand.fv)
	h.hooks.callOnApply(cand.name, time.Since(start), err)
	return result, true, err
}

// Len returns the number of registered candidates.
func (h *Handlers) Len() int { return len(h.cands) }
