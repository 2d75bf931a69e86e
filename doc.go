// Package payload carries heterogeneous, strongly-typed message contents
// behind a single non-generic interface.
//
// In an actor-style system the sender and receiver of a message rarely share
// full compile-time knowledge of each other's types. This package erases the
// concrete types at the boundary, so queues, serializers, and dispatchers see
// only the Tuple interface, and recovers them safely at the point of use
// through runtime identity checks.
//
// # Quick Start
//
// Create a registry, wrap some values, and dispatch on them:
//
//	reg := payload.NewRegistry()
//
//	n, s := int64(42), "hi"
//	view := payload.MustView(reg, &n, &s)
//
//	result, ok := payload.Apply2(reg, view, func(n int64, s string) int64 {
//	    return n + int64(len(s))
//	})
//	// ok == true, result == 44
//
// A handler that does not match is simply not invoked:
//
//	_, ok = payload.Apply2(reg, view, func(a, b int64) int64 { return a + b })
//	// ok == false, zero side effects
//
// # Design Philosophy
//
// The package separates concerns into three layers:
//
//   - Registry: maps concrete types to runtime identities and adapters
//   - Tuple: the type-erased shape that crosses component boundaries
//   - Dispatch: matches callables against tuples and invokes on success
//
// This separation allows:
//   - Senders and receivers that only share the types they exchange
//   - Transport-agnostic serialization through the Sink/Source boundary
//   - Independent registries per test or per connected peer
//   - Consistent observability via hooks on Handlers
//
// # Type Identity
//
// Every registered type gets a TypeID: a small number for the built-in set,
// or the custom sentinel plus a stable per-type key for everything else.
// Identity comparison is two-tier: registered types compare by number alone,
// custom types fall back to the key. No comparison ever depends on runtime
// pointer values, so identities are stable within a process and across
// registries built the same way.
//
// # Tuples, Views, and Ownership
//
// Values is an owning tuple; construction copies its inputs. View binds
// live caller variables without copying, which makes zero-copy sends
// possible but leaves lifetime with the caller: the bound variables must
// outlive every use of the view. Empty is the shared zero-length tuple.
//
// # Token Pre-Filter
//
// Every tuple carries a cheap uint32 token over its ordered element types.
// Equal type sequences always produce equal tokens and unequal tokens prove
// the sequences differ, so dispatch can reject most candidates on a single
// integer comparison before any per-element matching. Handlers uses this
// together with adaptive ordering (the last matched candidate is tried
// first) to keep repeated message shapes on a short hot path.
//
// # Serialization
//
// Elements save to a Sink and load from a Source, a primitive-typed
// boundary that keeps the tuple machinery ignorant of byte formats. Binary,
// MessagePack, and JSON implementations ship with the package; custom types
// participate by implementing Saver and Loader or by passing WithSave and
// WithLoad at registration. Serialization failures propagate unchanged and
// abort the remaining elements; a type mismatch during dispatch is never an
// error, just a false.
//
// # Concurrency
//
// Nothing here locks. Dispatch is synchronous on the caller's goroutine,
// and a single tuple is not safe for concurrent mutation. The Shared flag
// is advisory metadata for callers deciding on copy-on-write, not an
// enforced lock.
package payload
