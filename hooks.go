package payload

import "time"

// OnMatchFunc is called after a candidate's parameter list matches the
// tuple, just before the candidate executes. The handler argument is the
// candidate's signature string.
type OnMatchFunc func(handler string)

// OnApplyFunc is called after a matched candidate returns. err is whatever
// the candidate returned through its error result, nil otherwise.
type OnApplyFunc func(handler string, duration time.Duration, err error)

// OnNoMatchFunc is called when no candidate matches the tuple. Use this to
// log or count unhandled message shapes; the tuple itself is passed so the
// hook can stringify it.
type OnNoMatchFunc func(t Tuple)

// hooks holds all configured hook functions.
type hooks struct {
	onMatch   []OnMatchFunc
	onApply   []OnApplyFunc
	onNoMatch []OnNoMatchFunc
}

// Option configures a handler set.
type Option func(*hooks)

// WithOnMatch adds a hook called just before a matched candidate executes.
// Multiple hooks are called in order.
//
// Example:
//
//	payload.WithOnMatch(func(handler string) {
//	    logger.Debug("dispatching", "handler", handler)
//	})
func WithOnMatch(fn OnMatchFunc) Option {
	return func(h *hooks) {
		h.onMatch = append(h.onMatch, fn)
	}
}

// WithOnApply adds a hook called after a matched candidate returns.
// Multiple hooks are called in order.
//
// Example:
//
//	payload.WithOnApply(func(handler string, d time.Duration, err error) {
//	    metrics.Timing("payload.apply", d)
//	})
func WithOnApply(fn OnApplyFunc) Option {
	return func(h *hooks) {
		h.onApply = append(h.onApply, fn)
	}
}

// WithOnNoMatch adds a hook called when no candidate matches a dispatched
// tuple. Multiple hooks are called in order.
//
// Example:
//
//	payload.WithOnNoMatch(func(t payload.Tuple) {
//	    logger.Warn("unhandled message", "content", payload.Stringify(t))
//	})
func WithOnNoMatch(fn OnNoMatchFunc) Option {
	return func(h *hooks) {
		h.onNoMatch = append(h.onNoMatch, fn)
	}
}

func (h *hooks) callOnMatch(handler string) {
	for _, fn := range h.onMatch {
		fn(handler)
	}
}

func (h *hooks) callOnApply(handler string, d time.Duration, err error) {
	for _, fn := range h.onApply {
		fn(handler, d, err)
	}
}

func (h *hooks) callOnNoMatch(t Tuple) {
	for _, fn := range h.onNoMatch {
		fn(t)
	}
}
