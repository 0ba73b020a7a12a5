package promise

import "reflect"

// Then derives a new promise from the receiver. On fulfillment, onFulfilled
// (when non-nil) runs with the value and its outcome settles the derived
// promise: a returned error or a panic rejects it, any other result resolves
// it, adopting returned promises and thenables transparently. A nil
// onFulfilled propagates the value unchanged. The rejected branch is
// symmetric with onRejected, a nil handler propagating the reason.
func (p *Promise) Then(onFulfilled FulfillHandler, onRejected RejectHandler) *Promise {
	next := PendingWithScheduler(p.sched)
	next.guard.tryFire()

	p.registerHandler(
		func(value interface{}) {
			if nil == onFulfilled {
				next.resolveValue(value, 0)

				return
			}

			next.completeFrom(func() (interface{}, error) {
				return onFulfilled(value)
			})
		},
		func(reason error) {
			if nil == onRejected {
				next.reject(reason)

				return
			}

			next.completeFrom(func() (interface{}, error) {
				return onRejected(reason)
			})
		},
	)

	return next
}

// completeFrom feeds a continuation's outcome into p, turning a returned
// error or a panic into a rejection.
func (p *Promise) completeFrom(continuation func() (interface{}, error)) {
	defer func() {
		if v := recover(); nil != v {
			p.reject(recoveredError(v))
		}
	}()

	result, err := continuation()
	if nil != err {
		p.reject(err)

		return
	}

	p.resolveValue(result, 0)
}

func (p *Promise) Catch(handler RejectHandler) *Promise {
	return p.Then(nil, handler)
}

// Finally schedules handler as a side effect of either outcome and returns a
// pass-through promise carrying the original value or reason. The handler is
// attached to both branches independently; its result and failures end up in
// a discarded derived promise and are never merged back into the chain.
func (p *Promise) Finally(handler FinallyHandler) *Promise {
	p.Then(
		func(interface{}) (interface{}, error) {
			handler()

			return nil, nil
		},
		func(error) (interface{}, error) {
			handler()

			return nil, nil
		},
	)

	return p.Then(nil, nil)
}

// Spread is Then for slice fulfillment values: the elements are expanded
// positionally as the handler's arguments. A non-slice value is passed as the
// sole argument.
func (p *Promise) Spread(handler SpreadHandler) *Promise {
	return p.Then(
		func(value interface{}) (interface{}, error) {
			if nil != value {
				rv := reflect.ValueOf(value)
				if reflect.Slice == rv.Kind() || reflect.Array == rv.Kind() {
					values := make([]interface{}, rv.Len())
					for i := range values {
						values[i] = rv.Index(i).Interface()
					}

					return handler(values...)
				}
			}

			return handler(value)
		},
		nil,
	)
}

// End terminates a chain: a rejection reaching it is handed to the
// unhandled-rejection Reporter and propagates no further. Intended as the
// last link of a chain.
func (p *Promise) End() {
	p.registerHandler(
		func(interface{}) {},
		func(reason error) {
			currentReporter().ReportUnhandled(reason)
		},
	)
}
