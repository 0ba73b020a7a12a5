package promise

import "sync"

// All waits for every input and fulfills with their values in input order,
// regardless of the order they settled in. The first rejection from any input
// rejects the aggregate immediately with that single reason; everything that
// settles afterwards is inert. No inputs fulfills with an empty slice.
//
// Inputs that are not promises are normalized through Resolve first.
func All(values ...interface{}) *Promise {
	if 0 == len(values) {
		return fulfilled([]interface{}{})
	}

	aggregate := Pending()
	aggregate.guard.tryFire()

	var (
		mu        sync.Mutex
		results   = make([]interface{}, len(values))
		remaining = len(values)
	)

	for i, value := range values {
		i := i

		Resolve(value).registerHandler(
			func(value interface{}) {
				mu.Lock()
				results[i] = value
				remaining--
				completed := 0 == remaining
				mu.Unlock()

				if completed {
					aggregate.fulfill(results)
				}
			},
			aggregate.reject,
		)
	}

	return aggregate
}

// Some fulfills with the value of the first input to fulfill, in arrival
// order; rejections do not settle it. Only once every input has rejected does
// the aggregate reject, with an *AggregateError carrying the per-input
// reasons in input order. No inputs fulfills with no value.
func Some(values ...interface{}) *Promise {
	if 0 == len(values) {
		return fulfilled(nil)
	}

	aggregate := Pending()
	aggregate.guard.tryFire()

	var (
		mu        sync.Mutex
		reasons   = make([]error, len(values))
		remaining = len(values)
	)

	for i, value := range values {
		i := i

		Resolve(value).registerHandler(
			aggregate.fulfill,
			func(reason error) {
				mu.Lock()
				reasons[i] = reason
				remaining--
				exhausted := 0 == remaining
				mu.Unlock()

				if exhausted {
					aggregate.reject(&AggregateError{Reasons: reasons})
				}
			},
		)
	}

	return aggregate
}

// Race forwards the first settlement of any kind, fulfillment or rejection,
// verbatim; later settlements are inert. With no inputs the returned promise
// never settles.
func Race(values ...interface{}) *Promise {
	aggregate := Pending()
	aggregate.guard.tryFire()

	for _, value := range values {
		Resolve(value).registerHandler(aggregate.fulfill, aggregate.reject)
	}

	return aggregate
}
