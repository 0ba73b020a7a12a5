package promise

import "sync"

// maxAdoptionDepth bounds the number of adoption hops taken while unwrapping
// nested thenables. The limit exists to turn resolution cycles built out of
// misbehaving thenables into a rejection instead of an unbounded loop.
const maxAdoptionDepth = 64

// resolveValue settles p with an arbitrary value: another *Promise or a
// Thenable is adopted (p eventually takes on its outcome), anything else
// fulfills p directly. Each adoption hop gets a fresh settlement guard, so no
// hop can fire more than once no matter what the thenable does.
func (p *Promise) resolveValue(value interface{}, depth int) {
	if value == interface{}(p) {
		p.reject(ErrSelfResolution)

		return
	}

	if depth > maxAdoptionDepth {
		p.reject(ErrAdoptionDepth)

		return
	}

	switch v := value.(type) {
	case *Promise:
		// A promise's fulfillment value is already fully unwrapped, so its
		// outcome can be forwarded without another resolution pass.
		v.registerHandler(p.fulfill, p.reject)

	case Thenable:
		guard := newGuard()
		onFulfilled, onRejected := guard.wrap(
			func(next interface{}) {
				p.resolveValue(next, depth+1)
			},
			p.reject,
		)

		func() {
			defer func() {
				if r := recover(); nil != r && guard.tryFire() {
					p.reject(recoveredError(r))
				}
			}()

			v.Then(onFulfilled, onRejected)
		}()

	default:
		p.fulfill(value)
	}
}

var (
	settledConstantsOnce sync.Once
	settledConstants     map[interface{}]*Promise
)

// cachedFor returns the shared pre-fulfilled promise for a small fixed set of
// canonical values. Purely an allocation saver; sharing is not observable
// because settled promises are immutable.
func cachedFor(value interface{}) (*Promise, bool) {
	switch value {
	case nil, true, false, 0, "":
		settledConstantsOnce.Do(func() {
			settledConstants = make(map[interface{}]*Promise, 5)
			for _, v := range []interface{}{nil, true, false, 0, ""} {
				settledConstants[v] = fulfilled(v)
			}
		})

		return settledConstants[value], true
	}

	return nil, false
}

// Resolve normalizes value into a promise. An existing *Promise is returned
// unchanged; a Thenable is adopted; any other value becomes an already
// fulfilled promise, shared for a few common constants.
func Resolve(value interface{}) *Promise {
	if p, ok := value.(*Promise); ok {
		return p
	}

	if p, ok := cachedFor(value); ok {
		return p
	}

	if t, ok := value.(Thenable); ok {
		p := Pending()
		p.guard.tryFire()
		p.resolveValue(t, 0)

		return p
	}

	return fulfilled(value)
}

// Reject creates a new, already rejected promise. The reason is not
// normalized or wrapped.
func Reject(reason error) *Promise {
	p := &Promise{
		state:  StateRejected,
		reason: reason,
		sched:  DefaultScheduler(),
	}
	p.guard.tryFire()

	return p
}

// fulfilled is the fast path for known plain values: no executor, no guard
// machinery, since a double settlement is impossible here.
func fulfilled(value interface{}) *Promise {
	p := &Promise{
		state: StateFulfilled,
		value: value,
		sched: DefaultScheduler(),
	}
	p.guard.tryFire()

	return p
}
