package promise

import "sync"

type handlerPair struct {
	onFulfilled func(value interface{})
	onRejected  func(reason error)
}

// Promise is a deferred value: pending until settled exactly once as either
// fulfilled with a value or rejected with a reason. Handlers registered while
// pending are queued and dispatched, in registration order, through the
// promise's Scheduler once it settles. Handlers are never invoked
// synchronously, not even on an already settled promise.
type Promise struct {
	mu       sync.Mutex
	state    State
	value    interface{}
	reason   error
	handlers []handlerPair

	guard settlementGuard
	sched Scheduler
}

// New runs executor immediately and synchronously, passing it a guarded
// resolve/reject pair. A panic inside the executor rejects the promise with
// the recovered value, unless resolve or reject had already been called.
func New(executor func(resolve Resolver, reject Rejector)) *Promise {
	return NewWithScheduler(DefaultScheduler(), executor)
}

func NewWithScheduler(scheduler Scheduler, executor func(resolve Resolver, reject Rejector)) *Promise {
	p := PendingWithScheduler(scheduler)

	resolve, reject := p.guard.wrap(
		func(value interface{}) {
			p.resolveValue(value, 0)
		},
		p.reject,
	)

	func() {
		defer func() {
			if v := recover(); nil != v {
				reject(recoveredError(v))
			}
		}()

		executor(resolve, reject)
	}()

	return p
}

// Pending creates a promise settled externally through its Resolve and
// Reject methods.
func Pending() *Promise {
	return PendingWithScheduler(DefaultScheduler())
}

func PendingWithScheduler(scheduler Scheduler) *Promise {
	return &Promise{
		state: StatePending,
		sched: scheduler,
	}
}

// Resolve settles the promise with value, adopting it first if it is itself a
// promise or a Thenable. It returns ErrPromiseSettled if the promise's
// completion pair has already been used.
func (p *Promise) Resolve(value interface{}) error {
	if !p.guard.tryFire() {
		return ErrPromiseSettled
	}

	p.resolveValue(value, 0)

	return nil
}

// Reject settles the promise with reason, verbatim. It returns
// ErrPromiseSettled if the promise's completion pair has already been used.
func (p *Promise) Reject(reason error) error {
	if !p.guard.tryFire() {
		return ErrPromiseSettled
	}

	p.reject(reason)

	return nil
}

func (p *Promise) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// Await blocks the calling goroutine until the promise settles and returns
// its outcome. The wait goes through the regular dispatch path, so handlers
// registered earlier are still invoked first.
func (p *Promise) Await() (interface{}, error) {
	var (
		value  interface{}
		reason error
	)

	settled := make(chan struct{})

	p.registerHandler(
		func(v interface{}) {
			value = v
			close(settled)
		},
		func(e error) {
			reason = e
			close(settled)
		},
	)

	<-settled

	return value, reason
}

// Done registers a raw handler pair without deriving a new promise. The
// registration itself is deferred by one scheduler turn, so a handler
// attached right after construction observes the same dispatch contract as
// any other.
func (p *Promise) Done(onFulfilled Resolver, onRejected Rejector) {
	p.sched.Schedule(func() {
		p.registerHandler(
			func(value interface{}) {
				if nil != onFulfilled {
					onFulfilled(value)
				}
			},
			func(reason error) {
				if nil != onRejected {
					onRejected(reason)
				}
			},
		)
	})
}

// registerHandler queues the pair while pending, or schedules the branch
// matching the current state. It never invokes either callback synchronously.
func (p *Promise) registerHandler(onFulfilled func(value interface{}), onRejected func(reason error)) {
	p.mu.Lock()

	if StatePending == p.state {
		p.handlers = append(p.handlers, handlerPair{
			onFulfilled: onFulfilled,
			onRejected:  onRejected,
		})
		p.mu.Unlock()

		return
	}

	// Keep the lock through Schedule so a settlement dispatching its queue
	// cannot interleave with this registration; dispatch order stays the
	// registration order.
	state, value, reason := p.state, p.value, p.reason
	p.sched.Schedule(func() {
		if StateFulfilled == state {
			onFulfilled(value)
		} else {
			onRejected(reason)
		}
	})
	p.mu.Unlock()
}

// fulfill transitions Pending -> Fulfilled and dispatches the queued
// handlers in registration order. A no-op on a settled promise.
func (p *Promise) fulfill(value interface{}) {
	p.mu.Lock()

	if StatePending != p.state {
		p.mu.Unlock()

		return
	}

	p.state = StateFulfilled
	p.value = value
	handlers := p.handlers
	p.handlers = nil

	for _, handler := range handlers {
		onFulfilled := handler.onFulfilled
		p.sched.Schedule(func() {
			onFulfilled(value)
		})
	}
	p.mu.Unlock()
}

// reject transitions Pending -> Rejected, symmetric to fulfill.
func (p *Promise) reject(reason error) {
	p.mu.Lock()

	if StatePending != p.state {
		p.mu.Unlock()

		return
	}

	p.state = StateRejected
	p.reason = reason
	handlers := p.handlers
	p.handlers = nil

	for _, handler := range handlers {
		onRejected := handler.onRejected
		p.sched.Schedule(func() {
			onRejected(reason)
		})
	}
	p.mu.Unlock()
}
