package promise

type State string

const (
	StatePending   = State("pending")
	StateFulfilled = State("fulfilled")
	StateRejected  = State("rejected")
)

// Resolver and Rejector are the completion callbacks handed to an executor.
// Both are safe to call more than once; only the first call of either wins.
type Resolver func(value interface{})
type Rejector func(reason error)

// FulfillHandler consumes a fulfillment value and produces the outcome of the
// derived promise: a non-nil err rejects it, otherwise result resolves it
// (result may itself be a *Promise or a Thenable).
type FulfillHandler func(value interface{}) (result interface{}, err error)

// RejectHandler consumes a rejection reason. Returning a nil err recovers the
// chain: the derived promise resolves with result.
type RejectHandler func(reason error) (result interface{}, err error)

type FinallyHandler func()

// SpreadHandler receives the elements of a slice fulfillment value as
// positional arguments, or the value itself as the only argument.
type SpreadHandler func(values ...interface{}) (result interface{}, err error)

// Thenable is any value that can deliver a deferred outcome through a pair of
// completion callbacks. Values implementing it are adopted instead of being
// used as a plain fulfillment value.
type Thenable interface {
	Then(onFulfilled func(value interface{}), onRejected func(reason error))
}

// Scheduler enqueues a task for later, single, FIFO-ordered invocation.
// Implementations must never run the task synchronously from Schedule.
type Scheduler interface {
	Schedule(task func())
}

// Reporter receives rejection reasons that reach the end of a chain
// unconsumed (see Promise.End).
type Reporter interface {
	ReportUnhandled(reason error)
}

type Promiser interface {
	Then(onFulfilled FulfillHandler, onRejected RejectHandler) *Promise
	Catch(handler RejectHandler) *Promise
	Finally(handler FinallyHandler) *Promise
	Spread(handler SpreadHandler) *Promise
	Done(onFulfilled Resolver, onRejected Rejector)
	End()
	Resolve(value interface{}) error
	Reject(reason error) error
	State() State
	Await() (interface{}, error)
}
