// Package promise implements a deferred-value primitive with composable
// chaining and aggregation.
//
// A Promise starts pending and settles exactly once, as either fulfilled with
// a value or rejected with an error, no matter how many times or in what
// order its completion callbacks are invoked. Continuations registered with
// Then, Catch, Finally, Spread or Done run with the eventual outcome, always
// on a later Scheduler turn, never synchronously inside the call that
// attached them or the call that settled the promise.
//
// Resolving a promise with another promise, or with any value implementing
// Thenable, adopts that value's eventual outcome instead of using it as a
// plain fulfillment value; nesting unwraps hop by hop.
//
// All, Some and Race coordinate many in-flight promises: All waits for every
// input and preserves input order, Some settles on the first fulfillment and
// aggregates reasons only when every input rejected, Race forwards the first
// settlement of any kind.
//
// The scheduling model is cooperative: all work is ordinary synchronous
// execution except for explicit hops through a Scheduler, a FIFO task queue.
// Cancellation, timeouts and backpressure are out of scope; discarding the
// losing branch of Race or Some discards its result, not its work.
package promise
