package promise

import "go.uber.org/atomic"

// settlementGuard is a one-shot latch shared by a pair of completion
// callbacks. Whichever callback wins tryFire first is the only one that runs;
// every later call on either callback is a no-op. A fresh guard is used per
// executor invocation and per thenable adoption hop, which is what keeps
// settlement idempotent even against misbehaving producers.
type settlementGuard struct {
	fired atomic.Bool
}

func newGuard() *settlementGuard {
	return &settlementGuard{}
}

// tryFire consumes the latch. It returns true for exactly one caller.
func (g *settlementGuard) tryFire() bool {
	return g.fired.CompareAndSwap(false, true)
}

// wrap returns a resolve/reject pair sharing this guard's latch.
func (g *settlementGuard) wrap(resolve Resolver, reject Rejector) (Resolver, Rejector) {
	return func(value interface{}) {
			if g.tryFire() {
				resolve(value)
			}
		},
		func(reason error) {
			if g.tryFire() {
				reject(reason)
			}
		}
}
