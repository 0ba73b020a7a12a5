package promise

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

func TestPending(t *testing.T) {
	t.Run("Pending promise can be created", func(t *testing.T) {
		p := Pending()

		require.Implements(t, (*Promiser)(nil), p)
		require.Equal(t, StatePending, p.State())
	})
}

func TestNew(t *testing.T) {
	t.Run("Executor runs immediately and synchronously", func(t *testing.T) {
		ran := false

		New(func(resolve Resolver, reject Rejector) {
			ran = true
		})

		require.True(t, ran)
	})

	t.Run("Resolving the executor fulfills the promise", func(t *testing.T) {
		p := New(func(resolve Resolver, reject Rejector) {
			resolve(123)
		})

		value, err := p.Await()
		require.NoError(t, err)
		require.Equal(t, 123, value)
		require.Equal(t, StateFulfilled, p.State())
	})

	t.Run("Rejecting the executor rejects the promise", func(t *testing.T) {
		reason := errors.New("executor failed")

		p := New(func(resolve Resolver, reject Rejector) {
			reject(reason)
		})

		_, err := p.Await()
		require.Same(t, reason, err)
		require.Equal(t, StateRejected, p.State())
	})

	t.Run("Panic in the executor rejects with the panic value", func(t *testing.T) {
		reason := errors.New("boom")

		p := New(func(resolve Resolver, reject Rejector) {
			panic(reason)
		})

		_, err := p.Await()
		require.Same(t, reason, err)
	})

	t.Run("Panic with a non-error value is wrapped", func(t *testing.T) {
		p := New(func(resolve Resolver, reject Rejector) {
			panic("not an error")
		})

		_, err := p.Await()
		require.ErrorContains(t, err, "not an error")
	})

	t.Run("Panic after resolving is ignored", func(t *testing.T) {
		p := New(func(resolve Resolver, reject Rejector) {
			resolve("winner")
			panic("too late")
		})

		value, err := p.Await()
		require.NoError(t, err)
		require.Equal(t, "winner", value)
	})

	t.Run("Only the first completion call wins", func(t *testing.T) {
		reason := errors.New("ignored")

		p := New(func(resolve Resolver, reject Rejector) {
			resolve("first")
			resolve("second")
			reject(reason)
		})

		value, err := p.Await()
		require.NoError(t, err)
		require.Equal(t, "first", value)
	})
}

func TestResolveAndRejectMethods(t *testing.T) {
	t.Run("Resolve settles a pending promise once", func(t *testing.T) {
		p := Pending()

		require.NoError(t, p.Resolve("value"))
		require.ErrorIs(t, p.Resolve("other"), ErrPromiseSettled)
		require.ErrorIs(t, p.Reject(errors.New("nope")), ErrPromiseSettled)

		value, err := p.Await()
		require.NoError(t, err)
		require.Equal(t, "value", value)
	})

	t.Run("Reject settles a pending promise once", func(t *testing.T) {
		p := Pending()
		reason := errors.New("failed")

		require.NoError(t, p.Reject(reason))
		require.ErrorIs(t, p.Resolve("late"), ErrPromiseSettled)

		_, err := p.Await()
		require.Same(t, reason, err)
	})

	t.Run("Outcome is immutable after settlement", func(t *testing.T) {
		p := Pending()

		require.NoError(t, p.Resolve(1))
		_ = p.Reject(errors.New("discarded"))
		_ = p.Resolve(2)

		value, err := p.Await()
		require.NoError(t, err)
		require.Equal(t, 1, value)
		require.Equal(t, StateFulfilled, p.State())
	})
}

func TestAtMostOnceSettlement(t *testing.T) {
	t.Run("Exactly one of many concurrent settlers wins", func(t *testing.T) {
		p := Pending()

		var (
			group     errgroup.Group
			successes atomic.Int64
		)

		for i := 0; i < 64; i++ {
			i := i

			group.Go(func() error {
				var err error
				if 0 == i%2 {
					err = p.Resolve(i)
				} else {
					err = p.Reject(errors.Errorf("settler %d", i))
				}

				if nil == err {
					successes.Inc()
				}

				return nil
			})
		}

		require.NoError(t, group.Wait())
		require.Equal(t, int64(1), successes.Load())
		require.NotEqual(t, StatePending, p.State())
	})
}

func TestDone(t *testing.T) {
	t.Run("Handlers fire in registration order", func(t *testing.T) {
		registry := NewCallsRegistry(3)

		p := Pending()
		p.Done(func(value interface{}) { registry.Register("first") }, nil)
		p.Done(func(value interface{}) { registry.Register("second") }, nil)
		p.Done(func(value interface{}) { registry.Register("third") }, nil)

		require.NoError(t, p.Resolve("go"))

		registry.AssertCompletedBefore(t, "first|second|third", time.Second)
	})

	t.Run("Handler on a settled promise is still deferred", func(t *testing.T) {
		registry := NewCallsRegistry(1)
		scheduler := &manualScheduler{}

		p := NewWithScheduler(scheduler, func(resolve Resolver, reject Rejector) {
			resolve("done")
		})
		p.Done(func(value interface{}) { registry.Register("handler") }, nil)

		registry.AssertCurrentCallsStackIs(t, "")
		scheduler.drainAll()
		registry.AssertCurrentCallsStackIs(t, "handler")
	})

	t.Run("Rejected branch receives the reason", func(t *testing.T) {
		registry := NewCallsRegistry(1)
		reason := errors.New("rejected")

		Reject(reason).Done(nil, func(got error) {
			require.Same(t, reason, got)
			registry.Register("rejected")
		})

		registry.AssertCompletedBefore(t, "rejected", time.Second)
	})
}

func TestAwait(t *testing.T) {
	t.Run("Await blocks until settlement", func(t *testing.T) {
		p := Pending()

		go func() {
			time.Sleep(10 * time.Millisecond)
			_ = p.Resolve("late value")
		}()

		value, err := p.Await()
		require.NoError(t, err)
		require.Equal(t, "late value", value)
	})

	t.Run("Await on a settled promise returns its outcome", func(t *testing.T) {
		value, err := Resolve(42).Await()
		require.NoError(t, err)
		require.Equal(t, 42, value)

		reason := errors.New("no")
		_, err = Reject(reason).Await()
		require.Same(t, reason, err)
	})
}
