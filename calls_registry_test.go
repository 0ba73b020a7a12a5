package promise

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// callsRegistry records the order in which handlers fired, so tests can
// assert dispatch ordering against a deadline without sleeping.
type callsRegistry struct {
	mutex sync.RWMutex

	calls         []string
	expectedCalls uint
}

func NewCallsRegistry(expectedCalls uint) *callsRegistry {
	return &callsRegistry{
		expectedCalls: expectedCalls,
	}
}

func (r *callsRegistry) Register(place string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if 0 == r.expectedCalls {
		panic("trying to register unexpected call: " + place)
	}

	r.calls = append(r.calls, place)
	r.expectedCalls--
}

func (r *callsRegistry) Summarize() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return strings.Join(r.calls, "|")
}

func (r *callsRegistry) AssertCompletedBefore(t *testing.T, expectedCalls string, timeLimit time.Duration) {
	t.Helper()

	timeLimiter := time.After(timeLimit)

	for {
		select {
		case <-timeLimiter:
			require.FailNowf(
				t,
				"Calls registry assertion timeout",
				"There are still %d expected call(s) left. Calls registered: %v.",
				r.expectedCalls,
				r.calls,
			)
			return

		default:
			r.mutex.RLock()
			waitsForCalls := 0 != r.expectedCalls
			r.mutex.RUnlock()

			if waitsForCalls {
				continue
			}

			require.Equal(t, expectedCalls, r.Summarize())
			return
		}
	}
}

func (r *callsRegistry) AssertCurrentCallsStackIs(t *testing.T, expectedCalls string) {
	t.Helper()

	require.Equal(t, expectedCalls, r.Summarize())
}
