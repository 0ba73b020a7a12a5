package promise

import "sync"

var (
	defaultSchedulerOnce sync.Once
	defaultScheduler     Scheduler
)

// DefaultScheduler returns the process-wide task loop used by promises that
// were not given an explicit Scheduler. It is initialized lazily, once.
func DefaultScheduler() Scheduler {
	defaultSchedulerOnce.Do(func() {
		defaultScheduler = NewScheduler()
	})

	return defaultScheduler
}

// NewScheduler creates a FIFO task loop. Tasks run one at a time on a single
// drainer goroutine, in the order they were scheduled; Schedule never runs a
// task synchronously.
func NewScheduler() Scheduler {
	return &taskLoop{}
}

type taskLoop struct {
	mu      sync.Mutex
	queue   []func()
	running bool
}

func (l *taskLoop) Schedule(task func()) {
	l.mu.Lock()

	l.queue = append(l.queue, task)
	if l.running {
		l.mu.Unlock()

		return
	}
	l.running = true
	l.mu.Unlock()

	go l.drain()
}

func (l *taskLoop) drain() {
	for {
		l.mu.Lock()
		if 0 == len(l.queue) {
			l.running = false
			l.mu.Unlock()

			return
		}

		// Swap the whole batch out so tasks scheduled while draining land in
		// a fresh queue and keep their FIFO position.
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, task := range batch {
			task()
		}
	}
}
