package promise

import (
	"sync"

	"go.uber.org/zap"
)

type zapReporter struct {
	log *zap.Logger
}

// NewZapReporter builds a Reporter that logs each unhandled rejection reason
// through log at error level.
func NewZapReporter(log *zap.Logger) Reporter {
	return &zapReporter{log: log}
}

func (r *zapReporter) ReportUnhandled(reason error) {
	r.log.Error("unhandled promise rejection", zap.Error(reason))
}

var (
	reporterMu      sync.RWMutex
	reporter        Reporter
	defaultReporter Reporter
	reporterOnce    sync.Once
)

// SetReporter replaces the process-wide unhandled-rejection reporter used by
// End. Passing nil restores the default zap-backed reporter.
func SetReporter(r Reporter) {
	reporterMu.Lock()
	defer reporterMu.Unlock()

	reporter = r
}

func currentReporter() Reporter {
	reporterMu.RLock()
	r := reporter
	reporterMu.RUnlock()

	if nil != r {
		return r
	}

	reporterOnce.Do(func() {
		defaultReporter = NewZapReporter(zap.Must(zap.NewProduction()))
	})

	return defaultReporter
}
