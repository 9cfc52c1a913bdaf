package jobs

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/models"
)

// JobLogger writes each pipeline event twice: to the process logger with the
// job ID as correlation ID, and to the job's log ring in the store so
// clients can poll or stream it.
type JobLogger struct {
	jobID  string
	store  interfaces.JobStore
	logger arbor.ILogger
}

// NewJobLogger derives a per-job logger from the base logger
func NewJobLogger(jobID string, store interfaces.JobStore, base arbor.ILogger) *JobLogger {
	return &JobLogger{
		jobID:  jobID,
		store:  store,
		logger: base.WithCorrelationId(jobID),
	}
}

// Logger exposes the correlated arbor logger for passing into services
func (l *JobLogger) Logger() arbor.ILogger {
	return l.logger
}

// Debugf records a debug-level pipeline event
func (l *JobLogger) Debugf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Debug().Msg(msg)
	l.append("debug", msg)
}

// Infof records an info-level pipeline event
func (l *JobLogger) Infof(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Info().Msg(msg)
	l.append("info", msg)
}

// Warnf records a warning-level pipeline event
func (l *JobLogger) Warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Warn().Msg(msg)
	l.append("warn", msg)
}

// Errorf records an error-level pipeline event
func (l *JobLogger) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Error().Msg(msg)
	l.append("error", msg)
}

func (l *JobLogger) append(level, msg string) {
	l.store.AppendLog(l.jobID, models.LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     level,
		Message:   msg,
	})
}
