package diag

import (
	"github.com/sirupsen/logrus"
)

// LogrusSink writes records as error-level logrus entries
type LogrusSink struct {
	logger logrus.FieldLogger
}

// NewLogrusSink creates a sink over the given logger
// A nil logger falls back to the logrus standard logger
func NewLogrusSink(logger logrus.FieldLogger) *LogrusSink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusSink{logger: logger}
}

// Report implements Sink.
func (s *LogrusSink) Report(r Record) {
	fields := logrus.Fields{
		"location": r.Location,
	}
	if r.Code != 0 {
		fields["code"] = int(r.Code)
		fields["errno"] = r.Code.Error()
	}

	msg := r.Message
	if msg == "" {
		msg = "mutex diagnostic"
	}
	s.logger.WithFields(fields).Error(msg)
}

var standard Sink = NewLogrusSink(logrus.StandardLogger())

// Standard returns the process-wide sink backed by the logrus standard logger
// It receives records that have nowhere else to go, such as failures on a
// nil handle
func Standard() Sink {
	return standard
}
