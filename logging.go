package styleable

import (
	"io"

	"github.com/charmbracelet/log"
)

// Logger records cascade diagnostics as a message plus key/value pairs.
// *log.Logger from github.com/charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(any, ...any) {}
func (noopLogger) Warn(any, ...any)  {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return noopLogger{}
}

// NewLogger builds a timestamped logger writing to w at level.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "styleable",
	})
}

func loggerOrNop(l Logger) Logger {
	if l == nil {
		return noopLogger{}
	}
	return l
}
