// Package logs implements the rotating, non-blocking log sink used by the
// hidden run verb: the Supervisor's lifecycle events and the wrapped
// process's stdout/stderr funnel through a single Logger. The SCM
// handshake lines go to wswsvc.EventLogger instead, and the operator-mode
// verbs print to stdout/stderr directly without a Logger.
package logs

import (
	"fmt"
	"time"
)

// Level identifies the severity of a LogRecord.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// String renders the level the way it appears in a log line.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// WrappedLinePrefix tags every record that originated from the wrapped
// process's stdout/stderr rather than from the wrapper itself, so the
// `logs` verb can strip it for a clean view.
const WrappedLinePrefix = "|SVC-LOG| "

// Record is a single timestamped log line.
type Record struct {
	Time    time.Time
	Level   Level
	Message string
	Wrapped bool
}

// Format renders the record using the on-disk format:
// "YYYY-MM-DD HH:MM:SS  LEVEL  MESSAGE", in local time.
func (r Record) Format() string {
	msg := r.Message
	if r.Wrapped {
		msg = WrappedLinePrefix + msg
	}
	return fmt.Sprintf("%s  %-5s  %s", r.Time.Local().Format("2006-01-02 15:04:05"), r.Level, msg)
}
