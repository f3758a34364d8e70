package wswsvc

import "log"

// EventLogger is where ServiceHost reports its own lifecycle events
// (starting/stopping/errors) — distinct from the wrapped process's
// Logger. Grounded on
// warpdl-warpdl/internal/service/eventlog_windows.go's EventLogger.
type EventLogger interface {
	Info(msg string) error
	Warning(msg string) error
	Error(msg string) error
	Close() error
}

// ConsoleEventLogger implements EventLogger with plain stdlib logging,
// used when the Windows Event Log cannot be opened for the service, and
// by NewHost when it is given no logger.
type ConsoleEventLogger struct {
	logger *log.Logger
}

// NewConsoleEventLogger wraps logger, or the default stdlib logger if nil.
func NewConsoleEventLogger(logger *log.Logger) *ConsoleEventLogger {
	if logger == nil {
		logger = log.Default()
	}
	return &ConsoleEventLogger{logger: logger}
}

func (c *ConsoleEventLogger) Info(msg string) error {
	c.logger.Printf("[INFO] %s", msg)
	return nil
}

func (c *ConsoleEventLogger) Warning(msg string) error {
	c.logger.Printf("[WARNING] %s", msg)
	return nil
}

func (c *ConsoleEventLogger) Error(msg string) error {
	c.logger.Printf("[ERROR] %s", msg)
	return nil
}

func (c *ConsoleEventLogger) Close() error { return nil }
