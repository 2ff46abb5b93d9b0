package notify

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Notifier surfaces transient user-facing messages, the console analog
// of a toast popup. Every remote failure ends here; nothing propagates
// past a notification and the console stays interactive.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Console writes notifications to a writer and mirrors them to the log.
type Console struct {
	out    io.Writer
	logger *zap.Logger
}

// NewConsole builds a console notifier. A nil logger is replaced with a
// no-op one.
func NewConsole(out io.Writer, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{out: out, logger: logger}
}

func (c *Console) Success(msg string) {
	fmt.Fprintf(c.out, "OK: %s\n", msg)
	c.logger.Info("notification", zap.String("kind", "success"), zap.String("message", msg))
}

func (c *Console) Error(msg string) {
	fmt.Fprintf(c.out, "ERROR: %s\n", msg)
	c.logger.Warn("notification", zap.String("kind", "error"), zap.String("message", msg))
}
