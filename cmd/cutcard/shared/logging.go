package shared

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Log output formats accepted by SetupLogger.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// SetupLogger configures a stderr logger. Text output is meant for terminals,
// JSON output for log collectors.
func SetupLogger(debug bool, format string) *log.Logger {
	return NewLogger(os.Stderr, debug, format)
}

// NewLogger is SetupLogger with an explicit destination.
func NewLogger(w io.Writer, debug bool, format string) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	formatter := log.TextFormatter
	if format == FormatJSON {
		formatter = log.JSONFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Prefix:          "cutcard",
	})
}
