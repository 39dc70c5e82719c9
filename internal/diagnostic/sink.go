package diagnostic

import (
	"github.com/charmbracelet/log"

	"inflater-generator/internal/analyze"
)

// LogSink writes diagnostics through a charmbracelet/log logger.
// Notices are logged at info level with a notice marker, since the
// logger has no level between info and warn.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Report implements Sink.
func (s *LogSink) Report(severity DiagnosticSeverity, message string, sym *analyze.Symbol) {
	var keyvals []any
	if sym != nil {
		keyvals = append(keyvals, "symbol", sym.QualifiedName())
		if sym.Pos.IsValid() {
			keyvals = append(keyvals, "pos", sym.Pos.String())
		}
	}

	switch severity {
	case DiagnosticError:
		s.logger.Error(message, keyvals...)
	case DiagnosticWarning:
		s.logger.Warn(message, keyvals...)
	case DiagnosticNotice:
		s.logger.Info(message, append([]any{"notice", true}, keyvals...)...)
	default:
		s.logger.Debug(message, keyvals...)
	}
}

// Tee reports every diagnostic to all of its sinks, in order.
type Tee []Sink

// Report implements Sink.
func (t Tee) Report(severity DiagnosticSeverity, message string, sym *analyze.Symbol) {
	for _, s := range t {
		s.Report(severity, message, sym)
	}
}
