package logging

// Level represents log levels
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Fields represents structured logging fields
type Fields map[string]any

// Common field keys used across the library
const (
	FieldSource     = "source"
	FieldMethod     = "method"
	FieldMetric     = "metric"
	FieldCandidates = "candidates"
	FieldModes      = "modes"
	FieldBins       = "bins"
	FieldStepSize   = "step_size"
	FieldChunks     = "chunks"
)

// Logger defines the interface that the library expects for logging
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)

	// WithFields returns a logger with preset fields
	WithFields(fields Fields) Logger
}

var defaultLogger Logger = &NoOpLogger{}

// SetDefault installs the logger returned by Default. Passing nil
// restores the no-op logger.
func SetDefault(l Logger) {
	if l == nil {
		defaultLogger = &NoOpLogger{}
		return
	}
	defaultLogger = l
}

// Default returns the process-wide logger used by library components
// that were not handed an explicit Logger.
func Default() Logger {
	return defaultLogger
}

// NoOpLogger is a logger that does nothing - useful for tests or when
// logging is disabled
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, fields ...Fields)            {}
func (n *NoOpLogger) Info(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Warn(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Error(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) WithFields(fields Fields) Logger               { return n }
