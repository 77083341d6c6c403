package logging

import (
	"fmt"
	"log"
	"maps"
	"os"
	"sort"
	"strings"
)

// StdLogger writes leveled, structured lines through Go's standard log
// package. Debug/Info go to stdout, Warn/Error to stderr.
type StdLogger struct {
	out    *log.Logger
	errOut *log.Logger
	level  Level
	fields Fields
}

// NewStdLogger creates a StdLogger filtering below the given level.
func NewStdLogger(level Level) *StdLogger {
	return &StdLogger{
		out:    log.New(os.Stdout, "", log.LstdFlags),
		errOut: log.New(os.Stderr, "", log.LstdFlags),
		level:  level,
		fields: make(Fields),
	}
}

// SetLevel changes the minimum level that will be written.
func (s *StdLogger) SetLevel(level Level) {
	s.level = level
}

func (s *StdLogger) format(level Level, err error, msg string, fields ...Fields) string {
	merged := make(Fields)
	maps.Copy(merged, s.fields)
	for _, f := range fields {
		maps.Copy(merged, f)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, msg)
	if err != nil {
		fmt.Fprintf(&b, ": %v", err)
	}
	if len(merged) > 0 {
		// Deterministic field order keeps log lines diffable.
		keys := make([]string, 0, len(merged))
		for k := range merged {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, merged[k])
		}
	}
	return b.String()
}

func (s *StdLogger) write(level Level, err error, msg string, fields ...Fields) {
	if level < s.level {
		return
	}
	line := s.format(level, err, msg, fields...)
	if level >= WarnLevel {
		s.errOut.Println(line)
	} else {
		s.out.Println(line)
	}
}

func (s *StdLogger) Debug(msg string, fields ...Fields) {
	s.write(DebugLevel, nil, msg, fields...)
}

func (s *StdLogger) Info(msg string, fields ...Fields) {
	s.write(InfoLevel, nil, msg, fields...)
}

func (s *StdLogger) Warn(msg string, fields ...Fields) {
	s.write(WarnLevel, nil, msg, fields...)
}

func (s *StdLogger) Error(err error, msg string, fields ...Fields) {
	s.write(ErrorLevel, err, msg, fields...)
}

func (s *StdLogger) WithFields(fields Fields) Logger {
	merged := make(Fields)
	maps.Copy(merged, s.fields)
	maps.Copy(merged, fields)
	return &StdLogger{
		out:    s.out,
		errOut: s.errOut,
		level:  s.level,
		fields: merged,
	}
}
