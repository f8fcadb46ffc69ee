// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/H0llyW00dzZ/x509-certgen/src/internal/helper/gc"
)

// Logger defines the interface for logging operations.
// It provides methods for formatted output.
//
// This interface supports both human-readable and structured output, so the
// generator can report written files without knowing how they are shown.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// New returns the logger for format: "json" selects [JSONLogger], anything
// else a [CLILogger]. Both write to w.
func New(format string, w io.Writer) Logger {
	if format == FormatJSON {
		return NewJSONLogger(w, LevelInfo)
	}
	l := NewCLILogger()
	l.SetOutput(w)
	return l
}

// Supported output formats for [New].
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Levels written by [JSONLogger].
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements Logger with one JSON object per line:
//
//	{"level":"info","message":"wrote certs/root-ca.crt"}
//
// Lines are built in a pooled buffer from [gc.Default] and written with a
// single Write call.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	level  string
}

type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NewJSONLogger creates a JSON logger tagging every line with level.
// A nil writer discards output.
func NewJSONLogger(writer io.Writer, level string) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	if level == "" {
		level = LevelInfo
	}
	return &JSONLogger{
		writer: writer,
		level:  level,
	}
}

// Printf formats and logs a structured message.
//
// Printf is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) Printf(format string, v ...any) { j.write(fmt.Sprintf(format, v...)) }

// Println logs a structured message. Operands are joined as with [fmt.Sprint].
//
// Println is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) Println(v ...any) { j.write(fmt.Sprint(v...)) }

// SetOutput sets the output destination for the JSON logger.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w == nil {
		j.writer = io.Discard
	} else {
		j.writer = w
	}
}

func (j *JSONLogger) write(msg string) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encoding a struct of two strings cannot fail.
	_ = enc.Encode(entry{Level: j.level, Message: msg})

	j.mu.Lock()
	j.writer.Write(buf.Bytes())
	j.mu.Unlock()
}
