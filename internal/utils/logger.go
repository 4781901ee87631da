package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Logger writes leveled lines to stdout and, optionally, a per-run log file.
type Logger struct {
	file   *os.File
	logger *log.Logger
	debug  bool
}

// NewLogger creates a logger for the named component.
// When logsDir is non-empty, output is also written to
// logsDir/<name>/<name>_<timestamp>.log.
func NewLogger(name, logsDir string, debug bool) (*Logger, error) {
	if logsDir == "" {
		return NewWriterLogger(os.Stdout, debug), nil
	}

	// Sanitize name for file system
	sanitized := strings.ReplaceAll(strings.ToLower(name), " ", "_")

	dir := filepath.Join(logsDir, sanitized)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(dir, fmt.Sprintf("%s_%s.log", sanitized, timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l := NewWriterLogger(io.MultiWriter(os.Stdout, file), debug)
	l.file = file
	return l, nil
}

// NewWriterLogger logs to w only.
func NewWriterLogger(w io.Writer, debug bool) *Logger {
	return &Logger{
		logger: log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds),
		debug:  debug,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriterLogger(io.Discard, false)
}

func (l *Logger) LogInfo(format string, v ...interface{}) {
	l.log("INFO", format, v...)
}

func (l *Logger) LogError(format string, v ...interface{}) {
	l.log("ERROR", format, v...)
}

func (l *Logger) LogDebug(format string, v ...interface{}) {
	if !l.debug {
		return
	}
	l.log("DEBUG", format, v...)
}

func (l *Logger) log(level string, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	l.logger.Printf("[%s] %s", level, message)
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
