package utils

import (
	"io"
	"log"
)

// Logger writes leveled log lines
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// NewLogger creates a logger writing every level to w
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		infoLogger:  log.New(w, "[GOL-INFO] ", log.Ldate|log.Ltime),
		warnLogger:  log.New(w, "[GOL-WARN] ", log.Ldate|log.Ltime),
		errorLogger: log.New(w, "[GOL-ERROR] ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// Infof logs informational messages
func (l *Logger) Infof(format string, args ...any) {
	l.infoLogger.Printf(format, args...)
}

// Warnf logs warning messages
func (l *Logger) Warnf(format string, args ...any) {
	l.warnLogger.Printf(format, args...)
}

// Errorf logs error messages
func (l *Logger) Errorf(format string, args ...any) {
	l.errorLogger.Printf(format, args...)
}
