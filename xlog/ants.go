package xlog

import (
	"fmt"
)

// AntsXLogger adapts the XLogger to the ants.Logger interface.
type AntsXLogger struct {
	logger XLogger
}

func (l *AntsXLogger) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func NewAntsXLogger(logger XLogger) *AntsXLogger {
	if logger == nil {
		return nil
	}
	return &AntsXLogger{
		logger: logger.Named("ants"),
	}
}
