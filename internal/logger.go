package internal

import (
	"abcpay/entity"
	"abcpay/services"
	"fmt"
	"go.uber.org/zap"
	"time"
)

// Logger implements services.LogHandler on zap. When a database is attached,
// info and above are also written to the persistent log trail.
type Logger struct {
	name     string
	log      *zap.SugaredLogger
	database services.Database
}

// NewLogger creates a named component logger. database may be nil.
func NewLogger(name string, debug bool, database services.Database) services.LogHandler {
	var zl *zap.Logger
	var err error
	if debug {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		zl = zap.NewNop()
	}
	return &Logger{
		name:     name,
		log:      zl.Sugar().Named(name),
		database: database,
	}
}

func (l *Logger) Debug(message string) {
	l.log.Debug(message)
}

func (l *Logger) Info(message string) {
	l.log.Info(message)
	l.store("info", message)
}

func (l *Logger) Warn(message string) {
	l.log.Warn(message)
	l.store("warn", message)
}

func (l *Logger) Error(message string, err error) {
	l.log.Errorw(message, "error", err)
	l.store("error", fmt.Sprintf("%s: %v", message, err))
}

func (l *Logger) store(level, text string) {
	if l.database == nil {
		return
	}
	record := &entity.LogMessage{
		Time:    time.Now(),
		Level:   level,
		Feature: l.name,
		Text:    text,
	}
	_ = l.database.WriteLogMessage(record)
}
