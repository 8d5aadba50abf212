package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	mu     sync.Mutex
)

// InitLogger configures the process-wide logger. It may be called again to change the level.
func InitLogger(level logrus.Level) *logrus.Logger {
	l := GetLogger()
	l.SetLevel(level)
	return l
}

// SetFormat switches between "json" and "text" output.
func SetFormat(format string) {
	l := GetLogger()
	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// GetLogger returns the shared logger, creating it with Info level on first use.
func GetLogger() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
