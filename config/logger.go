package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger: JSON lines on stdout, level taken
// from Config.LogLevel with info as the fallback for unknown names.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()

	// Set formatter to JSON
	log.SetFormatter(&logrus.JSONFormatter{})

	// Set output to stdout (default)
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
