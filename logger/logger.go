package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

type CustomLogger struct {
	*log.Logger
}

var logLevelMapping = map[string]log.Level{
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
}

// ProviderLogger is the process wide logger, set by SetupLogging
var ProviderLogger = NewDiscardLogger()

// SetupLogging creates <folder>/logs/provider.log and points ProviderLogger at it
func SetupLogging(folder, level string) (*CustomLogger, error) {
	logsDir := filepath.Join(folder, "logs")
	if err := os.MkdirAll(logsDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("could not create logs folder `%s` - %w", logsDir, err)
	}

	customLogger, err := CreateCustomLogger(filepath.Join(logsDir, "provider.log"), level)
	if err != nil {
		return nil, err
	}
	ProviderLogger = customLogger

	return customLogger, nil
}

func (l CustomLogger) LogDebug(eventName string, message string) {
	l.WithFields(log.Fields{
		"event": eventName,
	}).Debug(message)
}

func (l CustomLogger) LogInfo(eventName string, message string) {
	l.WithFields(log.Fields{
		"event": eventName,
	}).Info(message)
}

func (l CustomLogger) LogError(eventName string, message string) {
	l.WithFields(log.Fields{
		"event": eventName,
	}).Error(message)
}

func (l CustomLogger) LogWarn(eventName string, message string) {
	l.WithFields(log.Fields{
		"event": eventName,
	}).Warn(message)
}

// CreateCustomLogger returns a JSON logger appending to logFilePath
func CreateCustomLogger(logFilePath, level string) (*CustomLogger, error) {
	logger := log.New()

	logger.SetFormatter(&log.JSONFormatter{})
	logger.SetLevel(parseLevel(level))

	logFile, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not set log output - %w", err)
	}
	logger.SetOutput(logFile)

	return &CustomLogger{Logger: logger}, nil
}

// NewDiscardLogger is used before logging is set up and in tests
func NewDiscardLogger() *CustomLogger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return &CustomLogger{Logger: logger}
}

func parseLevel(level string) log.Level {
	if lvl, ok := logLevelMapping[level]; ok {
		return lvl
	}
	return log.InfoLevel
}
