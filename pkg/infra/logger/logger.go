package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logsDir          = "logs"
	fileBufferSize   = 32 * 1024
	consoleQueueSize = 1000
)

func newBase() *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})

	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// CloseFunc flushes the asynchronous writers. Lines logged after it returns
// are discarded.
type CloseFunc func()

// NewLogger writes JSON lines to logs/<component>.log and mirrors them to
// stdout. Both writers are asynchronous and drop lines when saturated; the
// returned CloseFunc must run before the process exits.
func NewLogger(component string) (*logrus.Logger, CloseFunc, error) {
	logger := newBase()

	logFile, err := logPath(component)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(logsDir, 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create logs directory: %w", err)
	}
	fileWriter, err := NewAsyncFileWriter(logFile, fileBufferSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize async log writer: %w", err)
	}
	consoleHook := NewAsyncConsoleHook(os.Stdout, consoleQueueSize)

	logger.SetOutput(fileWriter)
	logger.AddHook(consoleHook)

	return logger, func() {
		_ = consoleHook.Close()
		_ = fileWriter.Close()
		logger.SetOutput(io.Discard)
	}, nil
}

// NewConsoleLogger logs synchronously to w only, for one-shot commands.
func NewConsoleLogger(w io.Writer) *logrus.Logger {
	logger := newBase()
	logger.SetOutput(io.Discard)
	logger.AddHook(NewConsoleHook(w))
	return logger
}

func logPath(component string) (string, error) {
	if component == "" {
		component = "trustimage"
	}
	logFile := filepath.Clean(filepath.Join(logsDir, component+".log"))
	if !strings.HasPrefix(logFile, logsDir+string(filepath.Separator)) || strings.ContainsRune(component, filepath.Separator) {
		return "", fmt.Errorf("invalid log file path %q: must be in %s directory", logFile, logsDir)
	}
	return logFile, nil
}
