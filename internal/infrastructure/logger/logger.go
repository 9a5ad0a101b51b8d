package logger

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
	mu           sync.RWMutex
)

// GetLogger returns the global logger instance
func GetLogger() zerolog.Logger {
	once.Do(func() {
		// Default to console output with info level
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		mu.Lock()
		globalLogger = zerolog.New(consoleWriter).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// New constructs a zerolog logger based on level and format configuration.
func New(level, format, serviceName string) (zerolog.Logger, error) {
	return NewWithWriter(os.Stdout, level, format, serviceName)
}

// NewWithWriter is New with an explicit output, used by tests.
func NewWithWriter(out io.Writer, level, format, serviceName string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var writer zerolog.Logger
	switch strings.ToLower(format) {
	case "json", "":
		writer = zerolog.New(out).With().Timestamp().Logger()
	case "console":
		consoleWriter := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
		writer = zerolog.New(consoleWriter).With().Timestamp().Logger()
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}

	if serviceName != "" {
		writer = writer.With().Str("service", serviceName).Logger()
	}

	zerolog.SetGlobalLevel(lvl)

	once.Do(func() {})
	mu.Lock()
	globalLogger = writer.Level(lvl)
	log.Logger = globalLogger
	mu.Unlock()

	return globalLogger, nil
}
