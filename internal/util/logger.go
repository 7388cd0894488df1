package util

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger   = zerolog.Nop()
	loggerMu sync.RWMutex
)

// InitLogger configures the global logger. In debug mode log lines go to
// stderr via the console writer; otherwise they are appended to logFile.
func InitLogger(levelStr string, logFile string, debugToConsole bool) error {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var l zerolog.Logger
	if debugToConsole {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		if logFile == "" {
			l = zerolog.Nop()
		} else {
			if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
				return err
			}
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return err
			}
			l = zerolog.New(f)
		}
	}

	loggerMu.Lock()
	logger = l.Level(level).With().Timestamp().Logger()
	loggerMu.Unlock()
	return nil
}

// Logger returns the configured global logger.
func Logger() zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

func LogDebug(msg string) { l := Logger(); l.Debug().Msg(msg) }
func LogInfo(msg string)  { l := Logger(); l.Info().Msg(msg) }
func LogWarn(msg string)  { l := Logger(); l.Warn().Msg(msg) }
func LogError(msg string) { l := Logger(); l.Error().Msg(msg) }
