package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/TheGojiOG/pwhashtool/internal/config"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Redacted replaces the value of any attribute that carries a password.
const Redacted = "[REDACTED]"

var (
	logger    *slog.Logger
	initOnce  sync.Once
	logCloser io.Closer
	runID     string
)

// Init configures the global logger singleton. Every record carries the
// run_id of the current process. If the log file cannot be opened the logger
// writes to stderr and the error is returned.
func Init(cfg config.LoggingConfig) (*slog.Logger, error) {
	var initErr error

	initOnce.Do(func() {
		level := parseLevel(cfg.Level)
		output, closer, err := buildOutput(cfg)
		if err != nil {
			initErr = fmt.Errorf("failed to open log file: %w", err)
			output = os.Stderr
		}
		if closer != nil {
			logCloser = closer
		}

		options := &slog.HandlerOptions{Level: level, ReplaceAttr: redact}
		var handler slog.Handler
		if strings.EqualFold(cfg.Format, "text") {
			handler = slog.NewTextHandler(output, options)
		} else {
			handler = slog.NewJSONHandler(output, options)
		}

		runID = uuid.NewString()
		logger = slog.New(handler).With("run_id", runID)
		slog.SetDefault(logger)
		log.SetFlags(0)
		log.SetOutput(slogWriter{logger: logger})
	})

	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo, ReplaceAttr: redact}))
	}

	return logger, initErr
}

// L returns the configured logger, or a no-op logger if not initialized.
func L() *slog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// RunID returns the identifier attached to every record of this process.
func RunID() string {
	return runID
}

// Close flushes and closes any logger resources.
func Close() error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSpace(string(p))
	if msg == "" {
		return len(p), nil
	}
	w.logger.Info(msg)
	return len(p), nil
}

// redact blanks attributes whose key names a password. Digests are treated
// the same way since they are password-equivalent here.
func redact(_ []string, a slog.Attr) slog.Attr {
	if isSecretKey(a.Key) {
		return slog.String(a.Key, Redacted)
	}
	return a
}

func isSecretKey(key string) bool {
	k := strings.ToLower(key)
	switch k {
	case "pw", "pw1", "pw2", "digest", "hash", "secret":
		return true
	}
	return strings.Contains(k, "password") || strings.Contains(k, "passwd")
}

func buildOutput(cfg config.LoggingConfig) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(cfg.File) == "" {
		return os.Stderr, nil, nil
	}

	// lumberjack opens lazily on first write; surface problems now instead.
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, err
	}
	f.Close()

	fileLogger := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   true,
	}

	return fileLogger, fileLogger, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}
