package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/phsym/console-slog"
	slogmulti "github.com/samber/slog-multi"
	"github.com/tbxark/intakeagent/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

func Preinit() {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelInfo,
	})))
}

// Init logs to stderr and, when cfg.Log.File is set, to a rotated JSON file.
// The returned function closes the file.
func Init(cfg *config.Config) (func() error, error) {
	level := ParseLevel(cfg.Log.Level)
	handlers := []slog.Handler{
		console.NewHandler(os.Stderr, &console.HandlerOptions{
			AddSource: true,
			Level:     level,
		}),
	}

	closer := func() error { return nil }
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, err
		}
		file := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{
			AddSource: true,
			Level:     level,
		}))
		closer = file.Close
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
	return closer, nil
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
