package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"

	"contacttrace/internal/platform/config"
)

// New returns a structured logger writing to stdout and, when cfg.Path is
// set, to a daily-rotated file under that directory.
func New(cfg config.LogConfig) (*slog.Logger, error) {
	var out io.Writer = os.Stdout
	if cfg.Path != "" {
		fileWriter, err := rotatelogs.New(
			filepath.Join(cfg.Path, "contacttrace-%Y-%m-%d.log"),
			rotatelogs.WithRotationTime(cfg.Rotation),
			rotatelogs.WithMaxAge(cfg.MaxAge),
		)
		if err != nil {
			return nil, fmt.Errorf("configure file logger: %w", err)
		}
		out = io.MultiWriter(os.Stdout, fileWriter)
	}

	opts := &slog.HandlerOptions{Level: level(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return slog.New(handler), nil
}

func level(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
