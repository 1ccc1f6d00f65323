// Package logger configures the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Rrens/workout-planner/internal/config"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup applies level, format and optional rotated file output to the
// global logger. The returned closer releases the log file, if any.
func Setup(cfg config.LoggingConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var console io.Writer = os.Stderr
	if cfg.Format == "console" {
		console = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	if cfg.File == "" {
		log.Logger = zerolog.New(console).With().Timestamp().Logger()
		return nopCloser{}, nil
	}

	rotated, err := newRotatedFile(cfg)
	if err != nil {
		return nil, err
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, rotated)).With().Timestamp().Logger()
	return rotated, nil
}

func newRotatedFile(cfg config.LoggingConfig) (*rotatelogs.RotateLogs, error) {
	options := []rotatelogs.Option{rotatelogs.WithLinkName(cfg.File)}
	if cfg.MaxAge > 0 {
		options = append(options, rotatelogs.WithMaxAge(cfg.MaxAge))
	}
	if cfg.RotationTime > 0 {
		options = append(options, rotatelogs.WithRotationTime(cfg.RotationTime))
	}

	rotated, err := rotatelogs.New(cfg.File+".%Y%m%d", options...)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return rotated, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
