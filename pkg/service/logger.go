package service

import (
	"log/slog"
	"os"

	"github.com/romashorodok/room-token-server/pkg/variables"
	"go.uber.org/fx"
)

var loggerWriter = os.Stdout

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func logger(config *variables.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(loggerWriter, &slog.HandlerOptions{
		AddSource: false,
		Level:     parseLevel(config.LogLevel),
	}))
}

var LoggerModule = fx.Module("logger", fx.Provide(
	logger,
))
