package logger

import (
	"context"
	"io"
	"os"
	"time"

	"solireserve/config"
	"solireserve/shared/constant"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger writes JSON lines tagged with the service and environment in production
// and human readable console output everywhere else.
func InitLogger(cfg *config.Config) {
	initLogger(cfg, os.Stdout)
}

func initLogger(cfg *config.Config, out io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var writer io.Writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	if cfg.Server.Env == constant.ServerEnvProduction {
		writer = out
	}

	log.Logger = zerolog.New(writer).
		With().
		Timestamp().
		Str("service", cfg.App.Name).
		Str("env", cfg.Server.Env).
		Logger()

	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. Without a valid level production logs at info
// and other environments at trace.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == "" {
		level = zerolog.TraceLevel
		if cfg.Server.Env == constant.ServerEnvProduction {
			level = zerolog.InfoLevel
		}

		log.Info().Str("loglevel", level.String()).Msg("Environment has no valid log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}

// Ctx returns the global logger with the request id and acting user found in ctx.
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := log.Logger.With()

	if requestID := chimiddleware.GetReqID(ctx); requestID != "" {
		logCtx = logCtx.Str("request_id", requestID)
	}

	if user, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && user != "" {
		logCtx = logCtx.Str("user_id", user)
	}

	logger := logCtx.Logger()

	return &logger
}
