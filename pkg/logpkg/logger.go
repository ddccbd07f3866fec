// Package logpkg provides the application logger.
package logpkg

import (
	"context"
	"io"
	"time"

	"github.com/go-petr/pet-atm/pkg/configpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// Get returns the application logger writing to output.
//
// Outside development the logger writes JSON at the configured level. In
// development it writes human friendly lines with caller info at trace level.
func Get(config configpkg.Config, output io.Writer) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil || config.LogLevel == "" {
		logLevel = zerolog.WarnLevel
	}

	log := zerolog.New(output).
		Level(logLevel).
		With().
		Timestamp().
		Logger()

	if config.Environement == "development" {
		log = log.
			Output(zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}).
			Level(zerolog.TraceLevel).
			With().
			Caller().
			Logger()
	}

	return log
}

// WithSession returns a context carrying a logger tagged with a fresh session id
// and the given account number.
func WithSession(ctx context.Context, accountNumber string) context.Context {
	logger := zerolog.Ctx(ctx).With().
		Str("session_id", uuid.NewString()).
		Str("account_number", accountNumber).
		Logger()

	return logger.WithContext(ctx)
}
