// Package errors provides small error-handling utilities shared by the
// reflector server and binaries.
package errors

import (
	"io"

	"github.com/rs/zerolog"
)

// DeferClose closes an io.Closer and logs the close error instead of
// suppressing it. Use in defer statements on connections and listeners
// whose close failure is worth a log line but not a failure path.
func DeferClose(logger zerolog.Logger, closer io.Closer, msg string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn().Err(err).Msg(msg)
	}
}
