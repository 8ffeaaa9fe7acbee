// Package logging builds the zerolog logger handed to every component.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. Debug enables debug level
// and timestamps; otherwise only info and above are shown, without noise.
func New(w io.Writer, debug bool) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}

	if !debug {
		cw.PartsExclude = []string{zerolog.TimestampFieldName}
		return zerolog.New(cw).Level(zerolog.InfoLevel)
	}

	return zerolog.New(cw).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
