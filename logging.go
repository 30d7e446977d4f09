package rosomaxa

import "github.com/rs/zerolog"

// nopLogger backs every Population whose config didn't set a Logger, so
// call sites never need a nil check.
func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func resolveLogger(configured *zerolog.Logger) *zerolog.Logger {
	if configured == nil {
		return nopLogger()
	}
	return configured
}
