package logging

import "go.uber.org/zap"

// New returns a development logger when debug is on, a no-op logger
// otherwise. The app is a CLI: logging exists to make best-effort
// storage failures inspectable, never to produce output by default.
func New(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
