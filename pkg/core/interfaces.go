package core

// ShadowEpsilon is the lower bound used for scene queries so a scattered ray
// does not re-hit the surface it leaves from.
const ShadowEpsilon = 0.001

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards all log output
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(string, ...interface{}) {}
