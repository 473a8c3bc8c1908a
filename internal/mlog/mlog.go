// Package mlog is a thin façade over zap, in the shape
// spacemeshos-go-spacemesh/log/log.go wraps it: a single global,
// atomic-level logger set up once and named per subsystem. Only the
// lifecycle boundary (Init/Finalize, Receiver-loop exit, deadlock
// detection) logs — Send/Recv/collective calls never touch this package
// on their hot path.
package mlog

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global *zap.SugaredLogger
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func init() {
	global = build()
}

func build() *zap.SugaredLogger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core).Sugar().Named("mimpi")
}

// SetLevel adjusts the global verbosity at runtime, e.g. to silence the
// library in tests.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

// Named returns a child logger scoped to a subsystem (e.g. "runtime",
// "receiver").
func Named(name string) *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return global.Named(name)
}
