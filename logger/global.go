package logger

import (
	"sync"
	"sync/atomic"
)

//nolint:gochecknoglobals // Global variables are required for the global logger singleton pattern
var (
	global   atomic.Value // stores holder
	initOnce sync.Once    // ensures lazy initialization happens once
)

// holder keeps every stored value of the same concrete type, as atomic.Value requires.
type holder struct {
	l Logger
}

// ReplaceGlobal installs l as the global logger and returns a function that
// restores the previous one.
func ReplaceGlobal(l Logger) func() {
	prev := getGlobal()
	global.Store(holder{l: l})
	return func() { ReplaceGlobal(prev) }
}

// Errorx logs an error at error level using the global logger.
func Errorx(err error) {
	getGlobal().Errorx(err)
}

// Named adds a sub-scope to the global logger's name.
func Named(name string) Logger {
	return getGlobal().Named(name)
}

// Sync flushes any buffered log entries from the global logger.
func Sync() error {
	return getGlobal().Sync()
}

func initDefault() {
	initOnce.Do(func() {
		if global.Load() != nil {
			return
		}
		defaultLogger, err := New(Config{
			Level:    levelDebug,
			Encoding: EncodingConsole,
		})
		if err != nil {
			panic("[logger]: failed to initialize default logger: " + err.Error())
		}
		global.CompareAndSwap(nil, holder{l: defaultLogger})
	})
}

// getGlobal returns the current global logger, lazily initializing a default one.
func getGlobal() Logger {
	if h, ok := global.Load().(holder); ok {
		return h.l
	}
	initDefault()
	h, ok := global.Load().(holder)
	if !ok {
		panic("[logger]: global contains invalid type after initialization")
	}
	return h.l
}
