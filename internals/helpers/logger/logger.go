// file: internals/helpers/logger/logger.go
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// New membangun zap logger sesuai mode ("prod"/"production" → JSON, selain itu development).
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

// Init membuat logger global. Kalau gagal, tetap pakai Nop supaya app tidak panik.
func Init(mode string) *zap.Logger {
	l, err := New(mode)
	if err != nil {
		l = zap.NewNop()
	}
	mu.Lock()
	global = l
	mu.Unlock()
	return l
}

// L mengembalikan logger global (default Nop sebelum Init).
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// OrNop dipakai konstruktor service: nil → logger global.
func OrNop(l *zap.Logger) *zap.Logger {
	if l != nil {
		return l
	}
	return L()
}

func Sync() {
	_ = L().Sync()
}
