package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	global *zap.SugaredLogger
	mx     sync.RWMutex
)

func init() {
	l, _ := zap.NewProduction()
	global = l.Sugar()
}

// Init replaces the global logger with one at the given level. Level parse
// failures fall back to info.
func Init(level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return
	}

	mx.Lock()
	defer mx.Unlock()
	global = l.Sugar()
}

// WithRequestID returns a ctx whose log lines carry the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func fromCtx(ctx context.Context) *zap.SugaredLogger {
	mx.RLock()
	l := global
	mx.RUnlock()

	if ctx != nil {
		if id, ok := ctx.Value(ctxKey{}).(string); ok {
			return l.With("request_id", id)
		}
	}
	return l
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Errorf(format, args...)
}

func Fatal(ctx context.Context, err error) {
	if err == nil {
		return
	}
	fromCtx(ctx).Fatal(err)
}
