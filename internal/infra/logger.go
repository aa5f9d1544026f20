package infra

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Infof(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type zapLogger struct {
	s *zap.SugaredLogger
}

func NewZapLogger(l *zap.Logger) Logger { return &zapLogger{s: l.Sugar()} }

// NewProductionLogger builds a JSON logger at the given level ("debug", "info", ...).
func NewProductionLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func (l *zapLogger) Infof(format string, v ...interface{})  { l.s.Infof(format, v...) }
func (l *zapLogger) Errorf(format string, v ...interface{}) { l.s.Errorf(format, v...) }

func NewNopLogger() Logger { return NewZapLogger(zap.NewNop()) }
