package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

type Logger interface {
	Tracef(format string, values ...interface{})
	Debugf(format string, values ...interface{})
	Infof(format string, values ...interface{})
	Warnf(format string, values ...interface{})
	Errorf(format string, values ...interface{})
	Criticalf(format string, values ...interface{})
	Panicf(format string, values ...interface{})
	Fatalf(format string, values ...interface{})
}

var _ Logger = (*zapLogger)(nil)

type zapLogger struct {
	*zap.SugaredLogger
}

// New returns a JSON production logger writing to stderr at the given level.
func New(level zapcore.Level) (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{l.Sugar()}, nil
}

// Test returns a logger which writes through t.Log at debug level.
func Test(t testing.TB) Logger {
	return &zapLogger{zaptest.NewLogger(t, zaptest.Level(zapcore.DebugLevel)).Sugar()}
}

func Nop() Logger {
	return &zapLogger{zap.NewNop().Sugar()}
}

// zap has no trace level
func (l *zapLogger) Tracef(format string, values ...interface{}) {
	l.Debugf(format, values...)
}

func (l *zapLogger) Criticalf(format string, values ...interface{}) {
	l.DPanicf(format, values...)
}
