package logging

import (
	"go.uber.org/zap"
)

// Sink receives descriptions of recovered failures.
type Sink interface {
	Error(msg string, err error, fields ...zap.Field)
}

// ZapSink reports failures to a zap logger.
type ZapSink struct {
	l *zap.Logger
}

// NewZapSink creates a sink for l. A nil logger uses the package logger at
// the time of each call.
func NewZapSink(l *zap.Logger) *ZapSink {
	return &ZapSink{l: l}
}

// Error logs msg with err at error level.
func (s *ZapSink) Error(msg string, err error, fields ...zap.Field) {
	l := s.l
	if l == nil {
		l = Logger()
	}
	l.Error(msg, append(fields, zap.Error(err))...)
}

type nopSink struct{}

func (nopSink) Error(string, error, ...zap.Field) {}

// Nop returns a sink that discards everything.
func Nop() Sink {
	return nopSink{}
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(msg string, err error, fields ...zap.Field)

// Error calls f.
func (f SinkFunc) Error(msg string, err error, fields ...zap.Field) {
	f(msg, err, fields...)
}
