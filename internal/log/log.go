// Package log wraps logrus with context aware helpers.
//
// Fields attached to a context with WithFields (typically the target being patched) are added to
// every log entry emitted with that context, so that a batch over several files stays readable.
package log

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

const logFormatWithCaller = "[%s] %s"

type fieldsKey struct{}

var reportCaller atomic.Bool

// SetReportCaller includes the calling method as a prefix of every message.
func SetReportCaller(v bool) {
	reportCaller.Store(v)
}

// WithFields returns a copy of ctx carrying fields, merged with any already attached.
func WithFields(ctx context.Context, fields logrus.Fields) context.Context {
	merged := logrus.Fields{}
	for k, v := range fieldsFrom(ctx) {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// WithTarget attaches the file being operated on to ctx.
func WithTarget(ctx context.Context, path string) context.Context {
	return WithFields(ctx, logrus.Fields{"target": path})
}

func fieldsFrom(ctx context.Context) logrus.Fields {
	if ctx == nil {
		return nil
	}
	f, _ := ctx.Value(fieldsKey{}).(logrus.Fields)
	return f
}

// Debug logs at the DEBUG level.
// Arguments are handled in the manner of fmt.Print.
func Debug(ctx context.Context, args ...interface{}) {
	log(ctx, logrus.DebugLevel, args...)
}

// Info logs at the INFO level.
// Arguments are handled in the manner of fmt.Print.
func Info(ctx context.Context, args ...interface{}) {
	log(ctx, logrus.InfoLevel, args...)
}

// Warning logs at the WARNING level.
// Arguments are handled in the manner of fmt.Print.
func Warning(ctx context.Context, args ...interface{}) {
	log(ctx, logrus.WarnLevel, args...)
}

// Error logs at the ERROR level.
// Arguments are handled in the manner of fmt.Print.
func Error(ctx context.Context, args ...interface{}) {
	log(ctx, logrus.ErrorLevel, args...)
}

// Debugf logs at the DEBUG level.
// Arguments are handled in the manner of fmt.Printf.
func Debugf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, logrus.DebugLevel, format, args...)
}

// Infof logs at the INFO level.
// Arguments are handled in the manner of fmt.Printf.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, logrus.InfoLevel, format, args...)
}

// Warningf logs at the WARNING level.
// Arguments are handled in the manner of fmt.Printf.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, logrus.WarnLevel, format, args...)
}

// Errorf logs at the ERROR level.
// Arguments are handled in the manner of fmt.Printf.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, logrus.ErrorLevel, format, args...)
}

func logf(ctx context.Context, level logrus.Level, format string, args ...interface{}) {
	log(ctx, level, fmt.Sprintf(format, args...))
}

func log(ctx context.Context, level logrus.Level, args ...interface{}) {
	logger := logrus.StandardLogger()
	if !logger.IsLevelEnabled(level) {
		return
	}

	msg := fmt.Sprint(args...)
	if reportCaller.Load() {
		if f := getCaller(); f != nil {
			msg = fmt.Sprintf(logFormatWithCaller, fmt.Sprintf("%s:%d %s()", f.File, f.Line, f.Function), msg)
		}
	}

	entry := logrus.NewEntry(logger)
	if fields := fieldsFrom(ctx); len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Log(level, msg)
}
