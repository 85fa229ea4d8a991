// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clog provides context aware logging.
// It can store trace, spanID, arbitrary labels to each context.
// The main use case is to add scan context to each log entry automatically.
package clog

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
)

type contextKeyType int

var contextKey contextKeyType

// defaultLogger is used when no logger is set in the context.
var defaultLogger = New(log.Default())

// New creates a new Logger that writes to l.
func New(l *log.Logger) *Logger {
	return &Logger{logger: l}
}

// NewContext sets the given logger to the context.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// NewSpan sets a new logger.Span with the given labels to the context.
func NewSpan(ctx context.Context, trace, spanID string, labels map[string]string) context.Context {
	return NewContext(ctx, logger(ctx).Span(trace, spanID, labels))
}

// FromContext returns a logger in the context, or nil if it's not set.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey).(*Logger)
	if !ok {
		return nil
	}
	return logger
}

func logger(ctx context.Context) *Logger {
	if l := FromContext(ctx); l != nil {
		return l
	}
	return defaultLogger
}

// Logger holds the trace, spanID, arbitrary labels of the context.
type Logger struct {
	logger *log.Logger

	// verbosity for V.
	verbosity int

	trace  string
	spanID string
	labels map[string]string
}

// Span returns a sub logger for the trace span.
// Labels are added to each log entry as key-value pairs, sorted by key.
func (l *Logger) Span(trace, spanID string, labels map[string]string) *Logger {
	var kvs []any
	if trace != "" {
		kvs = append(kvs, "trace", trace)
	}
	if spanID != "" {
		kvs = append(kvs, "span", spanID)
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kvs = append(kvs, k, labels[k])
	}
	return &Logger{
		logger:    l.logger.With(kvs...),
		verbosity: l.verbosity,
		trace:     trace,
		spanID:    spanID,
		labels:    labels,
	}
}

// Trace returns the trace of the logger.
func (l *Logger) Trace() string {
	return l.trace
}

// SpanID returns the span ID of the logger.
func (l *Logger) SpanID() string {
	return l.spanID
}

// SetVerbosity sets verbose log level checked by V.
// Level > 0 also enables debug log of the underlying logger.
func (l *Logger) SetVerbosity(level int) {
	l.verbosity = level
	if level > 0 {
		l.logger.SetLevel(log.DebugLevel)
	}
}

// V checks at verbose log level.
func (l *Logger) V(level int) bool {
	return level <= l.verbosity
}

// V checks at verbose log level of the logger in the context.
func V(ctx context.Context, level int) bool {
	return logger(ctx).V(level)
}

// Debugf logs at debug log level in the manner of fmt.Printf.
func (l *Logger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Info logs at info log level in the manner of fmt.Print.
func (l *Logger) Info(args ...any) {
	l.logger.Info(fmt.Sprint(args...))
}

// Infof logs at info log level in the manner of fmt.Printf.
func (l *Logger) Infof(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

// Infof logs at info log level in the manner of fmt.Printf.
func Infof(ctx context.Context, format string, args ...any) {
	logger(ctx).Infof(format, args...)
}

// Warning logs at warning log level in the manner of fmt.Print.
func (l *Logger) Warning(args ...any) {
	l.logger.Warn(fmt.Sprint(args...))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func (l *Logger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func Warningf(ctx context.Context, format string, args ...any) {
	logger(ctx).Warningf(format, args...)
}

// Error logs at error log level in the manner of fmt.Print.
func (l *Logger) Error(args ...any) {
	l.logger.Error(fmt.Sprint(args...))
}

// Errorf logs at error log level in the manner of fmt.Printf.
func (l *Logger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

// Errorf logs at error log level in the manner of fmt.Printf.
func Errorf(ctx context.Context, format string, args ...any) {
	logger(ctx).Errorf(format, args...)
}

// Fatalf logs at fatal log level in the manner of fmt.Printf, and exit.
func (l *Logger) Fatalf(format string, args ...any) {
	l.logger.Fatal(fmt.Sprintf(format, args...))
}

// Fatalf logs at fatal log level in the manner of fmt.Printf, and exit.
func Fatalf(ctx context.Context, format string, args ...any) {
	logger(ctx).Fatalf(format, args...)
}
