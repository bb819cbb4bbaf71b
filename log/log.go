// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log defines pip-sbom's logger interface. By default it writes
// level-prefixed lines to stderr but it can be replaced with user-defined loggers.
//
// Nothing logged through this package ever reaches stdout: stdout is reserved
// for the generated SBOM document.
package log

import (
	"fmt"
	"io"
	"os"
)

// Logger is pip-sbom's logging interface.
type Logger interface {
	// Logs in different log levels, either formatted or unformatted.
	Errorf(format string, args ...any)
	Error(args ...any)
	Warnf(format string, args ...any)
	Warn(args ...any)
	Infof(format string, args ...any)
	Info(args ...any)
	Debugf(format string, args ...any)
	Debug(args ...any)
}

var logger Logger = &DefaultLogger{}

// SetLogger overwrites the default logger with a user specified one.
func SetLogger(l Logger) { logger = l }

// Errorf is the static formatted error logging function.
func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

// Warnf is the static formatted warning logging function.
func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

// Infof is the static formatted info logging function.
func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

// Debugf is the static formatted debug logging function.
func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Error is the static error logging function.
func Error(args ...any) {
	logger.Error(args...)
}

// Warn is the static warning logging function.
func Warn(args ...any) {
	logger.Warn(args...)
}

// Info is the static info logging function.
func Info(args ...any) {
	logger.Info(args...)
}

// Debug is the static debug logging function.
func Debug(args ...any) {
	logger.Debug(args...)
}

// DefaultLogger is the Logger implementation used by default.
// Each message is written on its own line, prefixed with its level.
type DefaultLogger struct {
	Verbose bool      // Whether debug logs should be shown.
	Output  io.Writer // Defaults to os.Stderr.
}

const (
	errorPrefix   = "ERROR: "
	warningPrefix = "WARNING: "
	debugPrefix   = "DEBUG: "
)

func (l *DefaultLogger) writer() io.Writer {
	if l.Output == nil {
		return os.Stderr
	}
	return l.Output
}

func (l *DefaultLogger) printf(prefix, format string, args ...any) {
	fmt.Fprintln(l.writer(), prefix+fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) println(prefix string, args ...any) {
	fmt.Fprintln(l.writer(), prefix+fmt.Sprint(args...))
}

// Errorf is the formatted error logging function.
func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.printf(errorPrefix, format, args...)
}

// Warnf is the formatted warning logging function.
func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.printf(warningPrefix, format, args...)
}

// Infof is the formatted info logging function.
func (l *DefaultLogger) Infof(format string, args ...any) {
	l.printf("", format, args...)
}

// Debugf is the formatted debug logging function.
func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.Verbose {
		l.printf(debugPrefix, format, args...)
	}
}

// Error is the error logging function.
func (l *DefaultLogger) Error(args ...any) {
	l.println(errorPrefix, args...)
}

// Warn is the warning logging function.
func (l *DefaultLogger) Warn(args ...any) {
	l.println(warningPrefix, args...)
}

// Info is the info logging function.
func (l *DefaultLogger) Info(args ...any) {
	l.println("", args...)
}

// Debug is the debug logging function.
func (l *DefaultLogger) Debug(args ...any) {
	if l.Verbose {
		l.println(debugPrefix, args...)
	}
}
