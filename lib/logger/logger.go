/*
Copyright 2026 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package logger

import (
	"context"
	"os"
	"strings"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// Config configures the standard logger.
type Config struct {
	// Output is "stderr", "stdout" or a path to a log file.
	Output string `toml:"output"`
	// Severity is a logrus level name.
	Severity string `toml:"severity"`
}

type contextKey struct{}

// Init sets up the standard logger until the configuration file is parsed.
func Init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
}

// Setup applies the config to the standard logger.
func Setup(conf Config) error {
	switch conf.Output {
	case "", "stderr", "error", "2":
		log.SetOutput(os.Stderr)
	case "stdout", "out", "1":
		log.SetOutput(os.Stdout)
	default:
		// assume it's a file path
		logFile, err := os.OpenFile(conf.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
		if err != nil {
			return trace.Wrap(err, "failed to create the log file")
		}
		log.SetOutput(logFile)
	}

	switch strings.ToLower(conf.Severity) {
	case "info", "":
		log.SetLevel(log.InfoLevel)
	case "err", "error":
		log.SetLevel(log.ErrorLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "warn", "warning":
		log.SetLevel(log.WarnLevel)
	default:
		return trace.BadParameter("unsupported logger severity: %q", conf.Severity)
	}

	return nil
}

// Standard returns the package-level logger.
func Standard() log.FieldLogger {
	return log.StandardLogger()
}

// WithLogger returns a context carrying the given logger.
func WithLogger(ctx context.Context, logger log.FieldLogger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// WithField returns a context whose logger carries one more field.
func WithField(ctx context.Context, key string, value interface{}) (context.Context, log.FieldLogger) {
	logger := Get(ctx).WithField(key, value)
	return WithLogger(ctx, logger), logger
}

// WithFields returns a context whose logger carries the fields.
func WithFields(ctx context.Context, fields log.Fields) (context.Context, log.FieldLogger) {
	logger := Get(ctx).WithFields(fields)
	return WithLogger(ctx, logger), logger
}

// Get returns the context logger or the standard one.
func Get(ctx context.Context) log.FieldLogger {
	if logger, ok := ctx.Value(contextKey{}).(log.FieldLogger); ok && logger != nil {
		return logger
	}
	return Standard()
}
