// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LogrusSink adapts a logrus logger to the Sink interface.
type LogrusSink struct {
	entry *logrus.Entry
}

// NewLogrusSink builds a JSON-formatted logrus sink writing to stderr.
// Level is one of "debug", "info", "warn", "error"; anything else
// defaults to info.
func NewLogrusSink(level string) *LogrusSink {
	return NewLogrusSinkTo(os.Stderr, level)
}

// NewLogrusSinkTo is NewLogrusSink with an explicit output writer.
func NewLogrusSinkTo(w io.Writer, level string) *LogrusSink {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	switch level {
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "info":
		l.SetLevel(logrus.InfoLevel)
	case "warn":
		l.SetLevel(logrus.WarnLevel)
	case "error":
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}

	return &LogrusSink{entry: logrus.NewEntry(l)}
}

// WithComponent returns a sink that stamps every entry with a component name.
func (s *LogrusSink) WithComponent(name string) *LogrusSink {
	return &LogrusSink{entry: s.entry.WithField("component", name)}
}

func (s *LogrusSink) Debug(msg string, fields Fields) {
	s.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (s *LogrusSink) Info(msg string, fields Fields) {
	s.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

func (s *LogrusSink) Warn(msg string, fields Fields) {
	s.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (s *LogrusSink) Error(msg string, fields Fields) {
	s.entry.WithFields(logrus.Fields(fields)).Error(msg)
}
