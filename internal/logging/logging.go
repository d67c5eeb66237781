// Package logging builds the zap logger used by the command line tool.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environments accepted by Config.Environment.
const (
	Development = "development"
	Production  = "production"
)

// Config holds the running environment, which is either "development" or
// "production", an optional file to copy log output to, and whether stack
// traces are written.
type Config struct {
	EnableStacktrace bool   `yaml:"enable_stacktrace,omitempty"`
	Environment      string `yaml:"env"`
	Path             string `yaml:"path,omitempty"`
}

// New builds a console logger. Development logs Debug and above, production
// Info and above. Output goes to stderr and, when set, conf.Path.
func New(conf Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	switch {
	case strings.EqualFold(Development, conf.Environment):
		level.SetLevel(zap.DebugLevel)
	case strings.EqualFold(Production, conf.Environment), conf.Environment == "":
		level.SetLevel(zap.InfoLevel)
	default:
		return nil, fmt.Errorf("logger environment must be %q or %q, got %q", Development, Production, conf.Environment)
	}

	outputs := []string{"stderr"}
	if conf.Path != "" {
		outputs = append(outputs, conf.Path)
	}

	zConfig := &zap.Config{
		Level:             level,
		Encoding:          "console",
		DisableStacktrace: !conf.EnableStacktrace,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "path",
			MessageKey:     "msg",
			StacktraceKey:  "stack",
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}
	return zConfig.Build()
}
