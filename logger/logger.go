// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Setup sets level ("debug", "info", ...) and format ("text" or "json") on
// the standard logger, writing to out.
func Setup(out io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	var formatter logrus.Formatter
	switch strings.ToLower(format) {
	case "", "text":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		return errors.Errorf("unknown log format %q", format)
	}
	logrus.SetOutput(out)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(formatter)
	return nil
}
