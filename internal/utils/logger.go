package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// serviceFieldHook stamps every entry with the service name unless the
// caller already set one.
type serviceFieldHook struct {
	service string
}

func (h *serviceFieldHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *serviceFieldHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = h.service
	}
	return nil
}

// InitLogger configures Logger from LOG_LEVEL (default info) and LOG_FORMAT
// ("text", the default, or "json").
func InitLogger(appName string) {
	configureLogger(Logger, os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), appName)
}

func configureLogger(l *logrus.Logger, out io.Writer, levelStr, format, appName string) {
	l.SetOutput(out)

	levelStr = strings.ToLower(strings.TrimSpace(levelStr))
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		l.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", levelStr)
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	l.ReplaceHooks(make(logrus.LevelHooks))
	l.AddHook(&serviceFieldHook{service: appName})
}
