package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// serviceHook stamps every entry with the binary that emitted it, so the
// API and the geocode CLI can share one log sink.
type serviceHook struct {
	service string
}

func (h serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h serviceHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = h.service
	}
	return nil
}

// InitLogger configures the shared Logger for one binary writing to out.
// LOG_LEVEL picks the level (default info). LOG_FORMAT forces "json" or
// "text"; otherwise dev environments get text and everything else JSON.
func InitLogger(service string, out io.Writer) {
	Logger.SetOutput(out)
	Logger.SetFormatter(formatterFor(os.Getenv("ENV"), os.Getenv("LOG_FORMAT")))
	Logger.ReplaceHooks(make(logrus.LevelHooks))
	Logger.AddHook(serviceHook{service: service})

	raw := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if raw == "" {
		raw = "info"
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", raw)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
}

func formatterFor(env, format string) logrus.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return jsonFormatter()
	case "text":
		return textFormatter()
	}
	if env == "" || strings.HasPrefix(env, "dev") {
		return textFormatter()
	}
	return jsonFormatter()
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{FullTimestamp: true}
}

func jsonFormatter() logrus.Formatter {
	return &logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano}
}
