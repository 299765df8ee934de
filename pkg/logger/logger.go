package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// Создается сразу, чтобы тесты и утилиты могли писать в него без Init.
var Log = logrus.New()

// Options - параметры логгера. Пустые поля берутся из окружения.
type Options struct {
	Level  string // debug, info, warn...
	Format string // json | text
	Output io.Writer
}

// Init настраивает глобальный логгер.
// Вызывается один раз при старте приложения в main.go.
func Init(opts Options) {
	level := opts.Level
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)

	format := opts.Format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	// "json" - для продакшена, "text" - для разработки
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	if opts.Output != nil {
		Log.SetOutput(opts.Output)
	} else {
		Log.SetOutput(os.Stdout)
	}
}

// For возвращает логгер с полем component.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
