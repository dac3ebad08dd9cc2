package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего движка.
// До вызова Init пишет в stderr с уровнем warn, чтобы библиотечный код
// (systems, dungeon) можно было вызывать без инициализации.
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Init настраивает глобальный логгер из переменных окружения.
// Вызывается один раз при старте (main.go) и в TestMain пакетов.
func Init() {
	InitWithOutput(os.Stdout)
}

// InitWithOutput делает то же, что Init, но пишет в w.
func InitWithOutput(w io.Writer) {
	Log = logrus.New()

	// 1. Уровень: LOG_LEVEL, по умолчанию "info".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Формат: "json" для сбора логов, иначе текст.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(w)
}

// Component возвращает запись с полем component: так помечают логи все системы.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
