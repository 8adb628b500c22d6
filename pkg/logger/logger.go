package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger описывает минимальный интерфейс структурированного логгера,
// достаточный для использования в handler'ах и middleware.
type Logger interface {
	Info(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type logrusLogger struct {
	l *logrus.Logger
}

// Default возвращает логгер с настройками для development.
func Default() Logger {
	return New("development")
}

// New возвращает логгер, настроенный под окружение: в production — JSON
// для агрегаторов логов, иначе — человекочитаемый текст.
func New(appEnv string) Logger {
	l := logrus.New()
	if strings.ToLower(appEnv) == "production" {
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.SetLevel(logrus.DebugLevel)
	}
	return &logrusLogger{l: l}
}

func (l *logrusLogger) Info(msg string, fields map[string]any) {
	l.l.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *logrusLogger) Error(msg string, fields map[string]any) {
	l.l.WithFields(logrus.Fields(fields)).Error(msg)
}
