package logger

import (
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Init инициализирует структурированный логгер.
// В development используется текстовый формат и уровень debug, иначе JSON и info.
func Init(env string) {
	Log = logrus.New()

	if env == "development" {
		Log.SetLevel(logrus.DebugLevel)
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}

	Log.SetLevel(logrus.InfoLevel)
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// WithComponent возвращает запись лога с полем component.
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
