package config

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logg     *logrus.Logger
	loggOnce sync.Once
)

// GetLoggerはアプリ共通のloggerを返す（JSON出力）。
func GetLogger() *logrus.Logger {
	loggOnce.Do(func() {
		logg = logrus.New()
		logg.SetFormatter(&logrus.JSONFormatter{})
		logg.SetOutput(os.Stdout)

		if os.Getenv("GO_ENV") == "prod" {
			logg.SetLevel(logrus.InfoLevel)
		} else {
			logg.SetLevel(logrus.DebugLevel)
		}
	})
	return logg
}
