package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	logg *logrus.Logger
)

func GetLogger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.TextFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stderr)
}

// ConfigureLogger は設定をロガーに反映する。
func ConfigureLogger(cfg Config) {
	if cfg.LogFormat == "json" {
		logg.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logg.SetLevel(level)
}
