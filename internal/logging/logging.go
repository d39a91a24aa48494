// internal/logging/logging.go
package logging

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/draft-backend/internal/config"
)

// Setup configures the standard logrus logger from config and returns it.
// Production always logs JSON.
func Setup(cfg *config.Config) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Log.Format == "json" || cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if err != nil {
		log.WithField("level", cfg.Log.Level).Warn("Unknown log level, using info")
	}

	return log
}
