package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the process logger. With a log file configured, output
// goes to a rotated file instead of stderr.
func NewLogger(conf Config) (*logrus.Logger, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(conf.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("logging level: %w", err)
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		PadLevelText:    true,
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})
	log.SetOutput(os.Stderr)
	if conf.Logging.File != "" {
		log.SetFormatter(&logrus.TextFormatter{
			PadLevelText:    true,
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: time.DateTime,
		})
		log.SetOutput(&lumberjack.Logger{
			Filename:   conf.Logging.File,
			MaxSize:    conf.Logging.MaxSize, // megabytes
			MaxBackups: 2,
			MaxAge:     28, //days
			Compress:   true,
		})
	}
	return log, nil
}
