package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func Init() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

// fields turns trailing key/value pairs into logrus fields.
// An odd trailing value is kept under "extra".
func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		f[key] = keysAndValues[i+1]
	}
	if len(keysAndValues)%2 != 0 {
		f["extra"] = keysAndValues[len(keysAndValues)-1]
	}
	return f
}

func Info(msg string, keysAndValues ...interface{}) {
	log.WithFields(fields(keysAndValues)).Info(msg)
}

func Infof(format string, v ...interface{}) {
	log.Infof(format, v...)
}

func Error(msg string, keysAndValues ...interface{}) {
	log.WithFields(fields(keysAndValues)).Error(msg)
}

func Errorf(format string, v ...interface{}) {
	log.Errorf(format, v...)
}

func Debug(msg string, keysAndValues ...interface{}) {
	log.WithFields(fields(keysAndValues)).Debug(msg)
}

func Debugf(format string, v ...interface{}) {
	log.Debugf(format, v...)
}

func Fatal(msg string) {
	log.Fatal(msg)
}

func Fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}
