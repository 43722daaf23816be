package xlogdump

import (
	"os"

	"github.com/sirupsen/logrus"
)

// log is the package-level diagnostic logger. Record output (the actual
// decoded WAL lines) never goes through it — only warnings and errors that
// spec §7 routes to the error stream, matching the original tool's split
// between printf (stdout, data) and fprintf(stderr, ...) (diagnostics).
var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetVerbose raises the package logger to debug level, mirroring the
// original main.go's -v flag.
func SetVerbose(v bool) {
	if v {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}
