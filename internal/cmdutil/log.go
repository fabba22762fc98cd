// internal/cmdutil/log.go
package cmdutil

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger returns the stderr logger shared by the commands. quiet keeps
// errors only; verbose adds debug detail.
func NewLogger(dst io.Writer, quiet, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(dst)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	switch {
	case quiet:
		l.SetLevel(logrus.ErrorLevel)
	case verbose:
		l.SetLevel(logrus.DebugLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}
