package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

var std = newLogger(os.Stderr)

// lineFormatter prints "[INF] message key=value ..." on a single line.
type lineFormatter struct{}

func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var levelText string
	switch entry.Level {
	case logrus.InfoLevel:
		levelText = "[INF]"
	case logrus.WarnLevel:
		levelText = "[WARN]"
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		levelText = "[ERR]"
	case logrus.DebugLevel, logrus.TraceLevel:
		levelText = "[DBG]"
	default:
		levelText = "[???]"
	}
	var b strings.Builder
	b.WriteString(levelText)
	b.WriteByte(' ')
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&lineFormatter{})
	return l
}

// Init redirects the shared logger; a nil writer keeps the current output.
func Init(verbose bool, w io.Writer) {
	if w != nil {
		std.SetOutput(w)
	}
	if verbose {
		std.SetLevel(logrus.DebugLevel)
	} else {
		std.SetLevel(logrus.InfoLevel)
	}
}

// New returns a logger tagged with a component field.
func New(component string) *logrus.Entry {
	return std.WithField("component", component)
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *logrus.Entry {
	l := newLogger(io.Discard)
	return logrus.NewEntry(l)
}
