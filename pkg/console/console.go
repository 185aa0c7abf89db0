// Package console configures logrus for human-facing command output.
package console

import (
	"bytes"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
)

// Formatter prints only the message, bold for informational levels and bold
// red from warning up.
type Formatter struct {
	NoColor bool
}

func (f *Formatter) Format(entry *log.Entry) ([]byte, error) {
	var b bytes.Buffer
	style := color.New(color.Bold)
	if entry.Level <= log.WarnLevel {
		style = color.New(color.Bold, color.FgRed)
	}
	if f.NoColor {
		style.DisableColor()
	} else {
		style.EnableColor()
	}
	b.WriteString(style.Sprint(entry.Message))
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Setup routes the standard logger to out with the console formatter. Color
// is only used when out is a terminal.
func Setup(out io.Writer) {
	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	log.SetOutput(out)
	log.SetFormatter(&Formatter{NoColor: noColor})
	color.NoColor = noColor
}

// SetVerbosity maps a -v/-q style counter onto a log level: 0 is info, each
// step up adds detail and negative values only keep errors.
func SetVerbosity(verbosity int) {
	switch {
	case verbosity < 0:
		log.SetLevel(log.ErrorLevel)
	case verbosity == 0:
		log.SetLevel(log.InfoLevel)
	case verbosity == 1:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.TraceLevel)
	}
}

var (
	doneText  = color.New(color.FgHiGreen).SprintFunc()
	errorText = color.New(color.FgRed).SprintFunc()
)

// DoingDone runs fn and reports "<msg> done." or "<msg> error." on one line.
func DoingDone(msg string, fn func() error) error {
	log.Debugf("%s ...", msg)
	if err := fn(); err != nil {
		log.Infof("%s %s.", msg, errorText("error"))
		return err
	}
	log.Infof("%s %s.", msg, doneText("done"))
	return nil
}
