package cli

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// LoggerOption adjusts a component logger after logging.NewLogger built it
// from dnd.yml.
type LoggerOption func(*logrus.Logger)

func WithOutput(w io.Writer) LoggerOption {
	return func(l *logrus.Logger) { l.SetOutput(w) }
}

func WithLevel(level logrus.Level) LoggerOption {
	return func(l *logrus.Logger) { l.SetLevel(level) }
}

func WithFormatter(formatter logrus.Formatter) LoggerOption {
	return func(l *logrus.Logger) { l.SetFormatter(formatter) }
}

// flagLoggerOptions maps the shared flags onto the logger. --verbose also
// redirects output to the command's stderr: on a terminal the auto policy
// discarded it when the logger was built at info level.
func flagLoggerOptions(cmd *cobra.Command) []LoggerOption {
	opts := GetOptions(cmd)
	var out []LoggerOption
	if opts.Verbose {
		out = append(out, WithLevel(logrus.DebugLevel), WithOutput(cmd.ErrOrStderr()))
	}
	if opts.JSONOutput {
		out = append(out, WithFormatter(&logrus.JSONFormatter{}))
	}
	return out
}

// Configure applies opts in order.
func Configure(l *logrus.Logger, opts ...LoggerOption) {
	for _, opt := range opts {
		opt(l)
	}
}
