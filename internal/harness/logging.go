package harness

import (
	"io"
	"os"

	"gopkg.in/op/go-logging.v1"
)

//nolint:gochecknoglobals // one logger per module, as go-logging expects
var log = logging.MustGetLogger("harness")

// TranslateLogLevel translates a verbosity flag to a logging level.
func TranslateLogLevel(verbosity int) logging.Level {
	switch {
	case verbosity <= 0:
		return logging.ERROR
	case verbosity == 1:
		return logging.WARNING
	case verbosity == 2: //nolint:mnd
		return logging.NOTICE
	case verbosity == 3: //nolint:mnd
		return logging.INFO
	default:
		return logging.DEBUG
	}
}

// InitLogging sends log output to stderr at the given verbosity, and to logFile as well when it
// is not nil.
func InitLogging(verbosity int, logFile io.Writer) {
	level := TranslateLogLevel(verbosity)

	stderr := logging.NewBackendFormatter(logging.NewLogBackend(os.Stderr, "", 0), logFormatter())
	stderrLeveled := logging.AddModuleLevel(stderr)
	stderrLeveled.SetLevel(level, "")

	if logFile == nil {
		logging.SetBackend(stderrLeveled)

		return
	}

	file := logging.NewBackendFormatter(logging.NewLogBackend(logFile, "", 0), logFormatter())
	fileLeveled := logging.AddModuleLevel(file)
	fileLeveled.SetLevel(logging.DEBUG, "")

	logging.SetBackend(stderrLeveled, fileLeveled)
}

func logFormatter() logging.Formatter {
	return logging.MustStringFormatter("%{time:15:04:05.000} %{level:7s}: %{message}")
}
