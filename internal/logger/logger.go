package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	isDevelopment = false // if running in debug mode

	logFile *os.File = nil

	AdHocLogger zerolog.Logger

	once sync.Once

	globalLogger zerolog.Logger
)

func init() {
	// A general logger that can be grabbed without setting anything up
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	AdHocLogger = zerolog.New(os.Stderr).With().Timestamp().Str("service", "sift").Caller().Logger()
}

func GetLogger(component string) zerolog.Logger {

	once.Do(func() {

		if !isDevelopment {
			globalLogger = zerolog.New(os.Stderr).With().Timestamp().Str("service", "sift").Logger()
			return
		}

		// Development mode gets human-readable console output
		consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339,
			FormatLevel: func(i any) string {
				return strings.ToUpper(fmt.Sprintf("[%5s]", i))
			},
			FormatMessage: func(i any) string {
				return fmt.Sprintf("| %s |", i)
			},
			FormatCaller: func(i any) string {
				return filepath.Base(fmt.Sprintf("%s", i))
			},
			PartsExclude: []string{
				zerolog.TimestampFieldName,
			}}
		out := zerolog.MultiLevelWriter(consoleWriter)
		if logFile != nil {
			out = zerolog.MultiLevelWriter(consoleWriter, logFile)
		}
		globalLogger = zerolog.New(out).Level(zerolog.TraceLevel).With().Timestamp().Str("service", "sift").Caller().Logger()
	})

	return globalLogger.With().Str("component", component).Logger()
}

func SetDevelopment(value bool) {
	isDevelopment = value
}

func SetLogFile(file *os.File) {
	logFile = file
}
