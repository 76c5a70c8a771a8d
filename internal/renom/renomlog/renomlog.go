// Package renomlog builds the four-level (header, basic, success, error)
// logger collaborator the core depends on (spec.md §6.3), grounded on the
// teacher's internal/utils.LoggerFactory zap configuration.
package renomlog

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant = "debug"
	logLevelInfoStringConstant  = "info"
	logLevelWarnStringConstant  = "warn"
	logLevelErrorStringConstant = "error"

	logFormatStructuredStringConstant = "structured"
	logFormatConsoleStringConstant    = "console"

	jsonZapEncodingStringConstant    = "json"
	consoleZapEncodingStringConstant = "console"

	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"

	timeFieldNameConstant              = "time"
	levelFieldNameConstant             = "level"
	structuredMessageFieldNameConstant = "msg"
	consoleMessageFieldNameConstant    = "message"
	humanReadableTimeLayoutConstant    = "15:04:05"
	emptyStringConstant                = ""
)

// Level enumerates supported logging granularities.
type Level string

// Exported log level constants for reuse across packages.
const (
	LevelDebug Level = Level(logLevelDebugStringConstant)
	LevelInfo  Level = Level(logLevelInfoStringConstant)
	LevelWarn  Level = Level(logLevelWarnStringConstant)
	LevelError Level = Level(logLevelErrorStringConstant)
)

// Format enumerates supported logger output encodings.
type Format string

// Exported log format constants for reuse across packages.
const (
	FormatStructured Format = Format(logFormatStructuredStringConstant)
	FormatConsole    Format = Format(logFormatConsoleStringConstant)
)

var levelMapping = map[Level]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
}

var formatEncodingMapping = map[Format]string{
	FormatStructured: jsonZapEncodingStringConstant,
	FormatConsole:    consoleZapEncodingStringConstant,
}

// Logger is the four-level collaborator the core depends on. The core never
// formats user-visible strings itself beyond embedding entity names into
// the message passed to these methods.
type Logger struct {
	zapLogger *zap.Logger
}

// New builds a Logger honoring the requested level and format, encoding to
// stderr.
func New(level Level, format Format) (*Logger, error) {
	zapLevel, levelExists := levelMapping[level]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, level)
	}
	if _, formatExists := formatEncodingMapping[format]; !formatExists {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, format)
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLevel)
	configuration.DisableStacktrace = true
	configuration.OutputPaths = []string{"stderr"}
	configuration.ErrorOutputPaths = []string{"stderr"}

	switch format {
	case FormatConsole:
		configuration.Encoding = consoleZapEncodingStringConstant
		configuration.EncoderConfig.TimeKey = timeFieldNameConstant
		configuration.EncoderConfig.LevelKey = levelFieldNameConstant
		configuration.EncoderConfig.MessageKey = consoleMessageFieldNameConstant
		configuration.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(humanReadableTimeLayoutConstant)
		configuration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		configuration.EncoderConfig.CallerKey = emptyStringConstant
		configuration.EncoderConfig.StacktraceKey = emptyStringConstant
		configuration.EncoderConfig.NameKey = emptyStringConstant
		configuration.DisableCaller = true
	default:
		configuration.Encoding = jsonZapEncodingStringConstant
		configuration.EncoderConfig.TimeKey = timeFieldNameConstant
		configuration.EncoderConfig.LevelKey = levelFieldNameConstant
		configuration.EncoderConfig.MessageKey = structuredMessageFieldNameConstant
	}

	zapLogger, buildError := configuration.Build()
	if buildError != nil {
		return nil, buildError
	}
	return &Logger{zapLogger: zapLogger}, nil
}

// NewNop builds a Logger that discards every message, used in tests and
// non-interactive library callers that supply no logging configuration.
func NewNop() *Logger {
	return &Logger{zapLogger: zap.NewNop()}
}

// Header logs a section banner, used to introduce a workflow run.
func (logger *Logger) Header(message string) {
	logger.zapLogger.Info(message, zap.String("level_kind", "header"))
}

// Basic logs routine progress information.
func (logger *Logger) Basic(message string) {
	logger.zapLogger.Info(message)
}

// Success logs a completed, successful outcome.
func (logger *Logger) Success(message string) {
	logger.zapLogger.Info(message, zap.Bool("success", true))
}

// Error logs a failure.
func (logger *Logger) Error(message string) {
	logger.zapLogger.Error(message)
}

// Sync flushes buffered log entries; callers should defer Sync at startup.
func (logger *Logger) Sync() error {
	return logger.zapLogger.Sync()
}
