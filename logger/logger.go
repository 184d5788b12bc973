package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/awantoch/eepromgen/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	userLogger      *log.Logger
	userWriter      io.Writer = os.Stdout
	internalLogger  *zap.SugaredLogger
	internalWriter  io.Writer = os.Stderr
	loggerMode      = "production"
	loggerModeMutex sync.RWMutex
)

func init() {
	userLogger = log.New(userWriter, "", 0)
	initLoggers("production")
}

// levelFor maps a mode or level name onto a zap level. Unknown names fall
// back to info.
func levelFor(mode string) zapcore.Level {
	if os.Getenv(constants.EnvDebug) != "" {
		return zapcore.DebugLevel
	}
	switch strings.ToLower(mode) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func initLoggers(mode string) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(internalWriter),
		zap.NewAtomicLevelAt(levelFor(mode)),
	)
	internalLogger = zap.New(core).Sugar()
}

// User prints a plain line for the person running the tool.
func User(format string, v ...any) {
	if userLogger != nil {
		userLogger.Printf(format, v...)
	}
}

func Info(format string, v ...any) {
	if internalLogger != nil {
		internalLogger.Infof(format, v...)
	}
}

func Warn(format string, v ...any) {
	if internalLogger != nil {
		internalLogger.Warnf(format, v...)
	}
}

func Error(format string, v ...any) {
	if internalLogger != nil {
		internalLogger.Errorf(format, v...)
	}
}

func Debug(format string, v ...any) {
	if internalLogger != nil {
		internalLogger.Debugf(format, v...)
	}
}

// Errorf logs the error message and returns it as an error value.
func Errorf(format string, v ...any) error {
	err := fmt.Errorf(format, v...)
	if internalLogger != nil {
		internalLogger.Errorf("%s", err)
	}
	return err
}

func SetUserOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	userWriter = w
	userLogger = log.New(userWriter, "", 0)
}

// SetInternalOutput redirects leveled logs, keeping the current mode.
func SetInternalOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	internalWriter = w
	initLoggers(getMode())
}

// SetMode switches the leveled logger between "production", "debug" or an
// explicit level name such as "warn".
func SetMode(mode string) {
	loggerModeMutex.Lock()
	defer loggerModeMutex.Unlock()
	loggerMode = mode
	initLoggers(mode)
}

func getMode() string {
	loggerModeMutex.RLock()
	defer loggerModeMutex.RUnlock()
	return loggerMode
}

// Sync flushes any buffered log entries.
func Sync() {
	if internalLogger != nil {
		_ = internalLogger.Sync()
	}
}
