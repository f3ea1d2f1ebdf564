// Package logger builds the zap loggers used when a mesh is configured with a
// log level instead of a caller supplied *zap.Logger.
package logger

import (
	"io"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to w at the given level. Levels are
// colored, which reads well in a terminal and is harmless elsewhere.
func New(w io.Writer, level zapcore.Level) *zap.Logger {
	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).Named("delaunay")
}

// ParseLevel accepts the zap level names (debug, info, warn, error, ...).
func ParseLevel(name string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, errors.Wrapf(err, "invalid log level %q", name)
	}
	return level, nil
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	name := level.String()
	switch level {
	case zapcore.DebugLevel:
		name = aurora.Cyan(name).String()
	case zapcore.InfoLevel:
		name = aurora.Green(name).String()
	case zapcore.WarnLevel:
		name = aurora.Yellow(name).String()
	case zapcore.ErrorLevel:
		name = aurora.Red(name).String()
	}
	enc.AppendString(name)
}
