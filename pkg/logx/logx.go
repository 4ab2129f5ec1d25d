package logx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"BridgeCLI/internal/logsink"
)

// TraceLevel sits below zap's debug level.
const TraceLevel = zapcore.DebugLevel - 1

type Config struct {
	Dir                  string // directory prefix, e.g. "logs/"; the file is <Dir><unix-seconds>.log
	Level                string // trace|debug|info|warn|error
	Console              bool   // if true, also write to stderr
	HideSecretsInConsole bool   // if true, we mask the private data in the console
}

var StartTime = time.Now()

var (
	global  = zap.NewNop()
	sugar   = global.Sugar()
	fileOut *os.File
	path    string
)

// Init initializes the global logger and returns the path of the log file.
// The log directory is created if absent; failing to create it or to open the
// file is returned as an error and the global logger is left untouched.
func Init(cfg Config) (string, error) {
	level := parseLevel(cfg.Level)

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "lvl",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	fileEncCfg := encCfg
	fileEncCfg.EncodeLevel = levelEncoder(zapcore.CapitalLevelEncoder)
	fileEncoder := zapcore.NewConsoleEncoder(fileEncCfg)

	resolved := logsink.EpochPath(cfg.Dir, StartTime)
	if err := logsink.EnsureDir(filepath.Dir(resolved)); err != nil {
		return "", fmt.Errorf("create logs dir: %w", err)
	}
	f, err := logsink.OpenAppend(resolved)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}

	cores := []zapcore.Core{zapcore.NewCore(fileEncoder, zapcore.AddSync(f), level)}

	// console core: possibly wrapped to redact secrets
	if cfg.Console {
		consoleEncCfg := encCfg
		consoleEncCfg.EncodeLevel = levelEncoder(zapcore.CapitalColorLevelEncoder)
		var consoleCore zapcore.Core = zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncCfg), zapcore.Lock(os.Stderr), level)
		if cfg.HideSecretsInConsole {
			consoleCore = &maskingCore{
				Core:         consoleCore,
				sensitive:    defaultSensitiveKeys(),
				maskPattern:  defaultMaskPattern(),
				replaceValue: "[REDACTED]",
			}
		}
		cores = append(cores, consoleCore)
	}

	logger := zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.PanicLevel),
	)
	zap.ReplaceGlobals(logger)

	Close()
	global = logger
	sugar = logger.Sugar()
	fileOut = f
	path = resolved

	sugar.Infow("logger initialized", "path", resolved, "level", cfg.Level)
	return resolved, nil
}

// Close syncs and closes the file (if open) and restores the no-op logger.
func Close() {
	_ = global.Sync()
	if fileOut != nil {
		_ = fileOut.Sync()
		_ = fileOut.Close()
		fileOut = nil
	}
	global = zap.NewNop()
	sugar = global.Sugar()
	path = ""
}

func L() *zap.Logger        { return global }
func S() *zap.SugaredLogger { return sugar }

// Path returns the current log file, or "" before Init.
func Path() string { return path }

func With(name string) *zap.SugaredLogger     { return sugar.Named(name) }
func WithFields(kv ...any) *zap.SugaredLogger { return sugar.With(kv...) }

// Trace logs msg at TraceLevel.
func Trace(msg string, fields ...zap.Field) {
	if ce := global.Check(TraceLevel, msg); ce != nil {
		ce.Write(fields...)
	}
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "trace", "":
		return TraceLevel
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error", "err":
		return zapcore.ErrorLevel
	default:
		return TraceLevel
	}
}

// levelEncoder names TraceLevel and defers every other level to enc.
func levelEncoder(enc zapcore.LevelEncoder) zapcore.LevelEncoder {
	return func(l zapcore.Level, pae zapcore.PrimitiveArrayEncoder) {
		if l == TraceLevel {
			pae.AppendString("TRACE")
			return
		}
		enc(l, pae)
	}
}
