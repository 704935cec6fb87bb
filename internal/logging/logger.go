package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ppiankov/veritas/internal/model"
)

// Logger is the structured logger handed to every component
type Logger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
	Sync() error
}

// ZapLogger implements Logger on top of zap
type ZapLogger struct {
	logger *zap.Logger
}

// New builds a logger from configuration: a console core on stderr and,
// when cfg.File is set, a rotating JSON file core.
func New(cfg model.LogConfig) (*ZapLogger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	// 1. Console core (stdout is reserved for command output)
	var consoleEncoder zapcore.Encoder
	if cfg.JSON {
		consoleEncoder = zapcore.NewJSONEncoder(jsonEncoderConfig())
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		consoleEncoder = zapcore.NewConsoleEncoder(encCfg)
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
	}

	// 2. Optional rotating file core
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(cfg.MaxSizeMB, 1),
			MaxBackups: cfg.MaxBackups,
			MaxAge:     30,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(jsonEncoderConfig()),
			zapcore.AddSync(rotator),
			level,
		))
	}

	return NewFromCore(zapcore.NewTee(cores...)), nil
}

// NewFromCore wraps an existing zap core
func NewFromCore(core zapcore.Core) *ZapLogger {
	return &ZapLogger{logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
}

// NewNop returns a logger that discards everything
func NewNop() *ZapLogger {
	return &ZapLogger{logger: zap.NewNop()}
}

// ParseLevel maps a level name to a zap level; empty means info
func ParseLevel(name string) (zapcore.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.MessageKey = "message"
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return encCfg
}

func (l *ZapLogger) Debug(module, message string, details map[string]interface{}) {
	l.logger.Debug(message, fields(module, details)...)
}

func (l *ZapLogger) Info(module, message string, details map[string]interface{}) {
	l.logger.Info(message, fields(module, details)...)
}

func (l *ZapLogger) Warn(module, message string, details map[string]interface{}) {
	l.logger.Warn(message, fields(module, details)...)
}

func (l *ZapLogger) Error(module, message string, details map[string]interface{}) {
	l.logger.Error(message, fields(module, details)...)
}

// Sync flushes buffered entries; stderr sync errors are ignored
func (l *ZapLogger) Sync() error {
	if err := l.logger.Sync(); err != nil && !strings.Contains(err.Error(), "/dev/stderr") {
		return err
	}
	return nil
}

func fields(module string, details map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(details)+1)
	out = append(out, zap.String("module", module))
	for k, v := range details {
		if err, ok := v.(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, v))
	}
	return out
}
