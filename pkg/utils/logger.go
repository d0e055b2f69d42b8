package utils

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger writes to a rotating file under path and to console. Console
// output goes to stderr since stdout carries command results.
func InitLogger(path string, debug bool) (*zap.Logger, error) {
	return newLogger(path, debug, os.Stderr)
}

func newLogger(path string, debug bool, console io.Writer) (*zap.Logger, error) {
	if path != "" {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, err
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	if debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.CallerKey = "caller"
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	consoleEncoder := zapcore.NewJSONEncoder(encoderConfig)
	if debug {
		consoleEncoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	// Console stays quiet unless debugging; the file gets everything from info up.
	fileLevel := zap.InfoLevel
	consoleLevel := zap.WarnLevel
	if debug {
		fileLevel = zap.DebugLevel
		consoleLevel = zap.DebugLevel
	}

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(path, "storefront.log"),
		MaxSize:    10, // MB
		MaxBackups: 7,
		MaxAge:     28, // days
		Compress:   true,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(fileEncoder, fileWriter, fileLevel),
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(console), consoleLevel),
	)

	return zap.New(core, zap.AddCaller()), nil
}
