package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogger builds the standard logger: JSON logfiles split by
// severity plus console output, with sub-info levels only in debug mode
func DefaultLogger(debug bool, logDir string) (*zap.Logger, error) {
	logDir = strings.TrimSpace(logDir)
	if logDir == "" {
		return nil, errors.New("empty log directory path")
	}

	if err := CreateDirectoryIfNotExists(logDir, 0755); err != nil {
		return nil, err
	}

	errFile, err := openLogFile(filepath.Join(logDir, "errors.log"))
	if err != nil {
		return nil, err
	}

	stdFile, err := openLogFile(filepath.Join(logDir, "standard.log"))
	if err != nil {
		return nil, err
	}

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		if !debug && lvl < zapcore.InfoLevel {
			return false
		}

		return lvl < zapcore.ErrorLevel
	})

	fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	consoleEncoder := zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig())
	if debug {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	core := zapcore.NewTee(
		zapcore.NewCore(fileEncoder, zapcore.Lock(zapcore.AddSync(errFile)), highPriority),
		zapcore.NewCore(fileEncoder, zapcore.Lock(zapcore.AddSync(stdFile)), lowPriority),
		zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(os.Stderr)), highPriority),
		zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(os.Stdout)), lowPriority),
	)

	return zap.New(core), nil
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %s", path, err)
	}

	return f, nil
}
