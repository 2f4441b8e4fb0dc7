package main

import (
	"io"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SetupLogging initializes the application logger. Logs are always written
// as JSON lines into logFile. Outside production, the same entries are also
// printed to the standard output in a human friendly format. Stacktraces are
// only attached to error level entries.
func SetupLogging(config *Config, logFile io.Writer) (*zap.Logger, func()) {
	var encoderConfig zapcore.EncoderConfig
	if config.IsProduction {
		encoderConfig = zap.NewProductionEncoderConfig()
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.LevelKey = "level"
	encoderConfig.NameKey = "name"
	encoderConfig.MessageKey = "msg"
	encoderConfig.CallerKey = "caller"
	encoderConfig.StacktraceKey = "stacktrace"

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(logFile), config.LogLevel),
	}
	if !config.IsProduction {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), config.LogLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).With(
		zap.String("app.commit", config.GitCommit),
		zap.String("app.tag", config.GitTag),
		zap.String("storage.backend", config.Storage.Backend),
	)

	flusher := func() {
		// syncing stdout fails on some terminals, only the log file matters.
		if err := logger.Sync(); err != nil && config.IsProduction {
			log.Println("error during flushing any buffered log entries:", err)
		}
	}
	return logger, flusher
}
