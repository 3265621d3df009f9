package kapgain

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// One named logger per concern, all writing to stderr so that stdout stays
// clean for report output.
var (
	calcLog    = zap.NewNop().Sugar()
	ratesLog   = zap.NewNop().Sugar()
	processLog = zap.NewNop().Sugar()
)

// InitLogging configures the package loggers. With verbose the calculation
// and rate loggers emit per-activity debug lines.
func InitLogging(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	calcLog = logger.Named("calculations").Sugar()
	ratesLog = logger.Named("rates").Sugar()
	processLog = logger.Named("process").Sugar()
	return nil
}
