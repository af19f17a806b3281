// Package logger provides structured logging utilities built on Go's standard slog package.
//
// Loggers are created with New and functional options:
//
//	log := logger.New(
//		logger.WithDevelopment("envbridge"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("constants resolved",
//		logger.Component("bootstrap"),
//		logger.Count("defined", 12),
//	)
//
// Development setups write text to stderr at debug level. Production setups
// write JSON at info level. Output always goes to stderr by default so that
// stdout stays free for command output (for example a dotenv dump).
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, so callers can pass
// them unconditionally:
//
//	log.Error("source failed", logger.Error(err), logger.Source("s3"))
//
// Domain helpers cover the bootstrap vocabulary: Constant, Source, Profile.
package logger
