// Package logger builds the application's slog.Logger.
//
// New applies functional options over production-safe defaults (JSON output
// at INFO). The returned logger can inject request-scoped attributes pulled
// from context through ContextExtractor functions, so request ids recorded by
// HTTP middleware show up on every log line without manual plumbing.
//
//	log := logger.New(
//	    logger.WithProduction("carbonshop"),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
package logger
