// Package logger builds the application's log/slog loggers.
//
// Three factories are provided:
//   - [New] writes JSON to stdout at info level;
//   - [NewDevelopment] writes coloured text to stderr via tint;
//   - [NewWithSentry] writes JSON to stdout and forwards warnings and
//     errors to Sentry.
//
// [FromConfig] picks between them from a [Config] loaded by pkg/config.
//
// # Context Extractors
//
// A [ContextExtractor] pulls one attribute out of the request context on
// every log call, so request-scoped values such as the request id or the
// signed-in user id end up on each record:
//
//	log := logger.FromConfig(cfg.Log,
//		middlewares.RequestIDExtractor(),
//		middlewares.UserIDExtractor(),
//	)
//	log.InfoContext(r.Context(), "blog saved", slog.String("blog_id", b.ID))
//
// [NewLogHandlerDecorator] adds the same behaviour to any slog.Handler.
//
// If the Sentry DSN is empty or Sentry fails to initialize, logging
// continues to stdout only.
package logger
