package types

// Logger defines the structured logging interface used throughout strand.
//
// The interface is compatible with zap.SugaredLogger's key/value methods,
// so a zap sugared logger can be passed directly:
//
//	logger, _ := zap.NewProduction()
//	client, _ := strand.NewClient(transport, selector, topo,
//	    strand.WithLogger(logger.Sugar()),
//	)
//
// Implementations must be safe for concurrent use.
type Logger interface {
	// Debug logs a debug-level message with key/value pairs.
	Debug(msg string, args ...any)

	// Info logs an info-level message with key/value pairs.
	Info(msg string, args ...any)

	// Warn logs a warning-level message with key/value pairs.
	Warn(msg string, args ...any)

	// Error logs an error-level message with key/value pairs.
	Error(msg string, args ...any)

	// Fatal logs a fatal-level message with key/value pairs.
	Fatal(msg string, args ...any)
}
