// Package logging provides structured logging for tgen.
//
// It wraps Go's log/slog package to emit JSON lines with persistent context
// attributes. The narrative runs inside a full-screen terminal UI, so logs
// normally go to a debug file in a log directory rather than to stderr.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("phase entered", "phase", "collecting")
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	phaseLogger := logger.WithComponent("controller").WithPhase("finalizing")
//	phaseLogger.Debug("frame", "percent", 42.5)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"frame","component":"controller","phase":"finalizing","percent":42.5}
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] to capture it.
package logging
