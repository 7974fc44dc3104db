/*
Package logger provides a structured logging solution for the ditherfile
application. It wraps uber-go/zap to provide a simpler interface with
support for different verbosity levels and structured logging.

Basic Usage:

	logger := logger.NewLogger(logger.Config{
	    Verbosity: 0,  // Default level (INFO)
	})

	// Simple logging
	logger.Info("Creating dither files")
	logger.Debug("Resolved IFU position") // Only shown with verbosity >= 1
	logger.Trace("Read fiber row")        // Only shown with verbosity >= 2

Verbosity Levels:

	0: Info, Warn, Error (default)
	1: Debug + Level 0
	2: Trace + Level 1

Structured Logging:

	logger.WithFields(logger.Fields{
	    "component": "dither",
	    "ifuslot":   "046",
	    "dithers":   3,
	}).Info("Dither file written")

Output Example (JSON):

	{
	    "level": "info",
	    "ts": "2024-01-20T15:04:05.000Z",
	    "message": "Dither file written",
	    "component": "dither",
	    "ifuslot": "046",
	    "dithers": 3
	}

Configuration:

	type Config struct {
	    Verbosity int       // Logging verbosity level
	    Output    io.Writer // Output writer (defaults to os.Stderr)
	}

Environment Integration:

	verbosity := 0
	if verbose := os.Getenv("DITHERFILE_VERBOSE"); verbose != "" {
	    verbosity = len(verbose)  // Each 'v' increases verbosity
	}

	logger := logger.NewLogger(logger.Config{
	    Verbosity: verbosity,
	})

Thread Safety:

The logger is safe for concurrent use by multiple goroutines.
All logging methods can be called concurrently.

Error Handling Example:

	if err != nil {
	    logger.WithFields(logger.Fields{
	        "error": err.Error(),
	        "file":  ditherFile,
	    }).Error("Failed to parse dither file")
	}
*/
package logger
