// Package config provides configuration management for the ditherfile
// application. It handles environment variables, command-line flags, and
// validation of all configuration parameters.
//
// # Configuration Loading
//
// To load the configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
// The following environment variables are supported:
//
//	DITHERFILE_WORKERS      Number of concurrent workers (default: CPU cores)
//	DITHERFILE_RATE_LIMIT   Rate limit for file operations (0 for unlimited)
//	DITHERFILE_ID_TYPE      Identifier space: ifuslot|ifuid|specid
//	DITHERFILE_FWHM         Seeing FWHM written to dither files (default: 1.6)
//	DITHERFILE_EXTENSION    Extension appended to basenames (default: _L.fits)
//	DITHERFILE_OUTFILE      Output file template (default: dither_{id}.txt)
//	DITHERFILE_MODELBASE    Model basename template (default: masterflat_{id})
//	DITHERFILE_NO_PROGRESS  Disable progress reporting (true/false)
//	DITHERFILE_NO_COLOR     Disable colored output (true/false)
//	DITHERFILE_VERBOSE      Verbosity level (number of 'v's)
//
// # Example Usage
//
// Basic usage with default configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Using %d workers\n", cfg.Workers)
//
// Setting environment variables:
//
//	os.Setenv("DITHERFILE_WORKERS", "4")
//	os.Setenv("DITHERFILE_ID_TYPE", "specid")
//	os.Setenv("DITHERFILE_OUTFILE", "shot_{id}.txt")
//
//	cfg, err := config.Load()
//	// ...
//
// # Configuration Validation
//
// The package performs validation on all configuration values:
//   - Workers must be positive and not exceed CPU cores * 4
//   - RateLimit must be non-negative
//   - IDType must be one of: ifuslot, ifuid, specid
//   - FWHM must be positive
//   - Outfile and ModelBase templates must not be empty
//
// # Default Values
//
// The following defaults are applied if not specified:
//   - Workers:    Number of CPU cores
//   - RateLimit:  0 (unlimited)
//   - IDType:     "ifuslot"
//   - FWHM:       1.6
//   - Extension:  "_L.fits"
//   - Outfile:    "dither_{id}.txt"
//   - ModelBase:  "masterflat_{id}"
//   - NoProgress: false
//   - NoColor:    false
//   - Verbose:    0
//
// # Templates
//
// The Outfile and ModelBase values are templates. Two placeholders are
// expanded when files are written:
//
//	{id}      The IFU identifier in the configured identifier space
//	{dither}  The 1-based dither number (basename templates only)
//
// For example, with IFU slot 046:
//
//	DITHERFILE_OUTFILE="dither_{id}.txt"        -> dither_046.txt
//	DITHERFILE_MODELBASE="masterflat_{id}"      -> masterflat_046
//
// # Identifier Spaces
//
// IFUs in the focal plane can be addressed by three different identifiers:
//
//	ifuslot  The mounting slot of the IFU, e.g. 075
//	ifuid    The serial number of the IFU itself
//	specid   The serial number of the spectrograph the IFU feeds
//
// # Error Handling
//
// The package returns detailed error messages for invalid configurations:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    // Error messages are descriptive:
//	    // "workers count must be positive"
//	    // "invalid id type: must be one of [ifuslot ifuid specid]"
//	    // "fwhm must be positive"
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The configuration is immutable after loading and is safe for concurrent
// access across multiple goroutines.
//
// # Performance Considerations
//
// The package uses viper internally for configuration management, which
// provides efficient environment variable parsing and type conversion.
// Configuration loading is designed to be performed once at application
// startup.
//
// Related Packages:
//   - "github.com/mxhf/pyhetdex/pkg/logger"  - Logging package
//   - "github.com/mxhf/pyhetdex/pkg/dither"  - Dither file creation
//   - "github.com/mxhf/pyhetdex/pkg/worker"  - Worker pool implementation
package config
