/*
Package config provides configuration management for the ditherfile application.
It handles both environment variables and validation of all configuration parameters.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Environment Variables:

	DITHERFILE_WORKERS      Number of concurrent workers for batch creation
	DITHERFILE_RATE_LIMIT   Rate limit for file operations
	DITHERFILE_ID_TYPE      Identifier space: ifuslot|ifuid|specid
	DITHERFILE_FWHM         Seeing FWHM written to dither files
	DITHERFILE_EXTENSION    Extension appended to basenames for FITS lookups
	DITHERFILE_OUTFILE      Output file template
	DITHERFILE_MODELBASE    Model basename template
	DITHERFILE_NO_PROGRESS  Disable progress reporting
	DITHERFILE_NO_COLOR     Disable colored output
	DITHERFILE_VERBOSE      Verbosity level (number of 'v's)

Default Values:

	Workers:    Number of CPU cores
	RateLimit:  0 (unlimited)
	IDType:     "ifuslot"
	FWHM:       1.6
	Extension:  "_L.fits"
	Outfile:    "dither_{id}.txt"
	ModelBase:  "masterflat_{id}"
*/
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Workers is the number of concurrent workers for batch creation
	Workers int

	// RateLimit is the maximum number of file operations per second (0 for unlimited)
	RateLimit int

	// IDType selects the identifier space IFUs are addressed by
	IDType string

	// FWHM is the seeing full width at half maximum written to dither files
	FWHM float64

	// Extension is appended to basenames when header keywords are read
	Extension string

	// Outfile is the output file template, {id} expands to the IFU id
	Outfile string

	// ModelBase is the model basename template, {id} expands to the IFU id
	ModelBase string

	// NoProgress disables progress reporting
	NoProgress bool

	// NoColor disables colored output
	NoColor bool

	// Verbose sets the verbosity level
	Verbose int
}

// validIDTypes contains the list of supported identifier spaces
var validIDTypes = map[string]bool{
	IDTypeIFUSlot: true,
	IDTypeIFUID:   true,
	IDTypeSpecID:  true,
}

// Load reads configuration from environment variables and validates it
func Load() (Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("rate_limit", 0)
	v.SetDefault("id_type", DefaultIDType)
	v.SetDefault("fwhm", DefaultFWHM)
	v.SetDefault("extension", DefaultExtension)
	v.SetDefault("outfile", DefaultOutfile)
	v.SetDefault("modelbase", DefaultModelBase)
	v.SetDefault("no_progress", false)
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", 0)

	// Configure environment variables
	v.SetEnvPrefix("DITHERFILE")
	v.AutomaticEnv()

	// Map environment variables to config fields
	v.BindEnv("workers")
	v.BindEnv("rate_limit")
	v.BindEnv("id_type")
	v.BindEnv("fwhm")
	v.BindEnv("extension")
	v.BindEnv("outfile")
	v.BindEnv("modelbase")
	v.BindEnv("no_progress")
	v.BindEnv("no_color")
	v.BindEnv("verbose")

	// Process verbosity level from string of 'v's
	if verboseStr := v.GetString("verbose"); verboseStr != "" {
		v.Set("verbose", strings.Count(verboseStr, "v"))
	}

	// Create config instance
	cfg := Config{
		Workers:    v.GetInt("workers"),
		RateLimit:  v.GetInt("rate_limit"),
		IDType:     v.GetString("id_type"),
		FWHM:       v.GetFloat64("fwhm"),
		Extension:  v.GetString("extension"),
		Outfile:    v.GetString("outfile"),
		ModelBase:  v.GetString("modelbase"),
		NoProgress: v.GetBool("no_progress"),
		NoColor:    v.GetBool("no_color"),
		Verbose:    v.GetInt("verbose"),
	}

	// Handle special case for workers=0
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	// Validate workers count
	if c.Workers < 0 {
		return fmt.Errorf("workers count must be positive")
	}
	maxWorkers := runtime.NumCPU() * MaxWorkerMultiplier
	if c.Workers > maxWorkers {
		return fmt.Errorf("workers count cannot exceed system CPU count * 4")
	}

	// Validate rate limit
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}

	// Validate identifier space
	if !validIDTypes[c.IDType] {
		return fmt.Errorf("invalid id type: must be one of [ifuslot ifuid specid]")
	}

	// Validate seeing
	if c.FWHM <= 0 {
		return fmt.Errorf("fwhm must be positive")
	}

	// Validate templates
	if strings.TrimSpace(c.Outfile) == "" {
		return fmt.Errorf("outfile template must not be empty")
	}
	if strings.TrimSpace(c.ModelBase) == "" {
		return fmt.Errorf("modelbase template must not be empty")
	}

	return nil
}

// String returns a string representation of the configuration
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Workers: %d, RateLimit: %d, IDType: %s, FWHM: %g, "+
			"Extension: %s, Outfile: %s, ModelBase: %s, "+
			"NoProgress: %v, NoColor: %v, Verbose: %d}",
		c.Workers, c.RateLimit, c.IDType, c.FWHM,
		c.Extension, c.Outfile, c.ModelBase,
		c.NoProgress, c.NoColor, c.Verbose,
	)
}
