/*
Package output provides formatters for parsed survey files in various formats
including aligned tables, JSON, and YAML. It supports colored output.

Basic usage:

	formatter := output.NewFormatter(output.Config{
		Format:     output.FormatTable,
		WithColors: true,
	}, log)

	result, err := formatter.Format(view)
*/
package output

import (
	"errors"
	"fmt"

	"github.com/mxhf/pyhetdex/pkg/logger"
)

// Format represents the output format type
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Config holds formatter configuration
type Config struct {
	Format     Format
	WithColors bool
}

// View is a renderable snapshot of a parsed survey file.
type View struct {
	// Title is printed above table output. JSON and YAML ignore it.
	Title string

	// Columns holds the table header, one entry per column.
	Columns []string

	// Rows holds the table body.
	Rows [][]string

	// Raw is the value marshaled by the JSON and YAML formatters. When
	// nil the tabular data is marshaled instead.
	Raw interface{}
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(View) (string, error)
}

// formatter implements the Formatter interface
type formatter struct {
	config Config
	log    logger.Logger
}

// NewFormatter creates a new formatter instance
func NewFormatter(config Config, log logger.Logger) Formatter {
	return &formatter{
		config: config,
		log:    log,
	}
}

// Format renders the view according to the configured format
func (f *formatter) Format(view View) (string, error) {
	if len(view.Columns) == 0 && view.Raw == nil {
		msg := "empty view provided for formatting"
		f.log.Error(msg)
		return "", errors.New(msg)
	}

	f.log.WithFields(logger.Fields{
		"format":     f.config.Format,
		"withColors": f.config.WithColors,
	}).Debug("Starting format operation")

	switch f.config.Format {
	case FormatTable:
		return f.formatTable(view)
	case FormatJSON:
		return f.formatJSON(view)
	case FormatYAML:
		return f.formatYAML(view)
	default:
		msg := fmt.Sprintf("unsupported format: %s", f.config.Format)
		f.log.Error(msg)
		return "", errors.New(msg)
	}
}
