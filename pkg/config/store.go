/*
Package config wraps an INI-style key/value store with the list-valued
option accessors used throughout the HETDEX reduction tools. Options hold
plain strings; the accessors in this package reinterpret them as typed
flat lists ("1, 2, 3") or dash-separated pair lists ("3500-4500,
4500-5500"), with optional defaults for missing options.
*/
package config

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// Store is a parsed configuration: named sections holding string-valued
// options.
type Store struct {
	file *ini.File
}

// New returns an empty store.
func New() *Store {
	return &Store{file: ini.Empty()}
}

// Parse builds a store from raw INI data.
func Parse(data []byte) (*Store, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &Store{file: f}, nil
}

// Load reads and parses the configuration file at path.
func Load(fs afero.Fs, path string) (*Store, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	st, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return st, nil
}

// Get returns the raw string value of an option.
func (s *Store) Get(section, option string) (string, error) {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return "", &NoSectionError{Section: section}
	}

	key, err := sec.GetKey(option)
	if err != nil {
		return "", &NoOptionError{Section: section, Option: option}
	}

	return key.String(), nil
}

// HasSection reports whether the section exists.
func (s *Store) HasSection(section string) bool {
	_, err := s.file.GetSection(section)
	return err == nil
}

// HasOption reports whether the option exists in the section.
func (s *Store) HasOption(section, option string) bool {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return false
	}

	return sec.HasKey(option)
}

// AddSection creates a new, empty section. Adding an existing section is
// a no-op.
func (s *Store) AddSection(section string) error {
	if _, err := s.file.NewSection(section); err != nil {
		return fmt.Errorf("failed to add section %q: %w", section, err)
	}

	return nil
}

// Set stores a value for an option, creating the option if needed. The
// section must already exist.
func (s *Store) Set(section, option, value string) error {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return &NoSectionError{Section: section}
	}

	sec.Key(option).SetValue(value)

	return nil
}

// Sections returns the section names, without the implicit default
// section.
func (s *Store) Sections() []string {
	names := s.file.SectionStrings()

	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == ini.DefaultSection {
			continue
		}
		out = append(out, n)
	}

	return out
}

// Options returns the option names of a section.
func (s *Store) Options(section string) ([]string, error) {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return nil, &NoSectionError{Section: section}
	}

	return sec.KeyStrings(), nil
}

// WriteTo writes the store in INI format.
func (s *Store) WriteTo(w io.Writer) error {
	if _, err := s.file.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	return nil
}
