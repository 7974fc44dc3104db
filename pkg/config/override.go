package config

import (
	"strings"

	"github.com/spf13/cast"
)

// OverrideOptions controls how override keys are matched.
type OverrideOptions struct {
	// Prefix is the first segment override keys must carry
	Prefix string

	// Separator splits a key into prefix, section and option
	Separator string
}

// DefaultOverrideOptions returns the conventional matching scheme:
// keys of the form "setting__section__option".
func DefaultOverrideOptions() *OverrideOptions {
	return &OverrideOptions{
		Prefix:    "setting",
		Separator: "__",
	}
}

// Override copies values from an explicit key/value map into the store.
// Only keys splitting into exactly prefix, section and option are
// considered, and only section/option pairs that already exist are
// updated; everything else is silently ignored. Nil values and empty
// slices are skipped. Slice values are joined with ", ".
func (s *Store) Override(values map[string]any, opts *OverrideOptions) {
	if opts == nil {
		opts = DefaultOverrideOptions()
	}

	for key, value := range values {
		parts := strings.Split(key, opts.Separator)
		if len(parts) != 3 || parts[0] != opts.Prefix {
			continue
		}
		section, option := parts[1], parts[2]

		if !s.HasOption(section, option) {
			continue
		}

		str, ok := stringify(value)
		if !ok {
			continue
		}

		// the section exists, Set cannot fail
		_ = s.Set(section, option, str)
	}
}

// stringify renders an override value as an option string. The second
// return is false for values that must not override anything.
func stringify(v any) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "", false
	case string:
		return value, true
	case []string:
		if len(value) == 0 {
			return "", false
		}
		return strings.Join(value, ", "), true
	case []int:
		if len(value) == 0 {
			return "", false
		}
		return joinCast(value), true
	case []float64:
		if len(value) == 0 {
			return "", false
		}
		return joinCast(value), true
	default:
		return cast.ToString(value), true
	}
}

func joinCast[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = cast.ToString(v)
	}

	return strings.Join(parts, ", ")
}
