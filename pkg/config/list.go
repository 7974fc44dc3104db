package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Cast converts a raw option token into a typed value.
type Cast[T any] func(string) (T, error)

// ToString passes the token through unchanged.
func ToString(s string) (string, error) {
	return s, nil
}

// ToInt converts the token to an integer.
func ToInt(s string) (int, error) {
	v, err := cast.ToIntE(s)
	if err != nil {
		return 0, &CastError{Token: s, Kind: "int"}
	}

	return v, nil
}

// ToFloat converts the token to a float64.
func ToFloat(s string) (float64, error) {
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, &CastError{Token: s, Kind: "float"}
	}

	return v, nil
}

// booleanStates are the only tokens ToBool accepts, compared
// case-insensitively.
var booleanStates = map[string]bool{
	"1": true, "yes": true, "true": true, "on": true,
	"0": false, "no": false, "false": false, "off": false,
}

// ToBool converts the token to a bool. Accepted true tokens are 1, yes,
// true and on; false tokens are 0, no, false and off. Anything else is a
// CastError.
func ToBool(s string) (bool, error) {
	v, ok := booleanStates[strings.ToLower(s)]
	if !ok {
		return false, &CastError{Token: s, Kind: "bool"}
	}

	return v, nil
}

// List reads an option as a comma-separated list, trimming and casting
// each token. An empty or whitespace-only value yields an empty slice. A
// missing option is a NoOptionError; a missing section is always a
// NoSectionError.
func List[T any](st *Store, section, option string, castTo Cast[T]) ([]T, error) {
	value, err := st.Get(section, option)
	if err != nil {
		return nil, err
	}

	return splitList(section, option, value, castTo)
}

// ListOr behaves like List but returns an empty slice when the option is
// missing. A missing section still fails.
func ListOr[T any](st *Store, section, option string, castTo Cast[T]) ([]T, error) {
	out, err := List(st, section, option, castTo)

	var noOption *NoOptionError
	if errors.As(err, &noOption) {
		return []T{}, nil
	}

	return out, err
}

// Pair holds the two cast halves of one dash-separated group. Both
// fields are nil when the configuration supplied no groups at all.
type Pair[T any] struct {
	First  *T
	Second *T
}

// Pairs reads an option as a comma-separated list of dash-separated
// pairs ("3500-4500, 4500-5500"). Each group must split into exactly two
// tokens. An empty value yields a single all-nil pair.
func Pairs[T any](st *Store, section, option string, castTo Cast[T]) ([]Pair[T], error) {
	value, err := st.Get(section, option)
	if err != nil {
		return nil, err
	}

	return splitPairs(section, option, value, castTo)
}

// PairsOr behaves like Pairs but returns a single all-nil pair when the
// option is missing. A missing section still fails.
func PairsOr[T any](st *Store, section, option string, castTo Cast[T]) ([]Pair[T], error) {
	out, err := Pairs(st, section, option, castTo)

	var noOption *NoOptionError
	if errors.As(err, &noOption) {
		return []Pair[T]{{}}, nil
	}

	return out, err
}

func splitList[T any](section, option, value string, castTo Cast[T]) ([]T, error) {
	out := []T{}
	if strings.TrimSpace(value) == "" {
		return out, nil
	}

	for _, token := range strings.Split(value, ",") {
		v, err := castTo(strings.TrimSpace(token))
		if err != nil {
			return nil, fmt.Errorf("option %q in section %q: %w", option, section, err)
		}
		out = append(out, v)
	}

	return out, nil
}

func splitPairs[T any](section, option, value string, castTo Cast[T]) ([]Pair[T], error) {
	if strings.TrimSpace(value) == "" {
		return []Pair[T]{{}}, nil
	}

	var out []Pair[T]
	for _, group := range strings.Split(value, ",") {
		group = strings.TrimSpace(group)

		halves := strings.Split(group, "-")
		if len(halves) != 2 {
			return nil, &PairError{
				Section: section,
				Option:  option,
				Group:   group,
				Count:   len(halves),
			}
		}

		first, err := castTo(strings.TrimSpace(halves[0]))
		if err != nil {
			return nil, fmt.Errorf("option %q in section %q: %w", option, section, err)
		}
		second, err := castTo(strings.TrimSpace(halves[1]))
		if err != nil {
			return nil, fmt.Errorf("option %q in section %q: %w", option, section, err)
		}

		out = append(out, Pair[T]{First: &first, Second: &second})
	}

	return out, nil
}
