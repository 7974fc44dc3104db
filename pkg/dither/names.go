package dither

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// HeaderValueFunc reads the value of a header keyword from the file at
// path.
type HeaderValueFunc func(path, key string) (any, error)

// CheckDithers verifies that a repeated argument has either exactly one
// entry or one entry per dither.
func CheckDithers(what string, values []string, ndithers int) error {
	if len(values) != 1 && len(values) != ndithers {
		return &CountError{What: what, Got: len(values), Want: ndithers}
	}

	return nil
}

// FormatNames expands name templates to one name per dither. A single
// template is replicated ndithers times; in each template "{id}" is
// replaced by id and "{dither}" by the 1-based dither number.
func FormatNames(templates []string, id string, ndithers int) []string {
	names := templates
	if len(names) == 1 {
		names = make([]string, ndithers)
		for i := range names {
			names[i] = templates[0]
		}
	}

	out := make([]string, len(names))
	for i, tpl := range names {
		s := strings.ReplaceAll(tpl, "{id}", id)
		s = strings.ReplaceAll(s, "{dither}", strconv.Itoa(i+1))
		out[i] = s
	}

	return out
}

// SortBasenames orders basenames by the value of a header keyword, read
// from each basename with the extension appended. If every value parses
// as a number the sort is numeric, otherwise the string representations
// are compared. The input slice is left untouched.
func SortBasenames(basenames []string, key, extension string, getval HeaderValueFunc) ([]string, error) {
	type entry struct {
		name string
		num  float64
		str  string
	}

	entries := make([]entry, len(basenames))
	numeric := true

	for i, bn := range basenames {
		v, err := getval(bn+extension, key)
		if err != nil {
			return nil, err
		}

		e := entry{name: bn, str: cast.ToString(v)}
		if f, ferr := cast.ToFloat64E(v); ferr == nil {
			e.num = f
		} else {
			numeric = false
		}
		entries[i] = e
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if numeric {
			return entries[i].num < entries[j].num
		}
		return entries[i].str < entries[j].str
	})

	sorted := make([]string, len(entries))
	for i, e := range entries {
		sorted[i] = e.name
	}

	return sorted, nil
}
