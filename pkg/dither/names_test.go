package dither

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDithers(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		ndithers int
		wantErr  bool
	}{
		{name: "one entry for three dithers", values: []string{"a"}, ndithers: 3},
		{name: "one entry per dither", values: []string{"a", "b", "c"}, ndithers: 3},
		{name: "single dither", values: []string{"a"}, ndithers: 1},
		{name: "no entries", values: nil, ndithers: 3, wantErr: true},
		{name: "two entries for three dithers", values: []string{"a", "b"}, ndithers: 3, wantErr: true},
		{name: "too many entries", values: []string{"a", "b", "c", "d"}, ndithers: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDithers("basenames", tt.values, tt.ndithers)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var cerr *CountError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "basenames", cerr.What)
			assert.Equal(t, len(tt.values), cerr.Got)
			assert.Equal(t, tt.ndithers, cerr.Want)
		})
	}
}

func TestFormatNames(t *testing.T) {
	tests := []struct {
		name      string
		templates []string
		id        string
		ndithers  int
		want      []string
	}{
		{
			name:      "single template replicated",
			templates: []string{"masterflat_{id}"},
			id:        "046",
			ndithers:  3,
			want:      []string{"masterflat_046", "masterflat_046", "masterflat_046"},
		},
		{
			name:      "dither number substituted",
			templates: []string{"obs_D{dither}_{id}"},
			id:        "046",
			ndithers:  3,
			want:      []string{"obs_D1_046", "obs_D2_046", "obs_D3_046"},
		},
		{
			name:      "one template per dither",
			templates: []string{"first_{id}", "second_{dither}", "third"},
			id:        "075",
			ndithers:  3,
			want:      []string{"first_075", "second_2", "third"},
		},
		{
			name:      "no placeholders",
			templates: []string{"fixed"},
			id:        "046",
			ndithers:  2,
			want:      []string{"fixed", "fixed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatNames(tt.templates, tt.id, tt.ndithers)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortBasenames(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		want   []string
	}{
		{
			name: "numeric values sort numerically",
			values: map[string]any{
				"a_L.fits": "10",
				"b_L.fits": "9",
				"c_L.fits": "1",
			},
			want: []string{"c", "b", "a"},
		},
		{
			name: "string values sort lexicographically",
			values: map[string]any{
				"a_L.fits": "beta",
				"b_L.fits": "alpha",
				"c_L.fits": "gamma",
			},
			want: []string{"b", "a", "c"},
		},
		{
			name: "one non numeric value forces string order",
			values: map[string]any{
				"a_L.fits": "10",
				"b_L.fits": "9",
				"c_L.fits": "x1",
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "native numeric types",
			values: map[string]any{
				"a_L.fits": 3.5,
				"b_L.fits": 2,
				"c_L.fits": 10.0,
			},
			want: []string{"b", "a", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getval := func(path, key string) (any, error) {
				assert.Equal(t, "DITHER", key)

				v, ok := tt.values[path]
				if !ok {
					return nil, fmt.Errorf("no header value for %s", path)
				}
				return v, nil
			}

			basenames := []string{"a", "b", "c"}
			got, err := SortBasenames(basenames, "DITHER", "_L.fits", getval)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"a", "b", "c"}, basenames)
		})
	}
}

func TestSortBasenamesStable(t *testing.T) {
	getval := func(path, key string) (any, error) {
		return "same", nil
	}

	got, err := SortBasenames([]string{"z", "m", "a"}, "DITHER", ".fits", getval)

	require.NoError(t, err)
	assert.Equal(t, []string{"z", "m", "a"}, got)
}

func TestSortBasenamesError(t *testing.T) {
	getval := func(path, key string) (any, error) {
		return nil, fmt.Errorf("missing keyword %s in %s", key, path)
	}

	_, err := SortBasenames([]string{"a", "b"}, "DITHER", ".fits", getval)

	assert.Error(t, err)
}
