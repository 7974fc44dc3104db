package dither

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDither = `# basename          modelbase           ditherx dithery seeing norm airmass
SIMDEX-obs-1_D1_046 SIMDEX-obs-1_D1_046   0.00   0.00    1.60  1.00  1.22
SIMDEX-obs-1_D2_046 SIMDEX-obs-1_D2_046   0.61   1.07    1.55  0.98  1.23
SIMDEX-obs-1_D3_046 SIMDEX-obs-1_D3_046   1.23   0.00    1.48  0.95  1.24
`

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()

	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestParse(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "dither.txt", sampleDither)

	s, err := Parse(fs, "dither.txt")
	require.NoError(t, err)

	assert.Equal(t, "dither.txt", s.Filename)
	assert.Equal(t, []string{"D1", "D2", "D3"}, s.Dithers())

	assert.Equal(t, "SIMDEX-obs-1_D2_046", s.Basename["D2"])
	assert.Equal(t, 0.61, s.Dx["D2"])
	assert.Equal(t, 1.07, s.Dy["D2"])
	assert.Equal(t, 1.55, s.Seeing["D2"])
	assert.Equal(t, 0.98, s.Norm["D2"])
	assert.Equal(t, 1.24, s.Airmass["D3"])
}

func TestParseSharedKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "dither.txt", sampleDither)

	s, err := Parse(fs, "dither.txt")
	require.NoError(t, err)
	require.NotEmpty(t, s.Dithers())

	for _, key := range s.Dithers() {
		assert.Contains(t, s.Dx, key)
		assert.Contains(t, s.Dy, key)
		assert.Contains(t, s.Seeing, key)
		assert.Contains(t, s.Norm, key)
		assert.Contains(t, s.Airmass, key)
	}
}

func TestParseSkipsMalformedRows(t *testing.T) {
	content := `# basename modelbase ditherx dithery seeing norm airmass
bn_D1_046 mb_1 0.00 0.00 1.60 1.00 1.22
too short
bn_D2_046 mb_2 0.61 1.07 1.60 1.00 1.22 trailing junk

# a mid file comment that itself has seven fields in it
bn_D3_046 mb_3 1.23 0.00 1.60 1.00 1.22
`
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "dither.txt", content)

	s, err := Parse(fs, "dither.txt")
	require.NoError(t, err)

	assert.Equal(t, []string{"D1", "D3"}, s.Dithers())
}

func TestParseDuplicateKeyKeepsLast(t *testing.T) {
	content := `bn_D1_old mb 0.00 0.00 1.60 1.00 1.22
bn_D1_new mb 0.50 0.25 1.40 0.90 1.30
`
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "dither.txt", content)

	s, err := Parse(fs, "dither.txt")
	require.NoError(t, err)

	assert.Equal(t, []string{"D1"}, s.Dithers())
	assert.Equal(t, "bn_D1_new", s.Basename["D1"])
	assert.Equal(t, 0.5, s.Dx["D1"])
	assert.Equal(t, 1.4, s.Seeing["D1"])
}

func TestParseKeyMatches(t *testing.T) {
	tests := []struct {
		name        string
		basename    string
		wantKey     string
		wantMatches int
	}{
		{
			name:     "single match",
			basename: "SIMDEX-obs-1_D2_046",
			wantKey:  "D2",
		},
		{
			name:     "repeated match counts once",
			basename: "D1_copy_of_D1",
			wantKey:  "D1",
		},
		{
			name:        "no match",
			basename:    "SIMDEX-obs-1_046",
			wantMatches: 0,
		},
		{
			name:        "two distinct matches",
			basename:    "D1_merged_with_D2",
			wantMatches: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "dither.txt",
				tt.basename+" mb 0.00 0.00 1.60 1.00 1.22\n")

			s, err := Parse(fs, "dither.txt")

			if tt.wantKey != "" {
				require.NoError(t, err)
				assert.Equal(t, []string{tt.wantKey}, s.Dithers())
				return
			}

			var kerr *KeyMatchError
			require.ErrorAs(t, err, &kerr)
			assert.Equal(t, tt.basename, kerr.Basename)
			assert.Len(t, kerr.Matches, tt.wantMatches)
			assert.Equal(t, 1, kerr.Line)
		})
	}
}

func TestParseBadValues(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{
			name: "bad ditherx",
			row:  "bn_D1 mb nox 0.00 1.60 1.00 1.22",
			want: `invalid ditherx value "nox"`,
		},
		{
			name: "bad dithery",
			row:  "bn_D1 mb 0.00 noy 1.60 1.00 1.22",
			want: `invalid dithery value "noy"`,
		},
		{
			name: "bad seeing",
			row:  "bn_D1 mb 0.00 0.00 blurry 1.00 1.22",
			want: `invalid seeing value "blurry"`,
		},
		{
			name: "bad norm",
			row:  "bn_D1 mb 0.00 0.00 1.60 none 1.22",
			want: `invalid norm value "none"`,
		},
		{
			name: "bad airmass",
			row:  "bn_D1 mb 0.00 0.00 1.60 1.00 thin",
			want: `invalid airmass value "thin"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "dither.txt", tt.row+"\n")

			_, err := Parse(fs, "dither.txt")

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "dither.txt", perr.Path)
			assert.Equal(t, 1, perr.Line)
			assert.Contains(t, perr.Error(), tt.want)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Parse(fs, "nope.txt")

	assert.Error(t, err)
}

func TestEmpty(t *testing.T) {
	s := Empty()

	assert.Equal(t, []string{"D1"}, s.Dithers())
	assert.Empty(t, s.Filename)
	assert.Equal(t, "", s.Basename["D1"])
	assert.Equal(t, 0.0, s.Dx["D1"])
	assert.Equal(t, 0.0, s.Dy["D1"])
	assert.Equal(t, 1.0, s.Seeing["D1"])
	assert.Equal(t, 1.0, s.Norm["D1"])
	assert.Equal(t, 1.0, s.Airmass["D1"])
}

func TestEmptyIsFresh(t *testing.T) {
	first := Empty()
	first.Dx["D1"] = 99

	second := Empty()

	assert.Equal(t, 0.0, second.Dx["D1"])
}
