package output

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mxhf/pyhetdex/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements logger.Logger interface for testing
type mockLogger struct {
	logs []string
}

func (m *mockLogger) Info(msg string)                               { m.logs = append(m.logs, "INFO: "+msg) }
func (m *mockLogger) Debug(msg string)                              { m.logs = append(m.logs, "DEBUG: "+msg) }
func (m *mockLogger) Error(msg string)                              { m.logs = append(m.logs, "ERROR: "+msg) }
func (m *mockLogger) Warn(msg string)                               { m.logs = append(m.logs, "WARN: "+msg) }
func (m *mockLogger) Trace(msg string)                              { m.logs = append(m.logs, "TRACE: "+msg) }
func (m *mockLogger) WithFields(fields logger.Fields) logger.Logger { return m }

func createTestView() View {
	return View{
		Title:   "Dither file dither_046.txt",
		Columns: []string{"KEY", "BASENAME", "DX", "DY"},
		Rows: [][]string{
			{"D1", "20180611T054545_046LL_sci", "0.000000", "0.000000"},
			{"D2", "20180611T055249_046LL_sci", "-1.270000", "0.730000"},
			{"D3", "20180611T060006_046LL_sci", "-1.270000", "-0.730000"},
		},
	}
}

func TestFormatter(t *testing.T) {
	tests := []struct {
		name       string
		view       View
		format     Format
		withColors bool
		verify     func(*testing.T, string, *mockLogger)
	}{
		{
			name:   "table format basic",
			view:   createTestView(),
			format: FormatTable,
			verify: func(t *testing.T, output string, log *mockLogger) {
				lines := strings.Split(output, "\n")
				require.GreaterOrEqual(t, len(lines), 5)
				assert.Equal(t, "Dither file dither_046.txt", lines[0])
				assert.Contains(t, lines[1], "KEY")
				assert.Contains(t, lines[1], "BASENAME")
				assert.Contains(t, lines[2], "D1")
				assert.Contains(t, lines[3], "D2")
				assert.Contains(t, lines[4], "D3")
				assert.NotContains(t, output, "\x1b[")
			},
		},
		{
			name:       "table format with colors",
			view:       createTestView(),
			format:     FormatTable,
			withColors: true,
			verify: func(t *testing.T, output string, log *mockLogger) {
				assert.Contains(t, output, "\x1b[34;1m") // Bold blue title
				assert.Contains(t, output, "\x1b[0m")    // Reset
				assert.Contains(t, log.logs, "DEBUG: Applying color formatting")
			},
		},
		{
			name: "table format aligns columns",
			view: View{
				Columns: []string{"CHANNEL", "FIBERS"},
				Rows: [][]string{
					{"L", "224"},
					{"R", "224"},
				},
			},
			format: FormatTable,
			verify: func(t *testing.T, output string, log *mockLogger) {
				lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
				require.Len(t, lines, 3)
				assert.Equal(t, strings.Index(lines[1], "224"), strings.Index(lines[2], "224"))
			},
		},
		{
			name:   "json format from rows",
			view:   createTestView(),
			format: FormatJSON,
			verify: func(t *testing.T, output string, log *mockLogger) {
				assert.Contains(t, output, `"KEY": "D1"`)
				assert.Contains(t, output, `"BASENAME": "20180611T055249_046LL_sci"`)
				assert.NotContains(t, output, "Dither file")
				assert.Contains(t, log.logs, "DEBUG: Formatting JSON output")
			},
		},
		{
			name: "json format from raw value",
			view: View{
				Columns: []string{"IFUSLOT"},
				Raw: struct {
					IFUSlot string `json:"ifuslot"`
					Dithers int    `json:"dithers"`
				}{IFUSlot: "046", Dithers: 3},
			},
			format: FormatJSON,
			verify: func(t *testing.T, output string, log *mockLogger) {
				assert.Contains(t, output, `"ifuslot": "046"`)
				assert.Contains(t, output, `"dithers": 3`)
			},
		},
		{
			name:   "yaml format from rows",
			view:   createTestView(),
			format: FormatYAML,
			verify: func(t *testing.T, output string, log *mockLogger) {
				assert.Contains(t, output, "KEY: D1")
				assert.Contains(t, output, "BASENAME: 20180611T054545_046LL_sci")
				assert.Contains(t, log.logs, "DEBUG: Formatting YAML output")
			},
		},
		{
			name: "yaml format from raw value",
			view: View{
				Columns: []string{"IFUSLOT"},
				Raw: struct {
					IFUSlot string `yaml:"ifuslot"`
					Dithers int    `yaml:"dithers"`
				}{IFUSlot: "046", Dithers: 3},
			},
			format: FormatYAML,
			verify: func(t *testing.T, output string, log *mockLogger) {
				assert.Contains(t, output, "ifuslot:")
				assert.Contains(t, output, "dithers: 3")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &mockLogger{}

			formatter := NewFormatter(Config{
				Format:     tt.format,
				WithColors: tt.withColors,
			}, log)

			output, err := formatter.Format(tt.view)

			require.NoError(t, err)
			require.NotEmpty(t, output)

			tt.verify(t, output, log)
		})
	}
}

func TestFormatterEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		view      View
		format    Format
		wantErr   bool
		errString string
	}{
		{
			name:      "empty view",
			view:      View{},
			format:    FormatTable,
			wantErr:   true,
			errString: "empty view",
		},
		{
			name:      "invalid format",
			view:      createTestView(),
			format:    "invalid",
			wantErr:   true,
			errString: "unsupported format",
		},
		{
			name: "header only table",
			view: View{
				Columns: []string{"KEY", "BASENAME"},
			},
			format:  FormatTable,
			wantErr: false,
		},
		{
			name: "large number of rows",
			view: func() View {
				view := View{Columns: []string{"FIBER", "X", "Y"}}
				for i := 0; i < 1000; i++ {
					view.Rows = append(view.Rows, []string{
						fmt.Sprintf("%d", i+1), "0.0", "0.0",
					})
				}
				return view
			}(),
			format:  FormatTable,
			wantErr: false,
		},
		{
			name: "short row padded in json",
			view: View{
				Columns: []string{"KEY", "BASENAME"},
				Rows:    [][]string{{"D1"}},
			},
			format:  FormatJSON,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &mockLogger{}
			formatter := NewFormatter(Config{Format: tt.format}, log)

			output, err := formatter.Format(tt.view)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)

				hasError := false
				for _, logMsg := range log.logs {
					if strings.HasPrefix(logMsg, "ERROR: ") {
						hasError = true
						break
					}
				}
				assert.True(t, hasError, "Expected error log message not found")
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, output)
			}
		})
	}
}

func TestFormatterShortRowPadding(t *testing.T) {
	log := &mockLogger{}
	formatter := NewFormatter(Config{Format: FormatJSON}, log)

	output, err := formatter.Format(View{
		Columns: []string{"KEY", "BASENAME"},
		Rows:    [][]string{{"D1"}},
	})

	require.NoError(t, err)
	assert.Contains(t, output, `"KEY": "D1"`)
	assert.Contains(t, output, `"BASENAME": ""`)
}
