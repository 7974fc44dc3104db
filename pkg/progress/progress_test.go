package progress

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/mxhf/pyhetdex/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct {
	logs []string
}

func (m *mockLogger) Info(msg string)                               { m.logs = append(m.logs, "INFO: "+msg) }
func (m *mockLogger) Debug(msg string)                              { m.logs = append(m.logs, "DEBUG: "+msg) }
func (m *mockLogger) Error(msg string)                              { m.logs = append(m.logs, "ERROR: "+msg) }
func (m *mockLogger) Warn(msg string)                               { m.logs = append(m.logs, "WARN: "+msg) }
func (m *mockLogger) Trace(msg string)                              { m.logs = append(m.logs, "TRACE: "+msg) }
func (m *mockLogger) WithFields(fields logger.Fields) logger.Logger { return m }

type testWriter struct {
	buffer bytes.Buffer
	mu     sync.Mutex
}

func (w *testWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buffer.Write(p)
}

func (w *testWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buffer.String()
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name       string
		config     Config
		operations func(*testing.T, Progress, chan struct{})
		verify     func(*testing.T, *testWriter, *mockLogger)
	}{
		{
			name: "basic progress bar",
			config: Config{
				Style:       StyleBar,
				Width:       50,
				ShowStats:   false,
				NoColor:     true,
				RefreshRate: 10 * time.Millisecond,
			},
			operations: func(t *testing.T, p Progress, done chan struct{}) {
				defer close(done)

				p.Start("Creating dither files...")
				time.Sleep(20 * time.Millisecond)

				p.Update(Status{
					Current:     1,
					Total:       3,
					CurrentItem: "dither_035.txt",
				})
				time.Sleep(20 * time.Millisecond)

				p.Complete("Created 3 dither files")
				time.Sleep(20 * time.Millisecond)
			},
			verify: func(t *testing.T, w *testWriter, log *mockLogger) {
				output := w.String()

				assert.Contains(t, output, "33%", "Should contain progress percentage")
				assert.Contains(t, output, "dither_035.txt", "Should contain current file")
				assert.Contains(t, output, "Created 3 dither files", "Should contain completion message")
				assert.Contains(t, output, "100%", "Should reach full progress on completion")
			},
		},
		{
			name: "simple progress with stats",
			config: Config{
				Style:       StyleSimple,
				ShowStats:   true,
				NoColor:     true,
				RefreshRate: 10 * time.Millisecond,
			},
			operations: func(t *testing.T, p Progress, done chan struct{}) {
				defer close(done)

				time.Sleep(20 * time.Millisecond)

				p.Update(Status{
					Current:     2,
					Total:       4,
					CurrentItem: "dither_046.txt",
				})
				time.Sleep(20 * time.Millisecond)

				p.Error("Batch creation failed")
				time.Sleep(20 * time.Millisecond)
			},
			verify: func(t *testing.T, w *testWriter, log *mockLogger) {
				output := w.String()

				assert.Contains(t, output, "50%", "Should contain progress percentage")
				assert.Contains(t, output, "Batch creation failed", "Should contain error message")
				assert.Contains(t, output, "2 of 4 files", "Should contain statistics")
			},
		},
		{
			name: "colored completion",
			config: Config{
				Style:       StyleBar,
				Width:       50,
				NoColor:     false,
				RefreshRate: 10 * time.Millisecond,
			},
			operations: func(t *testing.T, p Progress, done chan struct{}) {
				defer close(done)

				p.Start("Creating dither files...")
				p.Update(Status{Current: 1, Total: 1, CurrentItem: "dither_074.txt"})
				p.Complete("Created 1 dither file")
			},
			verify: func(t *testing.T, w *testWriter, log *mockLogger) {
				output := w.String()

				assert.Contains(t, output, "\033[32mCreated 1 dither file\033[0m")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &testWriter{}
			log := &mockLogger{}

			p := New(tt.config, log)
			require.NotNil(t, p, "Progress instance should not be nil")

			p.(*progress).writer = w

			done := make(chan struct{})
			go tt.operations(t, p, done)

			select {
			case <-done:
				time.Sleep(50 * time.Millisecond)
			case <-time.After(1 * time.Second):
				t.Fatal("Test timeout")
			}

			p.Stop()

			tt.verify(t, w, log)
		})
	}
}

func TestProgressEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		setup  func(*progress)
		verify func(*testing.T, *progress, *testWriter)
	}{
		{
			name: "zero total",
			config: Config{
				Style:       StyleBar,
				Width:       40,
				NoColor:     true,
				RefreshRate: time.Millisecond * 10,
			},
			setup: func(p *progress) {
				p.Start("Starting...")
				time.Sleep(time.Millisecond * 20)
				p.Update(Status{Current: 50, Total: 0})
				time.Sleep(time.Millisecond * 20)
			},
			verify: func(t *testing.T, p *progress, w *testWriter) {
				output := w.String()
				assert.Contains(t, output, "0%", "Should show 0% for zero total")
			},
		},
		{
			name: "current exceeds total",
			config: Config{
				Style:       StyleBar,
				Width:       40,
				NoColor:     true,
				RefreshRate: time.Millisecond * 10,
			},
			setup: func(p *progress) {
				p.Start("Starting...")
				time.Sleep(time.Millisecond * 20)
				p.Update(Status{Current: 150, Total: 100})
				time.Sleep(time.Millisecond * 20)
			},
			verify: func(t *testing.T, p *progress, w *testWriter) {
				output := w.String()
				assert.Contains(t, output, "100%", "Should show 100% when current exceeds total")
			},
		},
		{
			name: "rapid updates",
			config: Config{
				Style:       StyleBar,
				Width:       40,
				NoColor:     true,
				RefreshRate: time.Millisecond * 50,
			},
			setup: func(p *progress) {
				p.Start("Starting...")
				for i := 0; i < 100; i++ {
					p.Update(Status{Current: int64(i), Total: 100})
				}
			},
			verify: func(t *testing.T, p *progress, w *testWriter) {
				assert.NotEmpty(t, w.String())
			},
		},
		{
			name: "terminal width adjustment",
			config: Config{
				Style:   StyleBar,
				NoColor: true,
				Width:   0,
			},
			setup: func(p *progress) {
				p.Start("Starting...")
				p.Update(Status{Current: 50, Total: 100})
			},
			verify: func(t *testing.T, p *progress, w *testWriter) {
				assert.NotEmpty(t, w.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &testWriter{}
			log := &mockLogger{}

			p := New(tt.config, log).(*progress)
			p.writer = w

			tt.setup(p)
			time.Sleep(time.Millisecond * 50)
			tt.verify(t, p, w)
			p.Stop()
		})
	}
}

func TestProgressStopAfterComplete(t *testing.T) {
	w := &testWriter{}
	log := &mockLogger{}

	p := New(Config{
		Style:       StyleBar,
		Width:       40,
		NoColor:     true,
		RefreshRate: time.Millisecond * 10,
	}, log)
	p.(*progress).writer = w

	p.Start("Creating dither files...")
	p.Update(Status{Current: 2, Total: 2})
	p.Complete("Created 2 dither files")

	done := make(chan struct{})
	go func() {
		p.Stop()
		p.Stop() // Second call must be a no-op
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestProgressStopWithoutStart(t *testing.T) {
	log := &mockLogger{}

	p := New(Config{Style: StyleSimple, NoColor: true}, log)
	p.(*progress).writer = &testWriter{}

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestBarRendererFill(t *testing.T) {
	r := &barRenderer{width: 30, noColor: true}

	output := r.render(frame{status: Status{Current: 5, Total: 10}})

	assert.Contains(t, output, "[==========>")
	assert.Contains(t, output, " 50%")
}

func TestBarRendererFailedMessage(t *testing.T) {
	r := &barRenderer{width: 30, noColor: false}

	output := r.render(frame{
		message: "Batch creation failed",
		failed:  true,
		status:  Status{Current: 1, Total: 3},
	})

	assert.Contains(t, output, "\033[31mBatch creation failed\033[0m")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0s"},
		{"negative", -time.Second, "0s"},
		{"seconds", 45 * time.Second, "45s"},
		{"minutes", 90 * time.Second, "1m30s"},
		{"hours", 3*time.Hour + 25*time.Minute + 5*time.Second, "3h25m5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}
