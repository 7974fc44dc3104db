package progress

import "time"

// Style represents the type of progress visualization
type Style string

const (
	// StyleBar shows a progress bar with percentage
	StyleBar Style = "bar"

	// StyleSimple shows basic text progress
	StyleSimple Style = "simple"
)

// Config holds the configuration for progress visualization
type Config struct {
	// Style defines how progress should be displayed
	Style Style

	// Width is the maximum width for the progress bar (0 = auto-detect)
	Width int

	// ShowStats enables/disables additional statistics
	ShowStats bool

	// NoColor disables colored output
	NoColor bool

	// RefreshRate defines how often the display updates
	RefreshRate time.Duration

	// HideAfterComplete removes the progress bar after completion
	HideAfterComplete bool
}

// Status represents the current progress state
type Status struct {
	// Files written so far
	Current int64

	// Total files expected
	Total int64

	// Name of the file being written
	CurrentItem string

	// Start time of the operation
	StartTime time.Time
}

// Statistics provides detailed progress information
type Statistics struct {
	StartTime        time.Time
	EstimatedEndTime time.Time
	ElapsedTime      time.Duration
	RemainingTime    time.Duration
	ProcessingSpeed  float64 // Files per second

	ProgressPercentage float64
}

// Progress defines the interface for progress visualization
type Progress interface {
	// Start begins progress visualization with initial message
	Start(message string)

	// Update updates the progress status
	Update(status Status)

	// Complete marks the operation as successfully completed
	Complete(message string)

	// Error marks the operation as failed
	Error(message string)

	// Stop stops progress visualization
	Stop()

	// IsSupportedTerminal checks if terminal supports advanced features
	IsSupportedTerminal() bool
}
