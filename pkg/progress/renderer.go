package progress

import (
	"fmt"
	"strings"
	"time"
)

// frame is a single rendered snapshot of the operation.
type frame struct {
	status  Status
	message string
	stats   Statistics
	failed  bool
	done    bool
}

type renderer interface {
	render(frame) string
}

type barRenderer struct {
	width     int
	noColor   bool
	showStats bool
}

func (r *barRenderer) render(f frame) string {
	var output strings.Builder

	// Add message first if it exists
	if f.message != "" {
		switch {
		case !r.noColor && f.failed:
			output.WriteString(fmt.Sprintf("\r\033[31m%s\033[0m\n", f.message)) // Red for errors
		case !r.noColor && f.done:
			output.WriteString(fmt.Sprintf("\r\033[32m%s\033[0m\n", f.message)) // Green for completion
		default:
			output.WriteString(fmt.Sprintf("\r%s\n", f.message))
		}
	}

	// Calculate bar width
	barWidth := r.width - 10 // Reserve space for percentage
	if barWidth < 10 {
		barWidth = 10
	}

	// Calculate progress
	var progress float64
	if f.status.Total > 0 {
		progress = float64(f.status.Current) / float64(f.status.Total)
	}
	if progress > 1 {
		progress = 1
	}

	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	// Build bar
	output.WriteString("[")

	if !r.noColor {
		output.WriteString("\033[32m") // Green color
	}

	output.WriteString(strings.Repeat("=", filled))
	if filled < barWidth {
		output.WriteString(">")
		output.WriteString(strings.Repeat(" ", barWidth-filled-1))
	}

	if !r.noColor {
		output.WriteString("\033[0m") // Reset color
	}

	output.WriteString("]")
	output.WriteString(fmt.Sprintf(" %3.0f%%", progress*100))

	// Add current item if exists
	if f.status.CurrentItem != "" {
		output.WriteString(fmt.Sprintf("\n%s", f.status.CurrentItem))
	}

	// Add stats if enabled
	if r.showStats {
		output.WriteString(fmt.Sprintf("\nWritten: %d/%d | Speed: %.1f/s | ETA: %s",
			f.status.Current,
			f.status.Total,
			f.stats.ProcessingSpeed,
			formatDuration(f.stats.RemainingTime)))
	}

	return output.String()
}

type simpleRenderer struct {
	noColor   bool
	showStats bool
}

func (r *simpleRenderer) render(f frame) string {
	message := f.message
	if !r.noColor {
		switch {
		case f.failed:
			message = fmt.Sprintf("\033[31m%s\033[0m", message) // Red for errors
		case f.done:
			message = fmt.Sprintf("\033[32m%s\033[0m", message) // Green for completion
		}
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("\r%s (%.0f%%)", message, f.stats.ProgressPercentage))

	if f.status.CurrentItem != "" {
		output.WriteString(fmt.Sprintf("\n%s", f.status.CurrentItem))
	}

	if r.showStats {
		output.WriteString(fmt.Sprintf("\nWritten: %d of %d files | %.1f/s",
			f.status.Current,
			f.status.Total,
			f.stats.ProcessingSpeed))
	}

	return output.String()
}

// Helper functions

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds",
			int(d.Minutes()),
			int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm%ds",
		int(d.Hours()),
		int(d.Minutes())%60,
		int(d.Seconds())%60)
}
