package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mxhf/pyhetdex/pkg/logger"
)

// formatTable renders the view as an aligned text table
func (f *formatter) formatTable(view View) (string, error) {
	f.log.Debug("Formatting table output")

	var builder strings.Builder

	if view.Title != "" {
		title := view.Title
		if f.config.WithColors {
			f.log.Debug("Applying color formatting")
			c := color.New(color.FgBlue, color.Bold)
			c.EnableColor()
			title = c.Sprint(title)
		}
		builder.WriteString(title)
		builder.WriteString("\n")
	}

	// Color codes confuse the width bookkeeping of tabwriter, so only the
	// title above is ever colored.
	w := tabwriter.NewWriter(&builder, 0, 4, 2, ' ', 0)
	if len(view.Columns) > 0 {
		fmt.Fprintln(w, strings.Join(view.Columns, "\t"))
	}
	for _, row := range view.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to render table")
		return "", err
	}

	return builder.String(), nil
}
