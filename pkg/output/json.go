package output

import (
	"encoding/json"

	"github.com/mxhf/pyhetdex/pkg/logger"
)

func (f *formatter) formatJSON(view View) (string, error) {
	f.log.Debug("Formatting JSON output")

	bytes, err := json.MarshalIndent(f.payload(view), "", "  ")
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal JSON")
		return "", err
	}

	return string(bytes), nil
}

// payload picks the value serialized by the structured formatters. Views
// without a raw value fall back to one map per table row, keyed by column
// name and padded with empty strings when a row is short.
func (f *formatter) payload(view View) interface{} {
	if view.Raw != nil {
		return view.Raw
	}

	rows := make([]map[string]string, 0, len(view.Rows))
	for _, row := range view.Rows {
		entry := make(map[string]string, len(view.Columns))
		for i, col := range view.Columns {
			if i < len(row) {
				entry[col] = row[i]
			} else {
				entry[col] = ""
			}
		}
		rows = append(rows, entry)
	}

	return rows
}
