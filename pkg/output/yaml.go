package output

import (
	"github.com/mxhf/pyhetdex/pkg/logger"
	"gopkg.in/yaml.v3"
)

func (f *formatter) formatYAML(view View) (string, error) {
	f.log.Debug("Formatting YAML output")

	// Reuse the JSON payload selection for YAML output
	bytes, err := yaml.Marshal(f.payload(view))
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal YAML")
		return "", err
	}

	return string(bytes), nil
}
