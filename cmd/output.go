package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// writeResult encodes v in the requested format
func writeResult(w io.Writer, v any, format string) error {
	switch format {
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()

		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode result as YAML: %w", err)
		}

		return nil
	case OutputFormatJSON, "":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode result as JSON: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("invalid output format: %s", format)
	}
}
