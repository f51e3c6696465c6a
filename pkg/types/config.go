// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects how the output document is encoded.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// DefaultOutputPath is used when no output path is given on the command
// line or in configuration.
const DefaultOutputPath = "cameras.json"

// ExportConfig holds the resolved settings for one conversion run.
type ExportConfig struct {
	// InputPath is the camera XML document to read.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the file the output document is written to. An existing
	// file is overwritten.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Format selects the output encoding: json or yaml (default json).
	Format OutputFormat `json:"format" yaml:"format"`

	// PrintStats controls whether the statistics block is printed.
	PrintStats bool `json:"print_stats" yaml:"print_stats"`
}
