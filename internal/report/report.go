// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report computes camera statistics and writes the output document
// consumed by the 3D viewer.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/camera-export/pkg/types"
)

// NewDocument assembles the output document. Records keep their order.
func NewDocument(records []types.CameraRecord) types.OutputDocument {
	cameras := make([]types.CameraRecord, len(records))
	copy(cameras, records)
	return types.OutputDocument{
		Cameras: cameras,
		Metadata: types.Metadata{
			TotalCameras:     len(cameras),
			Description:      types.DocumentDescription,
			CoordinateSystem: types.DocumentCoordinateSystem,
		},
	}
}

// ParseFormat validates a format name. An empty name selects the format
// from the extension of path, falling back to JSON.
func ParseFormat(name, path string) (types.OutputFormat, error) {
	switch strings.ToLower(name) {
	case "json":
		return types.FormatJSON, nil
	case "yaml", "yml":
		return types.FormatYAML, nil
	case "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return types.FormatYAML, nil
		}
		return types.FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported format %q: use json or yaml", name)
}

// Encode renders doc in the given format. JSON is indented by two spaces.
func Encode(doc types.OutputDocument, format types.OutputFormat) ([]byte, error) {
	switch format {
	case types.FormatJSON, "":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return append(data, '\n'), nil
	case types.FormatYAML:
		data, err := yaml.Marshal(&doc)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// Write encodes doc and writes it to path, replacing any existing file.
// Nothing is written if encoding fails.
func Write(path string, doc types.OutputDocument, format types.OutputFormat) error {
	data, err := Encode(doc, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
