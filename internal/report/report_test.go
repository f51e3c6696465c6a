// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pdiddy/camera-export/pkg/types"
)

func record(id int, center [3]float64) types.CameraRecord {
	return types.CameraRecord{
		ID:       id,
		Label:    "Camera_" + string(rune('0'+id)),
		Rotation: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Translation: [3]float64{
			-center[0], -center[1], -center[2],
		},
		Center: center,
		Matrix: [4][4]float64{
			{1, 0, 0, -center[0]},
			{0, 1, 0, -center[1]},
			{0, 0, 1, -center[2]},
			{0, 0, 0, 1},
		},
	}
}

func TestCompute_TwoCameras(t *testing.T) {
	s := Compute([]types.CameraRecord{
		record(0, [3]float64{0, 0, 0}),
		record(1, [3]float64{0, 0, 10}),
	})

	assert.Equal(t, 2, s.Cameras)
	assert.Equal(t, r3.Vec{X: 0, Y: 0, Z: 0}, s.Min)
	assert.Equal(t, r3.Vec{X: 0, Y: 0, Z: 10}, s.Max)
	assert.Equal(t, r3.Vec{X: 0, Y: 0, Z: 5}, s.SceneCenter)

	require.NotNil(t, s.Distances)
	assert.Equal(t, 1, s.Distances.Pairs)
	assert.InDelta(t, 10.0, s.Distances.Min, 1e-12)
	assert.InDelta(t, 10.0, s.Distances.Max, 1e-12)
	assert.InDelta(t, 10.0, s.Distances.Mean, 1e-12)
}

func TestCompute_ThreeCameras(t *testing.T) {
	// A 3-4-5 triangle.
	s := Compute([]types.CameraRecord{
		record(0, [3]float64{0, 0, 0}),
		record(1, [3]float64{3, 0, 0}),
		record(2, [3]float64{3, 4, 0}),
	})

	assert.Equal(t, r3.Vec{X: 0, Y: 0, Z: 0}, s.Min)
	assert.Equal(t, r3.Vec{X: 3, Y: 4, Z: 0}, s.Max)
	assert.InDelta(t, 2.0, s.SceneCenter.X, 1e-12)
	assert.InDelta(t, 4.0/3.0, s.SceneCenter.Y, 1e-12)

	require.NotNil(t, s.Distances)
	assert.Equal(t, 3, s.Distances.Pairs)
	assert.InDelta(t, 3.0, s.Distances.Min, 1e-12)
	assert.InDelta(t, 5.0, s.Distances.Max, 1e-12)
	assert.InDelta(t, 4.0, s.Distances.Mean, 1e-12)
}

func TestCompute_PairCount(t *testing.T) {
	var recs []types.CameraRecord
	for i := 0; i < 6; i++ {
		recs = append(recs, record(i, [3]float64{float64(i), 0, 0}))
	}
	s := Compute(recs)
	require.NotNil(t, s.Distances)
	assert.Equal(t, 15, s.Distances.Pairs)
	assert.InDelta(t, 1.0, s.Distances.Min, 1e-12)
	assert.InDelta(t, 5.0, s.Distances.Max, 1e-12)
}

func TestCompute_SingleCamera(t *testing.T) {
	s := Compute([]types.CameraRecord{record(4, [3]float64{1, -2, 3})})

	assert.Equal(t, 1, s.Cameras)
	assert.Equal(t, r3.Vec{X: 1, Y: -2, Z: 3}, s.Min)
	assert.Equal(t, r3.Vec{X: 1, Y: -2, Z: 3}, s.Max)
	assert.Equal(t, r3.Vec{X: 1, Y: -2, Z: 3}, s.SceneCenter)
	assert.Nil(t, s.Distances)
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)
	assert.Equal(t, Stats{}, s)
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	PrintStats(&buf, Compute([]types.CameraRecord{
		record(0, [3]float64{0, 0, 0}),
		record(1, [3]float64{0, 0, 10}),
	}))

	out := buf.String()
	assert.Contains(t, out, "Camera statistics (2 cameras):")
	assert.Contains(t, out, "Z range:      [0.000, 10.000]")
	assert.Contains(t, out, "Scene center: (0.000, 0.000, 5.000)")
	assert.Contains(t, out, "Distances between cameras (1 pairs):")
	assert.Contains(t, out, "min:  10.000")
	assert.Contains(t, out, "max:  10.000")
	assert.Contains(t, out, "mean: 10.000")
}

func TestPrintStats_SingleCameraHasNoDistances(t *testing.T) {
	var buf bytes.Buffer
	PrintStats(&buf, Compute([]types.CameraRecord{record(0, [3]float64{1, 2, 3})}))

	out := buf.String()
	assert.Contains(t, out, "Scene center: (1.000, 2.000, 3.000)")
	assert.NotContains(t, out, "Distances")
	assert.NotContains(t, out, "mean:")
}

func TestNewDocument(t *testing.T) {
	recs := []types.CameraRecord{record(2, [3]float64{1, 1, 1}), record(1, [3]float64{0, 0, 0})}
	doc := NewDocument(recs)

	assert.Equal(t, 2, doc.Metadata.TotalCameras)
	assert.Equal(t, "Camera poses for virtual tour navigation", doc.Metadata.Description)
	assert.Equal(t, "Right-handed, Y-up (Three.js compatible)", doc.Metadata.CoordinateSystem)
	require.Len(t, doc.Cameras, 2)
	assert.Equal(t, 2, doc.Cameras[0].ID)
	assert.Equal(t, 1, doc.Cameras[1].ID)
}

func TestEncode_JSONShape(t *testing.T) {
	data, err := Encode(NewDocument([]types.CameraRecord{record(0, [3]float64{0, 0, 10})}), types.FormatJSON)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "{\n  \"cameras\": ["), "unexpected indentation: %s", data)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.ElementsMatch(t, []string{"cameras", "metadata"}, keys(raw))

	cams := raw["cameras"].([]any)
	require.Len(t, cams, 1)
	cam := cams[0].(map[string]any)
	assert.ElementsMatch(t, []string{"id", "label", "rotation", "translation", "center", "matrix"}, keys(cam))
	assert.Len(t, cam["rotation"], 3)
	assert.Len(t, cam["matrix"], 4)
	assert.Equal(t, []any{0.0, 0.0, 10.0}, cam["center"])

	meta := raw["metadata"].(map[string]any)
	assert.ElementsMatch(t, []string{"total_cameras", "description", "coordinate_system"}, keys(meta))
	assert.Equal(t, 1.0, meta["total_cameras"])
}

func TestEncode_YAML(t *testing.T) {
	doc := NewDocument([]types.CameraRecord{record(3, [3]float64{1, 2, 3})})
	data, err := Encode(doc, types.FormatYAML)
	require.NoError(t, err)

	var got types.OutputDocument
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, doc, got)
	assert.Contains(t, string(data), "total_cameras: 1")
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	_, err := Encode(NewDocument(nil), "toml")
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name, path string
		want       types.OutputFormat
		wantErr    bool
	}{
		{"json", "out.yaml", types.FormatJSON, false},
		{"YAML", "out.json", types.FormatYAML, false},
		{"yml", "", types.FormatYAML, false},
		{"", "cameras.json", types.FormatJSON, false},
		{"", "cameras.yml", types.FormatYAML, false},
		{"", "cameras", types.FormatJSON, false},
		{"xml", "cameras.xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name, tt.path)
		if tt.wantErr {
			assert.Error(t, err, "ParseFormat(%q, %q)", tt.name, tt.path)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ParseFormat(%q, %q)", tt.name, tt.path)
	}
}

func TestWrite_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cameras.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale ", 1000)), 0o644))

	doc := NewDocument([]types.CameraRecord{record(0, [3]float64{0, 0, 0})})
	require.NoError(t, Write(path, doc, types.FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")

	var got types.OutputDocument
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, doc, got)
}

func TestWrite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "cameras.json")
	err := Write(path, NewDocument(nil), types.FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing")
}

func TestWrite_NonFiniteLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cameras.json")
	rec := record(0, [3]float64{0, 0, 0})
	rec.Center[0] = math.Inf(1)

	err := Write(path, NewDocument([]types.CameraRecord{rec}), types.FormatJSON)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
