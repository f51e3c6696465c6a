// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CameraRecord holds the pose of one enabled camera after conversion.
// Records are built once by the collector and never modified.
type CameraRecord struct {
	// ID is the integer camera identifier from the source document.
	// Duplicate IDs are passed through unchanged.
	ID int `json:"id" yaml:"id"`

	// Label is the camera label, or "Camera_<id>" when the source has none.
	Label string `json:"label" yaml:"label"`

	// Rotation is the row-major 3x3 rotation taken from the transform.
	Rotation [3][3]float64 `json:"rotation" yaml:"rotation"`

	// Translation is the top-right column of the transform. It is not the
	// camera position.
	Translation [3]float64 `json:"translation" yaml:"translation"`

	// Center is the camera position in world coordinates: -Rotation^T * Translation.
	Center [3]float64 `json:"center" yaml:"center"`

	// Matrix is the homogeneous 4x4 transform rebuilt from Rotation and
	// Translation with a bottom row of [0 0 0 1].
	Matrix [4][4]float64 `json:"matrix" yaml:"matrix"`
}

const (
	// DocumentDescription is the fixed description written to every output document.
	DocumentDescription = "Camera poses for virtual tour navigation"

	// DocumentCoordinateSystem names the coordinate convention the viewer expects.
	DocumentCoordinateSystem = "Right-handed, Y-up (Three.js compatible)"
)

// Metadata summarizes an output document.
type Metadata struct {
	TotalCameras     int    `json:"total_cameras" yaml:"total_cameras"`
	Description      string `json:"description" yaml:"description"`
	CoordinateSystem string `json:"coordinate_system" yaml:"coordinate_system"`
}

// OutputDocument is the structure consumed by the 3D viewer.
type OutputDocument struct {
	Cameras  []CameraRecord `json:"cameras" yaml:"cameras"`
	Metadata Metadata       `json:"metadata" yaml:"metadata"`
}
