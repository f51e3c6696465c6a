// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/camera-export/pkg/types"
)

// DistanceStats summarizes the Euclidean distances between every unordered
// pair of camera centers.
type DistanceStats struct {
	Pairs int
	Min   float64
	Max   float64
	Mean  float64
}

// Stats summarizes the camera centers of a run.
type Stats struct {
	Cameras int

	// Min and Max are the componentwise bounds of the centers.
	Min r3.Vec
	Max r3.Vec

	// SceneCenter is the componentwise mean of the centers.
	SceneCenter r3.Vec

	// Distances is nil when there are fewer than two cameras.
	Distances *DistanceStats
}

// Compute derives statistics over the centers of records. An empty slice
// yields a zero Stats.
func Compute(records []types.CameraRecord) Stats {
	s := Stats{Cameras: len(records)}
	if len(records) == 0 {
		return s
	}

	centers := make([]r3.Vec, len(records))
	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	zs := make([]float64, len(records))
	for i, r := range records {
		centers[i] = r3.Vec{X: r.Center[0], Y: r.Center[1], Z: r.Center[2]}
		xs[i], ys[i], zs[i] = r.Center[0], r.Center[1], r.Center[2]
	}

	s.Min = r3.Vec{X: floats.Min(xs), Y: floats.Min(ys), Z: floats.Min(zs)}
	s.Max = r3.Vec{X: floats.Max(xs), Y: floats.Max(ys), Z: floats.Max(zs)}
	s.SceneCenter = r3.Vec{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil), Z: stat.Mean(zs, nil)}

	if len(centers) < 2 {
		return s
	}

	dists := make([]float64, 0, len(centers)*(len(centers)-1)/2)
	for i := 0; i < len(centers); i++ {
		for j := i + 1; j < len(centers); j++ {
			dists = append(dists, r3.Norm(r3.Sub(centers[i], centers[j])))
		}
	}
	s.Distances = &DistanceStats{
		Pairs: len(dists),
		Min:   floats.Min(dists),
		Max:   floats.Max(dists),
		Mean:  stat.Mean(dists, nil),
	}
	return s
}

// PrintStats writes the human-readable statistics block to w.
func PrintStats(w io.Writer, s Stats) {
	fmt.Fprintf(w, "\nCamera statistics (%d cameras):\n", s.Cameras)
	if s.Cameras == 0 {
		return
	}
	fmt.Fprintf(w, "  X range:      [%.3f, %.3f]\n", s.Min.X, s.Max.X)
	fmt.Fprintf(w, "  Y range:      [%.3f, %.3f]\n", s.Min.Y, s.Max.Y)
	fmt.Fprintf(w, "  Z range:      [%.3f, %.3f]\n", s.Min.Z, s.Max.Z)
	fmt.Fprintf(w, "  Scene center: (%.3f, %.3f, %.3f)\n", s.SceneCenter.X, s.SceneCenter.Y, s.SceneCenter.Z)

	if d := s.Distances; d != nil {
		fmt.Fprintf(w, "  Distances between cameras (%d pairs):\n", d.Pairs)
		fmt.Fprintf(w, "    min:  %.3f\n", d.Min)
		fmt.Fprintf(w, "    max:  %.3f\n", d.Max)
		fmt.Fprintf(w, "    mean: %.3f\n", d.Mean)
	}
}
