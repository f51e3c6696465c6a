// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export runs one camera conversion end to end: load the camera
// document, collect records, report statistics and write the output
// document.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/camera-export/internal/collect"
	"github.com/pdiddy/camera-export/internal/logger"
	"github.com/pdiddy/camera-export/internal/report"
	"github.com/pdiddy/camera-export/pkg/types"
)

// ErrNoCameras is returned when a document parsed but no camera could be
// converted. No output is written in that case.
var ErrNoCameras = errors.New("no cameras were parsed successfully")

// Summary holds the outcome of a run.
type Summary struct {
	Converted int
	Disabled  int
	Warnings  int
	Failed    int

	// OutputPath is the file written, empty if nothing was written.
	OutputPath string

	Stats report.Stats
}

// Run converts cfg.InputPath and writes the output document to
// cfg.OutputPath (cameras.json when empty). Progress, per-camera issues and
// the statistics block are printed to w. The output file is written once,
// after all cameras have been collected.
func Run(cfg types.ExportConfig, w io.Writer) (Summary, error) {
	outPath := cfg.OutputPath
	if outPath == "" {
		outPath = types.DefaultOutputPath
	}
	format, err := report.ParseFormat(string(cfg.Format), outPath)
	if err != nil {
		return Summary{}, err
	}

	res, err := collectCameras(cfg.InputPath, w)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Converted: res.Converted(),
		Disabled:  res.Disabled,
		Warnings:  res.Warnings(),
		Failed:    res.Failed(),
	}
	if summary.Converted == 0 {
		return summary, ErrNoCameras
	}

	summary.Stats = report.Compute(res.Records)
	if cfg.PrintStats {
		report.PrintStats(w, summary.Stats)
	}

	logger.Section("Write")
	logger.Info("writing %d cameras as %s to %s", summary.Converted, format, outPath)
	if err := report.Write(outPath, report.NewDocument(res.Records), format); err != nil {
		return summary, err
	}
	summary.OutputPath = outPath

	fmt.Fprintf(w, "Camera data saved to: %s\n", outPath)
	return summary, nil
}

// Inspect collects cameras from input and prints their statistics without
// writing any output.
func Inspect(input string, w io.Writer) (report.Stats, error) {
	res, err := collectCameras(input, w)
	if err != nil {
		return report.Stats{}, err
	}
	if res.Converted() == 0 {
		return report.Stats{}, ErrNoCameras
	}

	stats := report.Compute(res.Records)
	report.PrintStats(w, stats)
	return stats, nil
}

func collectCameras(input string, w io.Writer) (collect.Result, error) {
	fmt.Fprintf(w, "Parsing camera data from: %s\n", input)

	logger.Section("Load")
	doc, err := collect.Load(input)
	if err != nil {
		return collect.Result{}, err
	}
	logger.Info("root element <%s>", doc.Root().Tag)

	logger.Section("Collect")
	res := collect.Cameras(doc)
	logger.Info("%d converted, %d disabled, %d warnings, %d failed",
		res.Converted(), res.Disabled, res.Warnings(), res.Failed())

	res.PrintIssues(w)
	fmt.Fprintf(w, "Successfully parsed %d cameras\n", res.Converted())
	return res, nil
}
