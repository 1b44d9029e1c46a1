// Package chart renders the daily volatility profile as a PNG line plot.
package chart

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"VolProfiler/internal/model"
)

// Render draws the 96 slot values against their bucket start times and
// writes a PNG to path.
func Render(rec *model.DailyVolatilityRecord, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("BTC Volatility (15 min) – %s", rec.Day)
	p.X.Label.Text = "Time (UTC)"
	p.Y.Label.Text = "Volatility (σ)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04"}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, model.SlotCount)
	for i := 0; i < model.SlotCount; i++ {
		start, err := rec.BucketStart(i)
		if err != nil {
			return err
		}
		v := rec.Slots[i]
		if math.IsNaN(v) {
			v = 0
		}
		pts[i] = plotter.XY{X: float64(start.Unix()), Y: v}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build line: %w", err)
	}
	p.Add(line)

	if err := p.Save(12*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// RenderTemp renders to a fresh temporary PNG and returns its path. The
// caller removes the file once the notification attempt is done.
func RenderTemp(rec *model.DailyVolatilityRecord) (string, error) {
	tmp, err := os.CreateTemp("", "volprofile-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()

	if err := Render(rec, path); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
