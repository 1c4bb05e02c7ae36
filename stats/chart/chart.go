// Package chart renders latency comparison line charts with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/inference-sim/kvbench/stats"
)

// MaxSeries is the number of series one chart compares.
const MaxSeries = 2

// ErrTooManySeries is returned when more than MaxSeries series are given.
var ErrTooManySeries = errors.New("too many series")

// palette holds one color per series slot: blue, then red.
var palette = [MaxSeries]color.RGBA{
	{R: 0, G: 0, B: 255, A: 255},
	{R: 255, G: 0, B: 0, A: 255},
}

// Series is one labeled line of (threads, avg) points.
type Series struct {
	Label   string
	Results []stats.Result
}

// Chart configures one rendered image.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	LogX   bool
	OutDir string
	Width  vg.Length
	Height vg.Length
}

// NewChart returns a chart with the default axis labels and size.
func NewChart(title, outDir string) Chart {
	return Chart{
		Title:  title,
		XLabel: "#threads",
		YLabel: "nano seconds",
		OutDir: outDir,
		Width:  8 * vg.Inch,
		Height: 6 * vg.Inch,
	}
}

// fileNameReplacer keeps a title from naming a path outside OutDir.
var fileNameReplacer = strings.NewReplacer("/", "_", string(filepath.Separator), "_")

// Path is the file the chart is saved to: <OutDir>/<Title>.png, with path
// separators in the title replaced by "_".
func (c Chart) Path() string {
	return filepath.Join(c.OutDir, fileNameReplacer.Replace(c.Title)+".png")
}

// Render draws every series and saves the chart. It reports false, writing
// nothing, when no series is given or any series is empty.
func Render(c Chart, series ...Series) (bool, error) {
	if len(series) > MaxSeries {
		return false, fmt.Errorf("%w: %d given, at most %d", ErrTooManySeries, len(series), MaxSeries)
	}
	if len(series) == 0 {
		return false, nil
	}
	for _, s := range series {
		if len(s.Results) == 0 {
			logrus.Warnf("skipping chart %q: series %q is empty", c.Title, s.Label)
			return false, nil
		}
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	if c.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	for i, s := range series {
		pts, err := points(s.Results, c.LogX)
		if err != nil {
			return false, fmt.Errorf("chart %q series %q: %w", c.Title, s.Label, err)
		}
		line, glyphs, err := plotter.NewLinePoints(pts)
		if err != nil {
			return false, fmt.Errorf("chart %q series %q: %w", c.Title, s.Label, err)
		}
		line.Color = palette[i]
		glyphs.Color = palette[i]
		glyphs.Shape = draw.SquareGlyph{}
		p.Add(line, glyphs)
		if s.Label != "" {
			p.Legend.Add(s.Label, line, glyphs)
		}
	}
	p.Legend.Top = true

	if err := p.Save(c.Width, c.Height, c.Path()); err != nil {
		return false, fmt.Errorf("saving chart %q: %w", c.Title, err)
	}
	logrus.Infof("rendered %s", c.Path())
	return true, nil
}

func points(results []stats.Result, logX bool) (plotter.XYs, error) {
	pts := make(plotter.XYs, len(results))
	for i, r := range results {
		if logX && r.Threads <= 0 {
			return nil, fmt.Errorf("thread count %d cannot be drawn on a log scale", r.Threads)
		}
		pts[i].X = float64(r.Threads)
		pts[i].Y = r.Avg
	}
	return pts, nil
}
