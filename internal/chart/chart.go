// Package chart renders cleaned price series to PNG images. It is a pure
// sink: series in, image file out.
package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/matchatealeaf/albion-discord-bot/internal/market"
)

const (
	seriesWidth  = 10 * vg.Inch
	seriesHeight = 5 * vg.Inch
)

// RenderSeries draws one line per location and writes a PNG to path.
// Locations are drawn in the given order so colors stay stable between
// renders; empty series are skipped, matching how a market with no data
// simply has no line.
func RenderSeries(title string, series map[string]market.CleanedSeries, order []string, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Silver"
	p.X.Tick.Marker = plot.TimeTicks{Format: "01/02/2006"}
	p.Legend.Top = true

	drawn := 0
	for i, loc := range order {
		pts := series[loc]
		if len(pts) == 0 {
			continue
		}

		line, points, err := plotter.NewLinePoints(toXYs(pts))
		if err != nil {
			return fmt.Errorf("build line for %s: %w", loc, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)

		p.Add(line, points)
		p.Legend.Add(loc, line, points)
		drawn++
	}

	if drawn == 0 {
		return fmt.Errorf("render %q: no data in any series", title)
	}

	if err := p.Save(seriesWidth, seriesHeight, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// RenderGold draws a single gold price line and writes a PNG to path.
func RenderGold(title string, points []market.Point, path string) error {
	if len(points) == 0 {
		return fmt.Errorf("render %q: no data", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Price"
	p.X.Tick.Marker = plot.TimeTicks{Format: "01/02/2006"}

	line, scatter, err := plotter.NewLinePoints(toXYs(points))
	if err != nil {
		return fmt.Errorf("build gold line: %w", err)
	}
	line.Color = plotutil.Color(0)
	scatter.Color = plotutil.Color(0)
	p.Add(line, scatter)

	if err := p.Save(seriesWidth, seriesHeight, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

func toXYs(points []market.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Timestamp.Unix())
		xys[i].Y = float64(pt.Price)
	}
	return xys
}
