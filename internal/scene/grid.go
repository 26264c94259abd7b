package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"gravity-sandbox/internal/raster"
	"gravity-sandbox/internal/viewport"
)

const (
	gridMajorEvery = 5
	minGridSpacing = 8 // pixels; the step is multiplied by gridMajorEvery until lines are this far apart
)

var (
	axisX = color.RGBA{160, 60, 60, 255}
	axisY = color.RGBA{60, 160, 60, 255}
)

// drawGrid draws vertical and horizontal lines every step world units across the visible area,
// brighter every gridMajorEvery lines, with the two axes through the origin in colour.
func drawGrid(sink raster.LineSink, vp *viewport.Viewport, step float64, minor color.RGBA) {
	if !(step > 0) || vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	for step/vp.Scale[0] < minGridSpacing || step/vp.Scale[1] < minGridSpacing {
		step *= gridMajorEvery
	}
	major := brighten(minor)
	lo := vp.ScreenToWorld(0, 0)
	hi := vp.ScreenToWorld(float64(vp.Width), float64(vp.Height))

	for k := math.Ceil(lo[0] / step); k*step <= hi[0]; k++ {
		x, _ := vp.ScreenPoint(mgl64.Vec2{k * step, 0})
		sink.DrawLine(x, 0, x, vp.Height-1, lineColor(k, minor, major, axisY))
	}
	for k := math.Ceil(lo[1] / step); k*step <= hi[1]; k++ {
		_, y := vp.ScreenPoint(mgl64.Vec2{0, k * step})
		sink.DrawLine(0, y, vp.Width-1, y, lineColor(k, minor, major, axisX))
	}
}

func lineColor(k float64, minor, major, axis color.RGBA) color.RGBA {
	switch {
	case k == 0:
		return axis
	case math.Mod(k, gridMajorEvery) == 0:
		return major
	}
	return minor
}

func brighten(c color.RGBA) color.RGBA {
	up := func(v uint8) uint8 { return uint8(min(int(v)*2, 255)) }
	return color.RGBA{up(c.R), up(c.G), up(c.B), c.A}
}
