package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/exp/constraints"

	"gravity-sandbox/internal/viewport"
	"gravity-sandbox/internal/world"
)

// DefaultBand is the width in screen pixels of the soft edge over which a disk fades out.
const DefaultBand = 3.0

// maxReach caps the pixel offset from a disk's centre on sinks without bounds.
const maxReach = 1 << 16

// PointSink receives single pixels. Alpha is always supplied; a sink without blending ignores it.
type PointSink interface {
	DrawPoint(x, y int, c color.RGBA)
}

// LineSink receives straight lines in screen pixels.
type LineSink interface {
	DrawLine(x0, y0, x1, y1 int, c color.RGBA)
}

// Sink is a render target that accepts both points and lines.
type Sink interface {
	PointSink
	LineSink
}

// Bounded is implemented by sinks that can only show a finite rectangle. DrawDisk skips
// pixels outside it instead of emitting them.
type Bounded interface {
	Bounds() image.Rectangle
}

// DrawDisk draws b as a filled disk with a soft edge of width band pixels.
// The screen radius is computed per axis so non-uniform zoom works. A pixel at offset (dx, dy)
// from the centre is emitted when dx²+dy² <= srx*sry. Its alpha ramps from 255 at distance
// srx-band to 0 at srx.
func DrawDisk(sink PointSink, vp *viewport.Viewport, b world.Body, band float64) {
	cx, cy := vp.ScreenPoint(b.Pos)
	srx := b.Radius / vp.Scale[0]
	sry := b.Radius / vp.Scale[1]
	limit := srx * sry
	inner := srx - band

	lox, hix := -srx, srx
	loy, hiy := -sry, sry
	if bs, ok := sink.(Bounded); ok {
		r := bs.Bounds()
		lox, hix = max(lox, float64(r.Min.X-cx)), min(hix, float64(r.Max.X-1-cx))
		loy, hiy = max(loy, float64(r.Min.Y-cy)), min(hiy, float64(r.Max.Y-1-cy))
	}
	// Offsets stay in float until they fit an int.
	x0, x1 := int(math.Ceil(clamp(lox, -maxReach, maxReach))), int(math.Floor(clamp(hix, -maxReach, maxReach)))
	y0, y1 := int(math.Ceil(clamp(loy, -maxReach, maxReach))), int(math.Floor(clamp(hiy, -maxReach, maxReach)))

	c := b.Color
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			d2 := float64(dx*dx + dy*dy)
			if d2 > limit {
				continue
			}
			fallout := clamp((math.Sqrt(d2)-inner)/band, 0, 1)
			c.A = uint8(math.Round(255 * (1 - fallout)))
			sink.DrawPoint(cx+dx, cy+dy, c)
		}
	}
}

func clamp[T constraints.Float](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
