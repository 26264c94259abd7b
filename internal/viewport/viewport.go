package viewport

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport maps world coordinates to screen pixels and back.
// View is the world offset of the camera, Pivot the screen point zoom scales around
// (the window centre), and Scale the world units per screen pixel on each axis.
// Width and Height are the window size last passed to OnResize.
type Viewport struct {
	View   mgl64.Vec2
	Pivot  mgl64.Vec2
	Scale  mgl64.Vec2
	Width  int
	Height int
}

// New returns a viewport for a width x height window with the camera at the origin and scale 1.
func New(width, height int) *Viewport {
	v := &Viewport{}
	v.OnResize(0, 0, width, height)
	return v
}

// WorldToScreen converts a world point to (fractional) screen coordinates.
func (v *Viewport) WorldToScreen(w mgl64.Vec2) (sx, sy float64) {
	sx = (w[0]-v.View[0]-v.Pivot[0])/v.Scale[0] + v.Pivot[0]
	sy = (w[1]-v.View[1]-v.Pivot[1])/v.Scale[1] + v.Pivot[1]
	return sx, sy
}

// ScreenPoint is WorldToScreen truncated to whole pixels.
func (v *Viewport) ScreenPoint(w mgl64.Vec2) (x, y int) {
	sx, sy := v.WorldToScreen(w)
	return int(sx), int(sy)
}

// ScreenToWorld converts screen coordinates to a world point. The two axes are independent.
func (v *Viewport) ScreenToWorld(sx, sy float64) mgl64.Vec2 {
	return mgl64.Vec2{
		(sx-v.Pivot[0])*v.Scale[0] + v.Pivot[0] + v.View[0],
		(sy-v.Pivot[1])*v.Scale[1] + v.Pivot[1] + v.View[1],
	}
}

// OnResize recentres the camera for a window going from prevW x prevH to newW x newH so the world
// point at the screen centre stays there. A zero previous dimension means there was no previous
// window: the camera goes back to the origin with scale 1.
func (v *Viewport) OnResize(prevW, prevH, newW, newH int) {
	if prevW == 0 || prevH == 0 {
		v.View = mgl64.Vec2{0, 0}
		v.Scale = mgl64.Vec2{1, 1}
	} else {
		v.View[0] += float64(prevW)/2 - float64(newW)/2
		v.View[1] += float64(prevH)/2 - float64(newH)/2
	}
	v.Pivot = mgl64.Vec2{float64(newW) / 2, float64(newH) / 2}
	v.Width = newW
	v.Height = newH
}

// Reset puts the camera back at the origin with scale 1 for the current window size.
func (v *Viewport) Reset() {
	v.OnResize(0, 0, v.Width, v.Height)
}

// Pan moves the camera by d world units.
func (v *Viewport) Pan(d mgl64.Vec2) {
	v.View = v.View.Add(d)
}

// Zoom multiplies the scale on both axes by factor. Values above 1 zoom out. There is no clamp.
// Panics if factor is not positive, since the scale must stay positive.
func (v *Viewport) Zoom(factor float64) {
	if !(factor > 0) {
		panic(fmt.Sprintf("viewport: zoom factor %v must be positive", factor))
	}
	v.Scale = v.Scale.Mul(factor)
}
