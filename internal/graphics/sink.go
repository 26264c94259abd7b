package graphics

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sink draws points and lines into the current raylib frame. Use it between BeginDrawing
// and EndDrawing. With Blend off every pixel is drawn opaque.
type Sink struct {
	Blend bool
}

// Bounds is the screen rectangle, so disks partly off screen are clipped before drawing.
func (s Sink) Bounds() image.Rectangle {
	return image.Rect(0, 0, rl.GetScreenWidth(), rl.GetScreenHeight())
}

// DrawPoint draws one pixel. Fully transparent pixels are skipped when blending.
func (s Sink) DrawPoint(x, y int, c color.RGBA) {
	if !s.Blend {
		c.A = 255
	} else if c.A == 0 {
		return
	}
	rl.DrawPixel(int32(x), int32(y), c)
}

// DrawLine draws a one pixel wide line.
func (s Sink) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	rl.DrawLine(int32(x0), int32(y0), int32(x1), int32(y1), c)
}
