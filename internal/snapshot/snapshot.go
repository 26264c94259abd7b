package snapshot

import (
	"context"
	"fmt"
	"image/color"

	"gravity-sandbox/internal/raster"
	"gravity-sandbox/internal/scene"
)

// Options configures a headless run.
type Options struct {
	Frames     int
	DT         float64 // seconds per frame
	Background color.RGBA
	Blend      bool
	Out        string // PNG path; empty skips writing
}

// Result summarises a headless run.
type Result struct {
	Frames int
	Merges int
	Bodies int
}

// Run steps s for opt.Frames frames of opt.DT seconds with no input, then renders the final
// frame at the scene's viewport size and writes it to opt.Out. Cancelling ctx stops between
// frames; the frame reached so far is still written.
func Run(ctx context.Context, s *scene.Scene, opt Options) (Result, error) {
	var res Result
	for res.Frames < opt.Frames {
		if err := ctx.Err(); err != nil {
			break
		}
		res.Merges += s.Step(opt.DT)
		res.Frames++
	}
	res.Bodies = s.Store.Len()

	if opt.Out == "" {
		return res, ctx.Err()
	}
	img := Render(s, opt.Background, opt.Blend)
	if err := img.Save(opt.Out); err != nil {
		return res, fmt.Errorf("snapshot: %w", err)
	}
	return res, ctx.Err()
}

// Render draws the scene into a new image the size of its viewport.
func Render(s *scene.Scene, bg color.RGBA, blend bool) *raster.ImageSink {
	img := raster.NewImageSink(max(s.View.Width, 1), max(s.View.Height, 1))
	img.Blend = blend
	img.Clear(bg)
	s.Draw(img, 0, 0)
	return img
}
