package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/imgio"
)

// ImageSink renders into an in-memory RGBA image. With Blend set, points are composited
// source-over using their alpha; without it alpha is ignored and points are written opaque.
// Pixels outside the image are dropped.
type ImageSink struct {
	Img   *image.RGBA
	Blend bool
}

// NewImageSink returns a blending sink backed by a new width x height image.
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{
		Img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		Blend: true,
	}
}

// Bounds returns the drawable rectangle.
func (s *ImageSink) Bounds() image.Rectangle {
	return s.Img.Bounds()
}

// Clear fills the whole image with bg.
func (s *ImageSink) Clear(bg color.RGBA) {
	draw.Draw(s.Img, s.Img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

// DrawPoint sets one pixel.
func (s *ImageSink) DrawPoint(x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(s.Img.Rect) {
		return
	}
	if !s.Blend || c.A == 255 {
		c.A = 255
		s.Img.SetRGBA(x, y, c)
		return
	}
	dst := s.Img.RGBAAt(x, y)
	a := uint32(c.A)
	inv := 255 - a
	s.Img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(c.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(c.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(c.B)*a + uint32(dst.B)*inv) / 255),
		A: uint8(a + uint32(dst.A)*inv/255),
	})
}

// DrawLine draws a one pixel wide line from (x0,y0) to (x1,y1) with Bresenham's algorithm.
func (s *ImageSink) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		s.DrawPoint(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Save writes the image to path as PNG.
func (s *ImageSink) Save(path string) error {
	if err := imgio.Save(path, s.Img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
