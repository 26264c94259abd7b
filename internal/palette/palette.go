package palette

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spreads consecutive hues so neighbouring spawns never look alike.
const goldenAngle = 137.50776405003785

// Generator hands out colours for spawned bodies: evenly spread hues at a fixed chroma and
// lightness in HCL space, so every colour reads equally bright on a black background.
type Generator struct {
	hue       float64
	Chroma    float64
	Lightness float64
}

// NewGenerator returns a generator starting at the given hue in degrees.
func NewGenerator(startHue float64) *Generator {
	return &Generator{hue: math.Mod(startHue, 360), Chroma: 0.6, Lightness: 0.8}
}

// Next returns the next colour (opaque) and advances the hue.
func (g *Generator) Next() color.RGBA {
	c := colorful.Hcl(g.hue, g.Chroma, g.Lightness).Clamped()
	g.hue = math.Mod(g.hue+goldenAngle, 360)
	r, gr, b := c.RGB255()
	return color.RGBA{R: r, G: gr, B: b, A: 255}
}

// ParseHex parses #RGB, #RRGGBB or #RRGGBBAA into a colour. Missing alpha means opaque.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("colour %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexNibble(hex[i]); !ok {
			return color.RGBA{}, fmt.Errorf("colour %q: bad hex digit %q", s, hex[i])
		}
	}
	switch len(hex) {
	case 3:
		return color.RGBA{R: nib(hex[0]) * 17, G: nib(hex[1]) * 17, B: nib(hex[2]) * 17, A: 255}, nil
	case 6:
		return color.RGBA{R: pair(hex[0:2]), G: pair(hex[2:4]), B: pair(hex[4:6]), A: 255}, nil
	case 8:
		return color.RGBA{R: pair(hex[0:2]), G: pair(hex[2:4]), B: pair(hex[4:6]), A: pair(hex[6:8])}, nil
	}
	return color.RGBA{}, fmt.Errorf("colour %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func pair(s string) uint8 { return nib(s[0])<<4 | nib(s[1]) }

func nib(c byte) uint8 {
	n, _ := hexNibble(c)
	return n
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
