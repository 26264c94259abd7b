package scenario

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"gravity-sandbox/internal/palette"
	"gravity-sandbox/internal/physics"
)

// DiscOptions controls procedural disc generation: a central body and Count light bodies on
// circular orbits between Inner and Outer world units from it.
// Seed controls randomness; Seed == 0 uses a time-based seed.
// Octaves, Frequency, Lacunarity and Gain shape the noise that spreads radii and masses.
type DiscOptions struct {
	Count       int
	Inner       float64
	Outer       float64
	CentralMass float64
	Mass        float64 // mean orbiter mass; each orbiter gets between 0.5x and 1.5x
	Radius      float64
	G           float64

	Seed       int64
	Octaves    int
	Frequency  float64
	Lacunarity float64
	Gain       float64
}

// DefaultDiscOptions returns a disc around the built-in scene's central body.
func DefaultDiscOptions() DiscOptions {
	return DiscOptions{
		Count:       24,
		Inner:       150,
		Outer:       600,
		CentralMass: 3e17,
		Mass:        1e4,
		Radius:      8,
		G:           physics.DefaultG,
		Seed:        0,
		Octaves:     4,
		Frequency:   0.35,
		Lacunarity:  2.0,
		Gain:        0.5,
	}
}

// GenerateDisc builds a disc scenario. Orbiters are spread evenly in angle with noise jitter,
// and each starts at circular orbit speed around the central body, all turning the same way.
func GenerateDisc(opts DiscOptions) Scenario {
	def := DefaultDiscOptions()
	if opts.Count < 0 {
		opts.Count = 0
	}
	if opts.Inner <= 0 {
		opts.Inner = def.Inner
	}
	if opts.Outer < opts.Inner {
		opts.Outer = opts.Inner
	}
	if opts.CentralMass <= 0 {
		opts.CentralMass = def.CentralMass
	}
	if opts.Mass <= 0 {
		opts.Mass = def.Mass
	}
	if opts.Radius <= 0 {
		opts.Radius = def.Radius
	}
	if opts.Octaves <= 0 {
		opts.Octaves = 1
	}
	if opts.Frequency <= 0 {
		opts.Frequency = def.Frequency
	}
	if opts.Lacunarity <= 0 {
		opts.Lacunarity = 2.0
	}
	if opts.Gain <= 0 {
		opts.Gain = 0.5
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	colors := palette.NewGenerator(float64(seed % 360))
	sc := Scenario{
		Name:   fmt.Sprintf("disc-%d", seed),
		Centre: &mgl64.Vec2{0, 0},
		Bodies: []BodySpec{
			{Mass: opts.CentralMass, Radius: opts.Radius * 3, ColorHex: palette.Hex(DefaultColor)},
		},
	}
	gm := opts.G * opts.CentralMass
	step := 2 * math.Pi / float64(max(opts.Count, 1))
	for i := 0; i < opts.Count; i++ {
		t := float64(i) * opts.Frequency
		hr := fractalValueNoise2D(t, 0.5, seed, opts.Octaves, opts.Lacunarity, opts.Gain)
		ha := fractalValueNoise2D(t, 7.5, seed, opts.Octaves, opts.Lacunarity, opts.Gain)
		hm := fractalValueNoise2D(t, 13.5, seed, opts.Octaves, opts.Lacunarity, opts.Gain)

		r := opts.Inner + hr*(opts.Outer-opts.Inner)
		angle := float64(i)*step + (ha-0.5)*step
		dir := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
		speed := math.Sqrt(gm / r)

		sc.Bodies = append(sc.Bodies, BodySpec{
			Pos:      dir.Mul(r),
			Vel:      mgl64.Vec2{-dir[1], dir[0]}.Mul(speed),
			Mass:     opts.Mass * (0.5 + hm),
			Radius:   opts.Radius,
			ColorHex: palette.Hex(colors.Next()),
		})
	}
	return sc
}

// fractalValueNoise2D is layered smooth value noise with configurable octaves, lacunarity and
// gain. Output is in [0,1].
func fractalValueNoise2D(x, y float64, seed int64, octaves int, lacunarity, gain float64) float64 {
	var sum, maxAmp float64
	amplitude, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		sum += valueNoise2D(x*freq, y*freq, int32(seed)+int32(i)) * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// valueNoise2D is smooth value noise in [0,1] over a hashed integer lattice.
func valueNoise2D(x, y float64, seed int32) float64 {
	x0 := int32(math.Floor(x))
	y0 := int32(math.Floor(y))
	sx := smoothStep(x - float64(x0))
	sy := smoothStep(y - float64(y0))

	ix0 := lerp(hash2D(x0, y0, seed), hash2D(x0+1, y0, seed), sx)
	ix1 := lerp(hash2D(x0, y0+1, seed), hash2D(x0+1, y0+1, seed), sx)
	return lerp(ix0, ix1, sy)
}

// hash2D maps integer lattice coordinates to a deterministic pseudo-random value in [0,1].
func hash2D(x, y, seed int32) float64 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	return float64(n&0x7fffffff) / 2147483647.0
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// smoothStep is cubic easing: 3t^2 - 2t^3.
func smoothStep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
