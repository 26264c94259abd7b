package scenario

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"gravity-sandbox/internal/palette"
	"gravity-sandbox/internal/world"
)

// Names accepted by Resolve besides file paths.
const (
	BuiltinName = "builtin" // the scene compiled into the binary
	DiscName    = "disc"    // GenerateDisc with default options
)

// DefaultColor is used for bodies with no colour of their own.
var DefaultColor = color.RGBA{255, 255, 255, 255}

// BodySpec is the YAML definition of one initial body (e.g. scenarios/binary.yaml).
// Fields named like world.Body are copied across; ColorHex is parsed separately.
type BodySpec struct {
	Pos      mgl64.Vec2 `yaml:"pos"`
	Vel      mgl64.Vec2 `yaml:"vel,omitempty"`
	Mass     float64    `yaml:"mass"`
	Radius   float64    `yaml:"radius"`
	ColorHex string     `yaml:"color,omitempty"`
}

// Scenario is a named list of initial bodies. Centre, when set, is the world point the camera
// is moved to show at the middle of the window when the scenario is loaded.
type Scenario struct {
	Name   string      `yaml:"name,omitempty"`
	Centre *mgl64.Vec2 `yaml:"centre,omitempty"`
	Bodies []BodySpec  `yaml:"bodies"`
}

// Builtin returns the scene the sandbox starts with: a heavy central body and two light
// bodies on roughly circular orbits around it.
func Builtin() Scenario {
	return Scenario{
		Name:   BuiltinName,
		Centre: &mgl64.Vec2{0, 0},
		Bodies: []BodySpec{
			{Pos: mgl64.Vec2{0, 0}, Mass: 3e17, Radius: 30},
			{Pos: mgl64.Vec2{0, 200}, Vel: mgl64.Vec2{300, 0}, Mass: 1e4, Radius: 20},
			{Pos: mgl64.Vec2{0, 400}, Vel: mgl64.Vec2{200, 0}, Mass: 1e4, Radius: 20},
		},
	}
}

// Load reads a scenario file. The file name is used as the scenario name when the file has none.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

// Resolve returns Builtin for an empty name or BuiltinName, a fresh disc for DiscName, and
// loads the file at name otherwise.
func Resolve(name string) (Scenario, error) {
	switch name {
	case "", BuiltinName:
		return Builtin(), nil
	case DiscName:
		return GenerateDisc(DefaultDiscOptions()), nil
	}
	return Load(name)
}

// Parse decodes and validates a scenario from YAML.
func Parse(data []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("decode: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks a single body: finite position and velocity, finite positive mass and
// radius, and a parseable colour.
func (b BodySpec) Validate() error {
	var errs []error
	if !finite(b.Pos[0]) || !finite(b.Pos[1]) {
		errs = append(errs, fmt.Errorf("position %v must be finite", b.Pos))
	}
	if !finite(b.Vel[0]) || !finite(b.Vel[1]) {
		errs = append(errs, fmt.Errorf("velocity %v must be finite", b.Vel))
	}
	if !(b.Mass > 0) || !finite(b.Mass) {
		errs = append(errs, fmt.Errorf("mass %v must be positive and finite", b.Mass))
	}
	if !(b.Radius > 0) || !finite(b.Radius) {
		errs = append(errs, fmt.Errorf("radius %v must be positive and finite", b.Radius))
	}
	if b.ColorHex != "" {
		if _, err := palette.ParseHex(b.ColorHex); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate checks the centre and every body with BodySpec.Validate.
func (sc Scenario) Validate() error {
	var errs []error
	if c := sc.Centre; c != nil && (!finite(c[0]) || !finite(c[1])) {
		errs = append(errs, fmt.Errorf("centre %v must be finite", *c))
	}
	for i, b := range sc.Bodies {
		if err := b.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("body %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Build converts the specs to bodies.
func (sc Scenario) Build() ([]world.Body, error) {
	out := make([]world.Body, len(sc.Bodies))
	for i, spec := range sc.Bodies {
		if err := copier.Copy(&out[i], &spec); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		out[i].Color = DefaultColor
		if spec.ColorHex != "" {
			c, err := palette.ParseHex(spec.ColorHex)
			if err != nil {
				return nil, fmt.Errorf("body %d: %w", i, err)
			}
			out[i].Color = c
		}
	}
	return out, nil
}

// Apply replaces the contents of s with the scenario's bodies, in order.
// s is left untouched when the scenario is invalid.
func (sc Scenario) Apply(s *world.Store) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	bodies, err := sc.Build()
	if err != nil {
		return err
	}
	s.Clear()
	for _, b := range bodies {
		s.Add(b)
	}
	return nil
}
