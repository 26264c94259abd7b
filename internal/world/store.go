package world

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is one point mass as seen from outside the store. Color is display-only.
type Body struct {
	Pos    mgl64.Vec2 // world units
	Vel    mgl64.Vec2 // world units per second
	Mass   float64
	Radius float64 // world units
	Color  color.RGBA
}

// Store holds every body column-wise. All columns have the same length between method calls;
// only Store methods change them, so callers cannot desynchronize the columns.
// Indices are not stable across Remove: the last body moves into the removed slot.
type Store struct {
	pos    []mgl64.Vec2
	vel    []mgl64.Vec2
	mass   []float64
	radius []float64
	color  []color.RGBA
}

// NewStore returns an empty store with room for capacity bodies before reallocating.
func NewStore(capacity int) *Store {
	return &Store{
		pos:    make([]mgl64.Vec2, 0, capacity),
		vel:    make([]mgl64.Vec2, 0, capacity),
		mass:   make([]float64, 0, capacity),
		radius: make([]float64, 0, capacity),
		color:  make([]color.RGBA, 0, capacity),
	}
}

// Len returns the number of bodies.
func (s *Store) Len() int {
	return len(s.mass)
}

// Add appends b and returns its index (always the previous Len).
func (s *Store) Add(b Body) int {
	s.pos = append(s.pos, b.Pos)
	s.vel = append(s.vel, b.Vel)
	s.mass = append(s.mass, b.Mass)
	s.radius = append(s.radius, b.Radius)
	s.color = append(s.color, b.Color)
	return len(s.mass) - 1
}

// Remove deletes body i by moving the last body into slot i and shrinking by one.
// Removing the last index is a plain truncation. Panics if i is out of range.
func (s *Store) Remove(i int) {
	s.check(i)
	last := len(s.mass) - 1
	if i != last {
		s.pos[i] = s.pos[last]
		s.vel[i] = s.vel[last]
		s.mass[i] = s.mass[last]
		s.radius[i] = s.radius[last]
		s.color[i] = s.color[last]
	}
	s.pos = s.pos[:last]
	s.vel = s.vel[:last]
	s.mass = s.mass[:last]
	s.radius = s.radius[:last]
	s.color = s.color[:last]
}

// Clear removes every body, keeping the allocated capacity.
func (s *Store) Clear() {
	s.pos = s.pos[:0]
	s.vel = s.vel[:0]
	s.mass = s.mass[:0]
	s.radius = s.radius[:0]
	s.color = s.color[:0]
}

// Body returns a copy of body i.
func (s *Store) Body(i int) Body {
	s.check(i)
	return Body{
		Pos:    s.pos[i],
		Vel:    s.vel[i],
		Mass:   s.mass[i],
		Radius: s.radius[i],
		Color:  s.color[i],
	}
}

// Bodies returns a copy of all bodies in index order.
func (s *Store) Bodies() []Body {
	out := make([]Body, s.Len())
	for i := range out {
		out[i] = s.Body(i)
	}
	return out
}

// Pos returns body i's position. i must be in [0, Len()).
func (s *Store) Pos(i int) mgl64.Vec2 { return s.pos[i] }

// Vel returns body i's velocity.
func (s *Store) Vel(i int) mgl64.Vec2 { return s.vel[i] }

// Mass returns body i's mass.
func (s *Store) Mass(i int) float64 { return s.mass[i] }

// Radius returns body i's radius in world units.
func (s *Store) Radius(i int) float64 { return s.radius[i] }

// Color returns body i's draw colour.
func (s *Store) Color(i int) color.RGBA { return s.color[i] }

// SetPos moves body i to p.
func (s *Store) SetPos(i int, p mgl64.Vec2) { s.pos[i] = p }

// SetVel sets body i's velocity.
func (s *Store) SetVel(i int, v mgl64.Vec2) { s.vel[i] = v }

// SetMass sets body i's mass.
func (s *Store) SetMass(i int, m float64) { s.mass[i] = m }

func (s *Store) check(i int) {
	if i < 0 || i >= len(s.mass) {
		panic(fmt.Sprintf("world: body index %d out of range [0,%d)", i, len(s.mass)))
	}
}
