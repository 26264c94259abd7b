package input

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"gravity-sandbox/internal/palette"
	"gravity-sandbox/internal/viewport"
	"gravity-sandbox/internal/world"
)

// Settings are the controller's fixed step sizes and spawn defaults.
type Settings struct {
	PanStep      float64 // screen pixels per key press
	PanBoost     float64 // pan multiplier while ModBoost is held
	ZoomFactor   float64 // scale multiplier per zoom key press
	ZoomBoost    float64 // zoom factor while ModBoost is held
	TimeStep     int     // substeps added or removed per key press
	TimeBoost    int     // substeps added or removed while ModBoost is held
	SpawnDivisor float64 // spawn velocity = drag vector / SpawnDivisor
	SpawnMass    float64
	SpawnRadius  float64
	SpawnColor   *color.RGBA // nil: take colours from the palette generator
}

// DefaultSettings returns the sandbox's standard key steps and spawned body.
func DefaultSettings() Settings {
	return Settings{
		PanStep:      10,
		PanBoost:     5,
		ZoomFactor:   1.1,
		ZoomBoost:    1.5,
		TimeStep:     1,
		TimeBoost:    10,
		SpawnDivisor: 10,
		SpawnMass:    10000,
		SpawnRadius:  20,
	}
}

// DragState is the world point where a spawn drag started. Active is false outside a drag.
type DragState struct {
	Active bool
	Start  mgl64.Vec2
}

// Effect summarises what one event changed, for logging.
type Effect struct {
	Spawned int // index of the new body, or -1
	Deleted int // number of bodies removed
	Quit    bool
}

// Controller turns input events into store and viewport changes. Its only state besides the
// borrowed store and viewport is the drag, the substep count and the spawn colour sequence.
type Controller struct {
	Store     *world.Store
	View      *viewport.Viewport
	Settings  Settings
	Drag      DragState
	timeScale int
	colors    *palette.Generator
	quit      bool
}

// NewController returns a controller with time scale timeScale (at least 1).
func NewController(s *world.Store, vp *viewport.Viewport, set Settings, timeScale int) *Controller {
	return &Controller{
		Store:     s,
		View:      vp,
		Settings:  set,
		timeScale: max(timeScale, 1),
		colors:    palette.NewGenerator(0),
	}
}

// TimeScale returns the number of physics substeps per frame (always >= 1).
func (c *Controller) TimeScale() int {
	return c.timeScale
}

// SetTimeScale sets the substep count, floored at 1.
func (c *Controller) SetTimeScale(n int) {
	c.timeScale = max(n, 1)
}

// Quit reports whether a Quit event has been applied.
func (c *Controller) Quit() bool {
	return c.quit
}

// Apply handles one event synchronously.
func (c *Controller) Apply(ev Event) Effect {
	eff := Effect{Spawned: -1}
	switch e := ev.(type) {
	case Quit:
		c.quit = true
		eff.Quit = true
	case Resize:
		c.View.OnResize(c.View.Width, c.View.Height, e.W, e.H)
	case KeyPress:
		c.key(e)
	case MouseDown:
		switch e.Button {
		case ButtonPrimary:
			c.Drag = DragState{Active: true, Start: c.View.ScreenToWorld(float64(e.X), float64(e.Y))}
		case ButtonSecondary:
			eff.Deleted = c.DeleteAt(c.View.ScreenToWorld(float64(e.X), float64(e.Y)))
		}
	case MouseUp:
		if e.Button == ButtonPrimary && c.Drag.Active {
			release := c.View.ScreenToWorld(float64(e.X), float64(e.Y))
			d := c.Drag.Start.Sub(release)
			k := c.Settings.SpawnDivisor
			eff.Spawned = c.Spawn(c.Drag.Start, mgl64.Vec2{d[0] / k, d[1] / k})
			c.Drag = DragState{}
		}
	}
	return eff
}

func (c *Controller) key(e KeyPress) {
	boost := e.Mods&ModBoost != 0
	pan := c.Settings.PanStep
	zoom := c.Settings.ZoomFactor
	steps := c.Settings.TimeStep
	if boost {
		pan *= c.Settings.PanBoost
		zoom = c.Settings.ZoomBoost
		steps = c.Settings.TimeBoost
	}
	pan *= c.View.Scale[0]

	switch e.Key {
	case KeyLeft:
		c.View.Pan(mgl64.Vec2{-pan, 0})
	case KeyRight:
		c.View.Pan(mgl64.Vec2{pan, 0})
	case KeyUp:
		c.View.Pan(mgl64.Vec2{0, -pan})
	case KeyDown:
		c.View.Pan(mgl64.Vec2{0, pan})
	case KeyZoomIn:
		c.View.Zoom(1 / zoom)
	case KeyZoomOut:
		c.View.Zoom(zoom)
	case KeyFaster:
		c.SetTimeScale(c.timeScale + steps)
	case KeySlower:
		c.SetTimeScale(c.timeScale - steps)
	case KeyReset:
		c.View.Reset()
	}
}

// Spawn adds a body with the default mass and radius at pos moving at vel and returns its index.
func (c *Controller) Spawn(pos, vel mgl64.Vec2) int {
	return c.SpawnWith(pos, vel, c.Settings.SpawnMass, c.Settings.SpawnRadius)
}

// SpawnWith is Spawn with an explicit mass and radius.
func (c *Controller) SpawnWith(pos, vel mgl64.Vec2, mass, radius float64) int {
	col := c.colors.Next()
	if c.Settings.SpawnColor != nil {
		col = *c.Settings.SpawnColor
	}
	return c.Store.Add(world.Body{
		Pos:    pos,
		Vel:    vel,
		Mass:   mass,
		Radius: radius,
		Color:  col,
	})
}

// DeleteAt removes every body whose disk contains p and returns how many were removed.
// A removal moves the last body into the freed slot, so that slot is checked again.
func (c *Controller) DeleteAt(p mgl64.Vec2) int {
	n := 0
	for i := 0; i < c.Store.Len(); {
		d := c.Store.Pos(i).Sub(p)
		r := c.Store.Radius(i)
		if d.Dot(d) < r*r {
			c.Store.Remove(i)
			n++
			continue
		}
		i++
	}
	return n
}

// DragPreview returns the screen-space line from the drag start to the cursor, if a drag is active.
func (c *Controller) DragPreview(cursorX, cursorY int) (x0, y0, x1, y1 int, ok bool) {
	if !c.Drag.Active {
		return 0, 0, 0, 0, false
	}
	x0, y0 = c.View.ScreenPoint(c.Drag.Start)
	return x0, y0, cursorX, cursorY, true
}
