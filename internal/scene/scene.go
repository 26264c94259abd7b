package scene

import (
	"image/color"

	"gravity-sandbox/internal/input"
	"gravity-sandbox/internal/logger"
	"gravity-sandbox/internal/physics"
	"gravity-sandbox/internal/raster"
	"gravity-sandbox/internal/scenario"
	"gravity-sandbox/internal/viewport"
	"gravity-sandbox/internal/world"
)

// Settings configures a Scene.
type Settings struct {
	Physics   physics.Params
	Input     input.Settings
	TimeScale int
	Band      float64 // soft edge width in pixels
	Grid      bool
	GridStep  float64 // world units between minor grid lines
	GridColor color.RGBA
	DragColor color.RGBA
}

// DefaultSettings returns the sandbox defaults with the grid hidden.
func DefaultSettings() Settings {
	return Settings{
		Physics:   physics.DefaultParams(),
		Input:     input.DefaultSettings(),
		TimeScale: 2,
		Band:      raster.DefaultBand,
		GridStep:  100,
		GridColor: color.RGBA{32, 32, 32, 255},
		DragColor: color.RGBA{255, 255, 255, 255},
	}
}

// Stats are running totals since the scene was created.
type Stats struct {
	Frames   uint64
	Substeps uint64
	Merges   uint64
	SimTime  float64 // seconds of simulated time
}

// Scene owns the bodies, the camera and the controller, and runs one frame at a time:
// events first, then TimeScale physics substeps, then drawing. It never touches a window;
// the host hands it events, dt and a sink.
type Scene struct {
	Store      *world.Store
	View       *viewport.Viewport
	Controller *input.Controller
	Stepper    *physics.Stepper

	Band        float64
	GridVisible bool
	GridStep    float64
	GridColor   color.RGBA
	DragColor   color.RGBA

	stats Stats
	log   *logger.Logger
}

// New returns an empty scene for a width x height window. log may be nil.
func New(width, height int, set Settings, log *logger.Logger) *Scene {
	s := world.NewStore(64)
	vp := viewport.New(width, height)
	return &Scene{
		Store:       s,
		View:        vp,
		Controller:  input.NewController(s, vp, set.Input, set.TimeScale),
		Stepper:     physics.NewStepper(set.Physics),
		Band:        set.Band,
		GridVisible: set.Grid,
		GridStep:    set.GridStep,
		GridColor:   set.GridColor,
		DragColor:   set.DragColor,
		log:         log,
	}
}

// SetGridVisible sets whether the world grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Stats returns the running totals.
func (s *Scene) Stats() Stats {
	return s.stats
}

// Quit reports whether a Quit event has been applied.
func (s *Scene) Quit() bool {
	return s.Controller.Quit()
}

func (s *Scene) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Logf(format, args...)
	}
}

// Apply hands events to the controller in arrival order.
func (s *Scene) Apply(events []input.Event) {
	for _, ev := range events {
		eff := s.Controller.Apply(ev)
		if eff.Spawned >= 0 {
			b := s.Store.Body(eff.Spawned)
			s.logf("spawn %d at (%.1f, %.1f) vel (%.2f, %.2f)", eff.Spawned, b.Pos[0], b.Pos[1], b.Vel[0], b.Vel[1])
		}
		if eff.Deleted > 0 {
			s.logf("deleted %d bodies, %d left", eff.Deleted, s.Store.Len())
		}
	}
}

// Step runs TimeScale substeps of dt seconds each and returns how many merges happened.
func (s *Scene) Step(dt float64) int {
	merges := 0
	for k := 0; k < s.Controller.TimeScale(); k++ {
		out := s.Stepper.Advance(s.Store, dt)
		s.stats.Substeps++
		if out.Integrated {
			s.stats.SimTime += dt
		}
		if out.Kind == physics.Merged {
			merges++
			s.logf("collision %d %d", out.Survivor, out.Absorbed)
		}
	}
	s.stats.Frames++
	s.stats.Merges += uint64(merges)
	return merges
}

// Frame applies events and then steps. It returns the number of merges.
func (s *Scene) Frame(events []input.Event, dt float64) int {
	s.Apply(events)
	return s.Step(dt)
}

// Draw renders the grid (when visible), one disk per body in store order, and the drag preview
// from the drag start to the cursor. The caller clears the sink.
func (s *Scene) Draw(sink raster.Sink, cursorX, cursorY int) {
	if s.GridVisible {
		drawGrid(sink, s.View, s.GridStep, s.GridColor)
	}
	for i := 0; i < s.Store.Len(); i++ {
		raster.DrawDisk(sink, s.View, s.Store.Body(i), s.Band)
	}
	if x0, y0, x1, y1, ok := s.Controller.DragPreview(cursorX, cursorY); ok {
		sink.DrawLine(x0, y0, x1, y1, s.DragColor)
	}
}

// Load replaces every body with the scenario's and cancels any drag. A scenario with a centre
// also pans the camera so that point sits in the middle of the window; the zoom is kept.
// On error the scene is unchanged.
func (s *Scene) Load(sc scenario.Scenario) error {
	if err := sc.Apply(s.Store); err != nil {
		return err
	}
	if sc.Centre != nil {
		s.View.View = sc.Centre.Sub(s.View.Pivot)
	}
	s.Controller.Drag = input.DragState{}
	s.logf("loaded scenario %s with %d bodies", sc.Name, s.Store.Len())
	return nil
}

// Clear removes every body.
func (s *Scene) Clear() {
	n := s.Store.Len()
	s.Store.Clear()
	s.Controller.Drag = input.DragState{}
	s.logf("cleared %d bodies", n)
}
