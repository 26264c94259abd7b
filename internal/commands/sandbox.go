package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"gravity-sandbox/internal/download"
	"gravity-sandbox/internal/logger"
	"gravity-sandbox/internal/physics"
	"gravity-sandbox/internal/scenario"
	"gravity-sandbox/internal/scene"
)

// downloadDir is where "load <url>" saves files.
var downloadDir = download.DefaultDir

// HUD is the overlay the fps and stats commands toggle.
type HUD interface {
	SetShowFPS(bool)
	SetShowStats(bool)
}

// RegisterSandbox adds the sandbox commands to r. hud may be nil when there is no window;
// the fps and stats commands are then not registered.
func RegisterSandbox(r *Registry, s *scene.Scene, log *logger.Logger, hud HUD) {
	{
		fs := NewFlagSet("timescale")
		r.Register("timescale", "timescale N (physics substeps per frame, at least 1)", fs, func() error {
			if fs.NArg() == 0 {
				log.Logf("time scale %d", s.Controller.TimeScale())
				return nil
			}
			n, err := strconv.Atoi(fs.Arg(0))
			if err != nil {
				return fmt.Errorf("timescale: %w", err)
			}
			s.Controller.SetTimeScale(n)
			log.Logf("time scale %d", s.Controller.TimeScale())
			return nil
		})
	}
	{
		fs := NewFlagSet("reset")
		r.Register("reset", "reset (camera back to the origin at scale 1)", fs, func() error {
			s.View.Reset()
			return nil
		})
	}
	{
		fs := NewFlagSet("clear")
		r.Register("clear", "clear (remove every body)", fs, func() error {
			s.Clear()
			return nil
		})
	}
	{
		fs := NewFlagSet("spawn")
		r.Register("spawn", "spawn x y vx vy [mass radius]", fs, func() error {
			if fs.NArg() != 4 && fs.NArg() != 6 {
				return errors.New("spawn: want x y vx vy [mass radius]")
			}
			v := make([]float64, fs.NArg())
			for i := range v {
				f, err := strconv.ParseFloat(fs.Arg(i), 64)
				if err != nil {
					return fmt.Errorf("spawn: %w", err)
				}
				v[i] = f
			}
			mass, radius := s.Controller.Settings.SpawnMass, s.Controller.Settings.SpawnRadius
			if len(v) == 6 {
				mass, radius = v[4], v[5]
			}
			body := scenario.BodySpec{
				Pos:    mgl64.Vec2{v[0], v[1]},
				Vel:    mgl64.Vec2{v[2], v[3]},
				Mass:   mass,
				Radius: radius,
			}
			if err := body.Validate(); err != nil {
				return fmt.Errorf("spawn: %w", err)
			}
			idx := s.Controller.SpawnWith(body.Pos, body.Vel, body.Mass, body.Radius)
			log.Logf("spawn %d at (%.1f, %.1f)", idx, v[0], v[1])
			return nil
		})
	}
	{
		fs := NewFlagSet("load")
		r.Register("load", "load path|url|builtin|disc", fs, func() error {
			if fs.NArg() != 1 {
				return errors.New("load: want one scenario path, URL, builtin or disc")
			}
			name := fs.Arg(0)
			if download.IsURL(name) {
				path, err := download.Fetch(context.Background(), name, downloadDir)
				if err != nil {
					return err
				}
				log.Logf("downloaded %s to %s", name, path)
				name = path
			}
			sc, err := scenario.Resolve(name)
			if err != nil {
				return err
			}
			return s.Load(sc)
		})
	}
	{
		fs := NewFlagSet("generate")
		def := scenario.DefaultDiscOptions()
		count := fs.Int("count", def.Count, "number of orbiting bodies")
		seed := fs.Int64("seed", 0, "noise seed; 0 picks one from the clock")
		inner := fs.Float64("inner", def.Inner, "inner orbit radius")
		outer := fs.Float64("outer", def.Outer, "outer orbit radius")
		r.Register("generate", "generate [--count N] [--seed S] [--inner R] [--outer R]", fs, func() error {
			opts := scenario.DefaultDiscOptions()
			opts.Count, opts.Seed, opts.Inner, opts.Outer = *count, *seed, *inner, *outer
			opts.G = s.Stepper.Params.G
			return s.Load(scenario.GenerateDisc(opts))
		})
	}
	{
		fs := NewFlagSet("grid")
		show := fs.Bool("show", false, "show the world grid")
		hide := fs.Bool("hide", false, "hide the world grid")
		step := fs.Float64("step", 0, "world units between grid lines")
		r.Register("grid", "grid --show|--hide [--step N]", fs, func() error {
			if *step < 0 {
				return fmt.Errorf("grid: step %v must be positive", *step)
			}
			if *step > 0 {
				s.GridStep = *step
			}
			return toggle("grid", *show, *hide, s.SetGridVisible)
		})
	}
	{
		fs := NewFlagSet("merge")
		mode := fs.String("mode", "", "approx or momentum")
		policy := fs.String("policy", "", "skip or continue")
		r.Register("merge", "merge [--mode approx|momentum] [--policy skip|continue]", fs, func() error {
			p := s.Stepper.Params
			if *mode != "" {
				m, err := physics.ParseMergeMode(*mode)
				if err != nil {
					return err
				}
				p.Merge = m
			}
			if *policy != "" {
				pol, err := physics.ParseMergePolicy(*policy)
				if err != nil {
					return err
				}
				p.OnMerge = pol
			}
			s.Stepper.Params = p
			log.Logf("merge mode %s, policy %s", p.Merge, p.OnMerge)
			return nil
		})
	}
	if hud != nil {
		{
			fs := NewFlagSet("fps")
			show := fs.Bool("show", false, "show the FPS and memory counters")
			hide := fs.Bool("hide", false, "hide the FPS and memory counters")
			r.Register("fps", "fps --show|--hide", fs, func() error {
				return toggle("fps", *show, *hide, hud.SetShowFPS)
			})
		}
		{
			fs := NewFlagSet("stats")
			show := fs.Bool("show", false, "show body count, time scale and zoom")
			hide := fs.Bool("hide", false, "hide body count, time scale and zoom")
			r.Register("stats", "stats --show|--hide", fs, func() error {
				return toggle("stats", *show, *hide, hud.SetShowStats)
			})
		}
	}
	{
		fs := NewFlagSet("help")
		r.Register("help", "help [command]", fs, func() error {
			if fs.NArg() > 0 {
				usage, ok := r.Usage(fs.Arg(0))
				if !ok {
					return fmt.Errorf("unknown command: %s", fs.Arg(0))
				}
				log.Log("cmd " + usage)
				return nil
			}
			for _, name := range r.Names() {
				usage, _ := r.Usage(name)
				log.Log("cmd " + usage)
			}
			return nil
		})
	}
}

func toggle(name string, show, hide bool, set func(bool)) error {
	switch {
	case show && hide:
		return fmt.Errorf("%s: --show and --hide are exclusive", name)
	case show:
		set(true)
	case hide:
		set(false)
	default:
		return fmt.Errorf("%s: want --show or --hide", name)
	}
	return nil
}
