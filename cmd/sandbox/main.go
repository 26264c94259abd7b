package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"gravity-sandbox/internal/commands"
	"gravity-sandbox/internal/config"
	"gravity-sandbox/internal/debug"
	"gravity-sandbox/internal/download"
	"gravity-sandbox/internal/graphics"
	"gravity-sandbox/internal/logger"
	"gravity-sandbox/internal/scenario"
	"gravity-sandbox/internal/scene"
	"gravity-sandbox/internal/snapshot"
	"gravity-sandbox/internal/terminal"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "sandbox:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("sandbox", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath, "YAML config file")
	envPath := fs.String("env", ".env", "file of KEY=VALUE lines loaded into the environment")
	saveConfig := fs.String("save-config", "", "write the effective config to this path and exit")
	headless := fs.Bool("headless", false, "run without a window and write the last frame as PNG")

	// Flags below override the config file; defaults shown are only for -help.
	def := config.Default()
	scenarioName := fs.String("scenario", def.Scenario, `scenario file, or "builtin"`)
	width := fs.Int("width", def.Window.Width, "window width in pixels")
	height := fs.Int("height", def.Window.Height, "window height in pixels")
	fullscreen := fs.Bool("fullscreen", def.Window.Fullscreen, "fullscreen window")
	timeScale := fs.Int("timescale", def.TimeScale, "physics substeps per frame")
	logPath := fs.String("log", def.LogPath, "log file")
	frames := fs.Int("frames", def.Snapshot.Frames, "frames to simulate in headless mode")
	dt := fs.Float64("dt", def.Snapshot.DT, "seconds per frame in headless mode")
	out := fs.String("out", def.Snapshot.Out, "PNG written in headless mode")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := config.LoadDotEnv(*envPath); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scenario":
			cfg.Scenario = *scenarioName
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "fullscreen":
			cfg.Window.Fullscreen = *fullscreen
		case "timescale":
			cfg.TimeScale = *timeScale
		case "log":
			cfg.LogPath = *logPath
		case "frames":
			cfg.Snapshot.Frames = *frames
		case "dt":
			cfg.Snapshot.DT = *dt
		case "out":
			cfg.Snapshot.Out = *out
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *saveConfig != "" {
		return config.Save(*saveConfig, cfg)
	}

	log := logger.New(cfg.LogPath)
	scn, err := newScene(cfg, log)
	if err != nil {
		return err
	}

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		res, err := snapshot.Run(ctx, scn, snapshot.Options{
			Frames:     cfg.Snapshot.Frames,
			DT:         cfg.Snapshot.DT,
			Background: cfg.Background(),
			Blend:      cfg.Render.Blend,
			Out:        cfg.Snapshot.Out,
		})
		log.Logf("headless run: %d frames, %d merges, %d bodies left, wrote %s", res.Frames, res.Merges, res.Bodies, cfg.Snapshot.Out)
		return err
	}

	runWindow(cfg, scn, log)
	return nil
}

func newScene(cfg config.Config, log *logger.Logger) (*scene.Scene, error) {
	params, err := cfg.PhysicsParams()
	if err != nil {
		return nil, err
	}
	set, err := cfg.InputSettings()
	if err != nil {
		return nil, err
	}
	st := scene.DefaultSettings()
	st.Physics = params
	st.Input = set
	st.TimeScale = cfg.TimeScale
	st.Band = cfg.Render.Band
	st.Grid = cfg.Render.Grid
	st.GridStep = cfg.Render.GridStep
	st.GridColor = cfg.GridRGBA()

	scn := scene.New(cfg.Window.Width, cfg.Window.Height, st, log)
	name := cfg.Scenario
	if download.IsURL(name) {
		path, err := download.Fetch(context.Background(), name, download.DefaultDir)
		if err != nil {
			return nil, err
		}
		name = path
	}
	sc, err := scenario.Resolve(name)
	if err != nil {
		return nil, err
	}
	if err := scn.Load(sc); err != nil {
		return nil, err
	}
	return scn, nil
}

func runWindow(cfg config.Config, scn *scene.Scene, log *logger.Logger) {
	hud := debug.New()
	hud.SetShowFPS(cfg.Render.ShowFPS)
	hud.SetShowStats(cfg.Render.ShowStats)
	hud.Stats = func() []string {
		st := scn.Stats()
		return []string{
			fmt.Sprintf("Bodies: %d", scn.Store.Len()),
			fmt.Sprintf("Time scale: %d", scn.Controller.TimeScale()),
			fmt.Sprintf("Zoom: %.3gx", 1/scn.View.Scale[0]),
			fmt.Sprintf("Merges: %d", st.Merges),
		}
	}

	reg := commands.NewRegistry()
	commands.RegisterSandbox(reg, scn, log, hud)
	term := terminal.New(log, reg)
	sink := graphics.Sink{Blend: cfg.Render.Blend}
	poller := graphics.NewPoller(scn.View.Width, scn.View.Height)

	update := func() bool {
		term.Update()
		scn.Frame(poller.Poll(!term.IsOpen()), graphics.FrameTime())
		return scn.Quit()
	}
	draw := func() {
		x, y := graphics.Cursor()
		scn.Draw(sink, x, y)
		term.Draw()
		hud.Draw()
	}
	log.Log("sandbox started; press ESC for the console, cmd help lists commands")
	graphics.Run(graphics.Window{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      cfg.Window.Title,
		Fullscreen: cfg.Window.Fullscreen,
		TargetFPS:  cfg.Window.TargetFPS,
		Background: cfg.Background(),
	}, update, draw)
}
