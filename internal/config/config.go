package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gravity-sandbox/internal/input"
	"gravity-sandbox/internal/palette"
	"gravity-sandbox/internal/physics"
	"gravity-sandbox/internal/raster"
)

// DefaultPath is the config file read when no -config flag is given, relative to the working directory.
const DefaultPath = "config/sandbox.yaml"

// Config holds every tunable of the sandbox. Persisted as YAML; flags and SANDBOX_* variables
// override it at startup.
type Config struct {
	Window    Window   `yaml:"window"`
	Physics   Physics  `yaml:"physics"`
	Render    Render   `yaml:"render"`
	Controls  Controls `yaml:"controls"`
	Spawn     Spawn    `yaml:"spawn"`
	Snapshot  Snapshot `yaml:"snapshot"`
	Scenario  string   `yaml:"scenario"` // "builtin" or a path to a scenario file
	LogPath   string   `yaml:"log_path"`
	TimeScale int      `yaml:"time_scale"` // physics substeps per frame
}

type Window struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int    `yaml:"target_fps"`
}

type Physics struct {
	G              float64 `yaml:"g"`
	MergeThreshold float64 `yaml:"merge_threshold"`
	MergeMode      string  `yaml:"merge_mode"`   // approx | momentum
	MergePolicy    string  `yaml:"merge_policy"` // skip | continue
}

type Render struct {
	Band       float64 `yaml:"band"` // width of the soft disk edge in pixels
	Background string  `yaml:"background"`
	Blend      bool    `yaml:"blend"`
	Grid       bool    `yaml:"grid"`
	GridStep   float64 `yaml:"grid_step"` // world units between grid lines
	GridColor  string  `yaml:"grid_color"`
	ShowFPS    bool    `yaml:"show_fps"`
	ShowStats  bool    `yaml:"show_stats"`
}

type Controls struct {
	PanStep    float64 `yaml:"pan_step"`
	PanBoost   float64 `yaml:"pan_boost"`
	ZoomFactor float64 `yaml:"zoom_factor"`
	ZoomBoost  float64 `yaml:"zoom_boost"`
	TimeStep   int     `yaml:"time_step"`
	TimeBoost  int     `yaml:"time_boost"`
}

type Spawn struct {
	Mass            float64 `yaml:"mass"`
	Radius          float64 `yaml:"radius"`
	VelocityDivisor float64 `yaml:"velocity_divisor"`
	Color           string  `yaml:"color,omitempty"` // empty: a new colour per spawn
}

// Snapshot configures headless runs.
type Snapshot struct {
	Frames int     `yaml:"frames"`
	DT     float64 `yaml:"dt"` // seconds per frame
	Out    string  `yaml:"out"`
}

// Default returns the configuration the sandbox runs with when no file exists.
func Default() Config {
	ctl := input.DefaultSettings()
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "gravity sandbox", TargetFPS: 60},
		Physics: Physics{
			G:              physics.DefaultG,
			MergeThreshold: physics.DefaultMergeThreshold,
			MergeMode:      physics.MergeApprox.String(),
			MergePolicy:    physics.SkipIntegration.String(),
		},
		Render: Render{
			Band:       raster.DefaultBand,
			Background: "#000000",
			Blend:      true,
			GridStep:   100,
			GridColor:  "#202020",
		},
		Controls: Controls{
			PanStep:    ctl.PanStep,
			PanBoost:   ctl.PanBoost,
			ZoomFactor: ctl.ZoomFactor,
			ZoomBoost:  ctl.ZoomBoost,
			TimeStep:   ctl.TimeStep,
			TimeBoost:  ctl.TimeBoost,
		},
		Spawn: Spawn{
			Mass:            ctl.SpawnMass,
			Radius:          ctl.SpawnRadius,
			VelocityDivisor: ctl.SpawnDivisor,
		},
		Snapshot:  Snapshot{Frames: 600, DT: 1.0 / 60, Out: "snapshot.png"},
		Scenario:  "builtin",
		LogPath:   "logs/sandbox.txt",
		TimeScale: 2,
	}
}

// Load reads the YAML file at path on top of Default(), so keys missing from the file keep
// their defaults. A missing file is not an error and returns Default().
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate reports every value the sandbox cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.TimeScale < 1 {
		errs = append(errs, fmt.Errorf("time_scale %d must be at least 1", c.TimeScale))
	}
	if _, err := c.PhysicsParams(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.InputSettings(); err != nil {
		errs = append(errs, err)
	}
	if !(c.Render.Band > 0) {
		errs = append(errs, fmt.Errorf("render band %v must be positive", c.Render.Band))
	}
	if c.Render.Grid && !(c.Render.GridStep > 0) {
		errs = append(errs, fmt.Errorf("grid_step %v must be positive", c.Render.GridStep))
	}
	if _, err := palette.ParseHex(c.Render.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	if _, err := palette.ParseHex(c.Render.GridColor); err != nil {
		errs = append(errs, fmt.Errorf("grid_color: %w", err))
	}
	if c.Snapshot.Frames < 0 || !(c.Snapshot.DT > 0) {
		errs = append(errs, fmt.Errorf("snapshot needs frames >= 0 and dt > 0, got %d and %v", c.Snapshot.Frames, c.Snapshot.DT))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// PhysicsParams converts the physics section into stepper parameters.
func (c Config) PhysicsParams() (physics.Params, error) {
	mode, err := physics.ParseMergeMode(c.Physics.MergeMode)
	if err != nil {
		return physics.Params{}, err
	}
	policy, err := physics.ParseMergePolicy(c.Physics.MergePolicy)
	if err != nil {
		return physics.Params{}, err
	}
	p := physics.Params{
		G:              c.Physics.G,
		MergeThreshold: c.Physics.MergeThreshold,
		Merge:          mode,
		OnMerge:        policy,
	}
	return p, p.Validate()
}

// InputSettings converts the controls and spawn sections into controller settings.
func (c Config) InputSettings() (input.Settings, error) {
	s := input.Settings{
		PanStep:      c.Controls.PanStep,
		PanBoost:     c.Controls.PanBoost,
		ZoomFactor:   c.Controls.ZoomFactor,
		ZoomBoost:    c.Controls.ZoomBoost,
		TimeStep:     c.Controls.TimeStep,
		TimeBoost:    c.Controls.TimeBoost,
		SpawnDivisor: c.Spawn.VelocityDivisor,
		SpawnMass:    c.Spawn.Mass,
		SpawnRadius:  c.Spawn.Radius,
	}
	if !(s.ZoomFactor > 0) || !(s.ZoomBoost > 0) {
		return s, fmt.Errorf("zoom factors %v and %v must be positive", s.ZoomFactor, s.ZoomBoost)
	}
	if s.SpawnDivisor == 0 {
		return s, errors.New("spawn velocity_divisor must not be zero")
	}
	if !(s.SpawnMass > 0) || !(s.SpawnRadius > 0) {
		return s, fmt.Errorf("spawn mass %v and radius %v must be positive", s.SpawnMass, s.SpawnRadius)
	}
	if c.Spawn.Color != "" {
		col, err := palette.ParseHex(c.Spawn.Color)
		if err != nil {
			return s, fmt.Errorf("spawn color: %w", err)
		}
		s.SpawnColor = &col
	}
	return s, nil
}

// Background returns the parsed background colour, or black if it does not parse.
func (c Config) Background() color.RGBA {
	return parseOr(c.Render.Background, color.RGBA{0, 0, 0, 255})
}

// GridRGBA returns the parsed grid colour, or dark grey if it does not parse.
func (c Config) GridRGBA() color.RGBA {
	return parseOr(c.Render.GridColor, color.RGBA{32, 32, 32, 255})
}

func parseOr(s string, fallback color.RGBA) color.RGBA {
	col, err := palette.ParseHex(s)
	if err != nil {
		return fallback
	}
	return col
}
