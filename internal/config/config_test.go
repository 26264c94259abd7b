package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gravity-sandbox/internal/physics"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	p, err := c.PhysicsParams()
	if err != nil {
		t.Fatal(err)
	}
	if p != physics.DefaultParams() {
		t.Errorf("PhysicsParams = %+v, want %+v", p, physics.DefaultParams())
	}
	if c.TimeScale != 2 {
		t.Errorf("default time scale = %d", c.TimeScale)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c != Default() {
		t.Errorf("missing file did not give defaults")
	}
}

func TestLoadKeepsDefaultsForAbsentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	doc := "time_scale: 7\nphysics:\n  merge_mode: momentum\nwindow:\n  width: 800\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.TimeScale = 7
	want.Physics.MergeMode = "momentum"
	want.Window.Width = 800
	if c != want {
		t.Errorf("Load = %+v\nwant   %+v", c, want)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	if err := os.WriteFile(path, []byte("window: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err == nil {
		t.Fatal("bad yaml loaded without error")
	}
	if c != Default() {
		t.Errorf("bad yaml did not fall back to defaults")
	}
}

func TestSaveLoadKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sandbox.yaml")
	c := Default()
	c.Render.Grid = true
	c.Spawn.Color = "#ff0000"
	c.Scenario = "scenarios/binary.yaml"
	if err := Save(path, c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != c {
		t.Errorf("reloaded %+v\nwant     %+v", got, c)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"time scale", func(c *Config) { c.TimeScale = 0 }, "time_scale"},
		{"merge mode", func(c *Config) { c.Physics.MergeMode = "elastic" }, "merge mode"},
		{"merge policy", func(c *Config) { c.Physics.MergePolicy = "halt" }, "merge policy"},
		{"threshold", func(c *Config) { c.Physics.MergeThreshold = 0 }, "threshold"},
		{"zoom", func(c *Config) { c.Controls.ZoomFactor = 0 }, "zoom"},
		{"divisor", func(c *Config) { c.Spawn.VelocityDivisor = 0 }, "velocity_divisor"},
		{"spawn mass", func(c *Config) { c.Spawn.Mass = -1 }, "spawn mass"},
		{"spawn colour", func(c *Config) { c.Spawn.Color = "red" }, "spawn color"},
		{"background", func(c *Config) { c.Render.Background = "#12" }, "background"},
		{"band", func(c *Config) { c.Render.Band = 0 }, "render band"},
		{"grid step", func(c *Config) { c.Render.Grid = true; c.Render.GridStep = 0 }, "grid_step"},
		{"snapshot dt", func(c *Config) { c.Snapshot.DT = 0 }, "snapshot"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(&c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestInputSettingsSpawnColor(t *testing.T) {
	c := Default()
	s, err := c.InputSettings()
	if err != nil || s.SpawnColor != nil {
		t.Fatalf("default spawn colour = %v, %v", s.SpawnColor, err)
	}
	c.Spawn.Color = "#102030"
	s, err = c.InputSettings()
	if err != nil {
		t.Fatal(err)
	}
	if s.SpawnColor == nil || s.SpawnColor.R != 0x10 || s.SpawnColor.B != 0x30 {
		t.Errorf("spawn colour = %v", s.SpawnColor)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SANDBOX_WIDTH":        "640",
		"SANDBOX_TIME_SCALE":   "5",
		"SANDBOX_MERGE_POLICY": "continue",
		"SANDBOX_GRID":         "true",
		"SANDBOX_G":            "1e-10",
		"SANDBOX_HEIGHT":       "tall",
		"OTHER_WIDTH":          "1",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	c := Default()
	err := c.ApplyEnv(lookup)
	if err == nil || !strings.Contains(err.Error(), "SANDBOX_HEIGHT") {
		t.Errorf("ApplyEnv error = %v, want SANDBOX_HEIGHT reported", err)
	}
	if c.Window.Width != 640 || c.TimeScale != 5 || c.Physics.MergePolicy != "continue" || !c.Render.Grid || c.Physics.G != 1e-10 {
		t.Errorf("overrides not applied: %+v", c)
	}
	if c.Window.Height != Default().Window.Height {
		t.Errorf("bad height overwrote the default: %d", c.Window.Height)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	doc := "# comment\n\nSANDBOX_TEST_A=\"quoted value\"\nexport SANDBOX_TEST_B=plain\nSANDBOX_TEST_C=from-file\nnot a pair\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SANDBOX_TEST_C", "from-env")
	t.Setenv("SANDBOX_TEST_A", "")
	os.Unsetenv("SANDBOX_TEST_A")
	t.Setenv("SANDBOX_TEST_B", "")
	os.Unsetenv("SANDBOX_TEST_B")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	for key, want := range map[string]string{
		"SANDBOX_TEST_A": "quoted value",
		"SANDBOX_TEST_B": "plain",
		"SANDBOX_TEST_C": "from-env",
	} {
		if got := os.Getenv(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Errorf("missing .env: %v", err)
	}
}
