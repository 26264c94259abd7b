package commands

import (
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"gravity-sandbox/internal/logger"
	"gravity-sandbox/internal/physics"
	"gravity-sandbox/internal/scene"
)

type fakeHUD struct {
	fps, stats bool
}

func (h *fakeHUD) SetShowFPS(v bool)   { h.fps = v }
func (h *fakeHUD) SetShowStats(v bool) { h.stats = v }

func setup(t *testing.T) (*Registry, *scene.Scene, *logger.Logger, *fakeHUD) {
	t.Helper()
	log := logger.New("")
	s := scene.New(200, 200, scene.DefaultSettings(), log)
	hud := &fakeHUD{}
	r := NewRegistry()
	RegisterSandbox(r, s, log, hud)
	return r, s, log, hud
}

func run(t *testing.T, r *Registry, line string) error {
	t.Helper()
	args, ok := Parse(line)
	if !ok {
		t.Fatalf("%q is not a command line", line)
	}
	return r.Execute(args)
}

func TestTimescaleCommand(t *testing.T) {
	r, s, _, _ := setup(t)
	cases := []struct {
		line string
		want int
		ok   bool
	}{
		{"cmd timescale 8", 8, true},
		{"cmd timescale 0", 1, true},
		{"cmd timescale -4", 1, true},
		{"cmd timescale fast", 1, false},
		{"cmd timescale", 1, true},
	}
	for _, tc := range cases {
		err := run(t, r, tc.line)
		if (err == nil) != tc.ok {
			t.Errorf("%q: err = %v", tc.line, err)
		}
		if got := s.Controller.TimeScale(); got != tc.want {
			t.Errorf("%q: time scale %d, want %d", tc.line, got, tc.want)
		}
	}
}

func TestSpawnAndClearCommands(t *testing.T) {
	r, s, _, _ := setup(t)
	if err := run(t, r, "cmd spawn -10 5 1 -2"); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if err := run(t, r, "cmd spawn 0 0 0 0 500 7"); err != nil {
		t.Fatalf("spawn with mass: %v", err)
	}
	if s.Store.Len() != 2 {
		t.Fatalf("len = %d", s.Store.Len())
	}
	b := s.Store.Body(0)
	if b.Pos != (mgl64.Vec2{-10, 5}) || b.Vel != (mgl64.Vec2{1, -2}) || b.Mass != 10000 || b.Radius != 20 {
		t.Errorf("default spawn = %+v", b)
	}
	if s.Store.Mass(1) != 500 || s.Store.Radius(1) != 7 {
		t.Errorf("explicit spawn = %+v", s.Store.Body(1))
	}

	for _, bad := range []string{"cmd spawn 1 2 3", "cmd spawn 1 2 3 x", "cmd spawn 0 0 0 0 -1 5"} {
		if err := run(t, r, bad); err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
	if s.Store.Len() != 2 {
		t.Errorf("bad spawns changed the store: len %d", s.Store.Len())
	}

	if err := run(t, r, "cmd clear"); err != nil || s.Store.Len() != 0 {
		t.Errorf("clear: err %v len %d", err, s.Store.Len())
	}
}

func TestSpawnRejectsNonFinite(t *testing.T) {
	r, s, _, _ := setup(t)
	if err := run(t, r, "cmd load builtin"); err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, bad := range []string{
		"cmd spawn NaN 0 0 0",
		"cmd spawn 0 Inf 0 0",
		"cmd spawn 0 0 -inf 0",
		"cmd spawn 0 0 0 nan",
		"cmd spawn 0 0 0 0 +Inf 5",
		"cmd spawn 0 0 0 0 10 Inf",
	} {
		if err := run(t, r, bad); err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
	if s.Store.Len() != 3 {
		t.Fatalf("rejected spawns changed the store: len %d", s.Store.Len())
	}
	s.Step(0.016)
	for i, b := range s.Store.Bodies() {
		for _, f := range []float64{b.Pos[0], b.Pos[1], b.Vel[0], b.Vel[1]} {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				t.Fatalf("body %d not finite after a step: %+v", i, b)
			}
		}
	}
}

func TestLoadCommand(t *testing.T) {
	r, s, _, _ := setup(t)
	if err := run(t, r, "cmd load builtin"); err != nil {
		t.Fatalf("load builtin: %v", err)
	}
	if s.Store.Len() != 3 {
		t.Errorf("len = %d", s.Store.Len())
	}

	path := filepath.Join(t.TempDir(), "one.yaml")
	if err := os.WriteFile(path, []byte("bodies:\n  - {pos: [5, 5], mass: 1, radius: 2}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := run(t, r, "cmd load "+path); err != nil {
		t.Fatalf("load file: %v", err)
	}
	if s.Store.Len() != 1 {
		t.Errorf("len = %d", s.Store.Len())
	}
	if err := run(t, r, "cmd load"); err == nil {
		t.Error("load without path accepted")
	}
	if err := run(t, r, "cmd load "+filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestToggleCommands(t *testing.T) {
	r, s, _, hud := setup(t)
	steps := []struct {
		line string
		ok   bool
	}{
		{"cmd grid --show --step 50", true},
		{"cmd fps --show", true},
		{"cmd stats --show", true},
		{"cmd stats --hide", true},
		{"cmd grid", false},
		{"cmd fps --show --hide", false},
	}
	for _, st := range steps {
		if err := run(t, r, st.line); (err == nil) != st.ok {
			t.Errorf("%q: err = %v", st.line, err)
		}
	}
	if !s.GridVisible || s.GridStep != 50 {
		t.Errorf("grid visible %v step %v", s.GridVisible, s.GridStep)
	}
	if !hud.fps || hud.stats {
		t.Errorf("hud = %+v", hud)
	}
}

func TestMergeCommand(t *testing.T) {
	r, s, log, _ := setup(t)
	if err := run(t, r, "cmd merge --mode momentum"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, r, "cmd merge --policy continue"); err != nil {
		t.Fatal(err)
	}
	p := s.Stepper.Params
	if p.Merge != physics.MergeMomentum || p.OnMerge != physics.ContinueIntegration {
		t.Errorf("params = %+v", p)
	}
	if tail := log.Tail(1); !strings.HasSuffix(tail[0], "merge mode momentum, policy continue") {
		t.Errorf("log = %q", tail)
	}
	if err := run(t, r, "cmd merge --mode sticky"); err == nil {
		t.Error("unknown mode accepted")
	}
	if s.Stepper.Params != p {
		t.Error("failed merge command changed params")
	}
}

func TestResetCommand(t *testing.T) {
	r, s, _, _ := setup(t)
	s.View.Pan(mgl64.Vec2{40, 40})
	s.View.Zoom(3)
	if err := run(t, r, "cmd reset"); err != nil {
		t.Fatal(err)
	}
	if s.View.View != (mgl64.Vec2{}) || s.View.Scale != (mgl64.Vec2{1, 1}) {
		t.Errorf("view %v scale %v", s.View.View, s.View.Scale)
	}
}

func TestHelpListsCommands(t *testing.T) {
	r, _, log, _ := setup(t)
	if err := run(t, r, "cmd help"); err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(log.Lines(), "\n")
	for _, name := range []string{"timescale", "spawn", "load", "grid", "fps", "stats", "merge", "help"} {
		if !strings.Contains(joined, "cmd "+name) {
			t.Errorf("help output misses %s", name)
		}
	}
	if err := run(t, r, "cmd help nope"); err == nil {
		t.Error("help for unknown command accepted")
	}
}

func TestHeadlessRegistrySkipsHUD(t *testing.T) {
	log := logger.New("")
	r := NewRegistry()
	RegisterSandbox(r, scene.New(10, 10, scene.DefaultSettings(), log), log, nil)
	for _, name := range r.Names() {
		if name == "fps" || name == "stats" {
			t.Errorf("%s registered without a HUD", name)
		}
	}
}

func TestGenerateCommand(t *testing.T) {
	r, s, log, _ := setup(t)
	if err := run(t, r, "cmd generate --count 5 --seed 3"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if s.Store.Len() != 6 {
		t.Errorf("len = %d, want central body and 5 orbiters", s.Store.Len())
	}
	if tail := log.Tail(1); !strings.Contains(tail[0], "loaded scenario disc-3 with 6 bodies") {
		t.Errorf("log = %q", tail)
	}
}

func TestLoadCommandFetchesURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("bodies:\n  - {pos: [1, 1], mass: 1, radius: 1}\n  - {pos: [90, 90], mass: 1, radius: 1}\n"))
	}))
	defer srv.Close()
	old := downloadDir
	downloadDir = t.TempDir()
	defer func() { downloadDir = old }()

	r, s, _, _ := setup(t)
	if err := run(t, r, "cmd load "+srv.URL+"/pair.yaml"); err != nil {
		t.Fatalf("load url: %v", err)
	}
	if s.Store.Len() != 2 {
		t.Errorf("len = %d", s.Store.Len())
	}
	if _, err := os.Stat(filepath.Join(downloadDir, "pair.yaml")); err != nil {
		t.Errorf("downloaded file: %v", err)
	}
}
