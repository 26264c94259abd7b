package viewport

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewCentresPivot(t *testing.T) {
	v := New(640, 480)
	if v.Pivot != (mgl64.Vec2{320, 240}) {
		t.Errorf("Pivot = %v, want [320 240]", v.Pivot)
	}
	if v.View != (mgl64.Vec2{0, 0}) || v.Scale != (mgl64.Vec2{1, 1}) {
		t.Errorf("View %v Scale %v, want origin and 1", v.View, v.Scale)
	}
	// At scale 1 and view 0 the transform is the identity.
	if x, y := v.ScreenPoint(mgl64.Vec2{12, 34}); x != 12 || y != 34 {
		t.Errorf("ScreenPoint = (%d,%d), want (12,34)", x, y)
	}
}

func TestResizeFirstCallResets(t *testing.T) {
	cases := []struct{ prevW, prevH int }{{0, 0}, {0, 300}, {300, 0}}
	for _, tc := range cases {
		v := &Viewport{View: mgl64.Vec2{50, -70}, Scale: mgl64.Vec2{3, 0.5}}
		v.OnResize(tc.prevW, tc.prevH, 800, 600)
		if v.View != (mgl64.Vec2{0, 0}) || v.Scale != (mgl64.Vec2{1, 1}) || v.Pivot != (mgl64.Vec2{400, 300}) {
			t.Errorf("OnResize(%d,%d,800,600) = view %v scale %v pivot %v", tc.prevW, tc.prevH, v.View, v.Scale, v.Pivot)
		}
	}
}

func TestResizeKeepsCentreWorldPoint(t *testing.T) {
	v := New(640, 480)
	v.Pan(mgl64.Vec2{100, -40})
	v.Zoom(2)
	centre := v.ScreenToWorld(v.Pivot[0], v.Pivot[1])

	v.OnResize(640, 480, 1000, 300)

	if v.Pivot != (mgl64.Vec2{500, 150}) {
		t.Fatalf("Pivot = %v", v.Pivot)
	}
	got := v.ScreenToWorld(v.Pivot[0], v.Pivot[1])
	if !got.ApproxEqual(centre) {
		t.Errorf("centre world point moved from %v to %v", centre, got)
	}
	if v.Scale != (mgl64.Vec2{2, 2}) {
		t.Errorf("resize changed scale to %v", v.Scale)
	}
}

func TestScreenToWorldAxesIndependent(t *testing.T) {
	v := &Viewport{View: mgl64.Vec2{10, 20}, Pivot: mgl64.Vec2{100, 50}, Scale: mgl64.Vec2{2, 4}}
	w := v.ScreenToWorld(110, 60)
	// x: (110-100)*2+100+10 = 130; y: (60-50)*4+50+20 = 110
	if w != (mgl64.Vec2{130, 110}) {
		t.Fatalf("ScreenToWorld = %v, want [130 110]", w)
	}
}

func TestRoundTrip(t *testing.T) {
	views := []*Viewport{
		{View: mgl64.Vec2{0, 0}, Pivot: mgl64.Vec2{320, 240}, Scale: mgl64.Vec2{1, 1}},
		{View: mgl64.Vec2{-512.25, 77}, Pivot: mgl64.Vec2{400, 300}, Scale: mgl64.Vec2{3.7, 0.21}},
		{View: mgl64.Vec2{1e4, -1e4}, Pivot: mgl64.Vec2{960, 540}, Scale: mgl64.Vec2{0.013, 120}},
	}
	points := [][2]int{{0, 0}, {1, 799}, {320, 240}, {1919, 1079}, {-50, 40}}
	for _, v := range views {
		for _, p := range points {
			w := v.ScreenToWorld(float64(p[0]), float64(p[1]))
			x, y := v.ScreenPoint(w)
			if abs(x-p[0]) > 1 || abs(y-p[1]) > 1 {
				t.Errorf("view %+v: round trip of %v gave (%d,%d)", v, p, x, y)
			}
		}
	}
}

func TestZoomAndReset(t *testing.T) {
	v := New(200, 100)
	v.Zoom(1.5)
	v.Zoom(1.5)
	if math.Abs(v.Scale[0]-2.25) > 1e-12 || v.Scale[0] != v.Scale[1] {
		t.Fatalf("Scale = %v, want 2.25 on both axes", v.Scale)
	}
	v.Pan(mgl64.Vec2{5, 5})
	v.Reset()
	if v.View != (mgl64.Vec2{0, 0}) || v.Scale != (mgl64.Vec2{1, 1}) || v.Pivot != (mgl64.Vec2{100, 50}) {
		t.Fatalf("Reset left view %v scale %v pivot %v", v.View, v.Scale, v.Pivot)
	}
}

func TestZoomRejectsNonPositive(t *testing.T) {
	for _, f := range []float64{0, -2, math.NaN()} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Zoom(%v) did not panic", f)
				}
			}()
			New(10, 10).Zoom(f)
		}()
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
