package scene

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"unicorn-renderer/internal/mathutil"
	"unicorn-renderer/internal/rgb"
)

const minimal = `{
  "camera": {"position": [0, 0, -100], "look_at": [0, 0, 0], "focal_length": 200},
  "balls": [
    {"name": "a", "center": [0, 0, 0], "radius": 5, "color": "#ff0000"},
    {"name": "b", "center": [20, 0, 0], "radius": 3, "color": [120, 100, 50]}
  ],
  "bones": [{"from": "a", "to": "b"}]
}`

func TestLoad_Pony(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "pony.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Name != "pony" {
		t.Fatalf("name %q, want the file stem", sc.Name)
	}
	if sc.Framing == nil || sc.Camera != nil {
		t.Fatal("pony is framed, not placed")
	}
	if sc.Background == nil || sc.Background.Landscape == nil {
		t.Fatal("landscape background missing")
	}

	m, err := sc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m.IDs) != len(sc.Balls) || m.Figure.Arena.Len() != len(sc.Balls) {
		t.Fatalf("%d handles for %d balls", len(m.IDs), len(sc.Balls))
	}
	if len(m.Figure.Bones) != len(sc.Bones) || len(m.Figure.Balls) != 1 {
		t.Fatalf("figure has %d bones and %d free balls", len(m.Figure.Bones), len(m.Figure.Balls))
	}

	head, _ := m.Ball("head")
	eye, _ := m.Ball("eye")
	if d := eye.Center.Sub(head.Center).Len(); math.Abs(d-head.Radius) > 1e-9 {
		t.Fatalf("eye is %v from the head center, want %v", d, head.Radius)
	}
	horn, _ := m.Ball("horn_base")
	if d := horn.Center.Sub(head.Center).Len(); math.Abs(d-(head.Radius+horn.Radius-6)) > 1e-9 {
		t.Fatalf("horn base is %v from the head center", d)
	}

	// The rotation pivots on the hip, which stays put.
	hip, _ := m.Ball("hip")
	if hip.Center != (mathutil.Vec3{50, 0, 0}) {
		t.Fatalf("pivot moved to %v", hip.Center)
	}
	if _, ok := m.Ball("nose"); ok {
		t.Fatal("unknown ball found")
	}
}

func TestParse_Colors(t *testing.T) {
	sc, err := Parse([]byte(minimal))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := rgb.Color(sc.Balls[0].Color); got != (rgb.Color{R: 255}) {
		t.Fatalf("hex color %v", got)
	}
	if got, want := rgb.Color(sc.Balls[1].Color), rgb.HSL(120, 100, 50); got != want {
		t.Fatalf("hsl color %v, want %v", got, want)
	}

	out, err := json.Marshal(sc.Balls[0].Color)
	if err != nil || string(out) != `"#ff0000"` {
		t.Fatalf("marshal color: %s, %v", out, err)
	}
}

func TestBuild_DoesNotModifyScene(t *testing.T) {
	sc, err := Parse([]byte(strings.Replace(minimal, `"bones"`,
		`"rotations": [{"pivot": "a", "angle": 90, "axis": "y"}], "bones"`, 1)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m1, err := sc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m2, _ := sc.Build()

	b1, _ := m1.Ball("b")
	b2, _ := m2.Ball("b")
	if b1.Center != b2.Center {
		t.Fatalf("builds differ: %v vs %v", b1.Center, b2.Center)
	}
	if sc.Balls[1].Center != (mathutil.Vec3{20, 0, 0}) {
		t.Fatalf("scene mutated: %v", sc.Balls[1].Center)
	}
	if !b1.Center.NearlyEqual(mathutil.Vec3{0, 0, 20}, 1e-9) && !b1.Center.NearlyEqual(mathutil.Vec3{0, 0, -20}, 1e-9) {
		t.Fatalf("rotated ball at %v", b1.Center)
	}
}

func TestBuild_NonLinearBones(t *testing.T) {
	sc, err := Parse([]byte(strings.Replace(minimal, `{"from": "a", "to": "b"}`,
		`{"from": "a", "to": "b", "x_gamma": {"gamma": 2, "t": 1}},
		 {"from": "a", "to": "b", "y_gamma": {"gamma": 2, "t": 1}},
		 {"from": "a", "to": "b", "x_gamma": {"gamma": 2, "t": 1}, "y_gamma": {"gamma": 3, "t": 0.5}}`, 1)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, err := sc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	bones := m.Figure.Bones
	if bones[0].XFunc == nil || bones[0].YFunc != nil {
		t.Fatal("x warp not applied alone")
	}
	if bones[1].XFunc != nil || bones[1].YFunc == nil {
		t.Fatal("y warp not applied alone")
	}
	if bones[2].XFunc == nil || bones[2].YFunc == nil || bones[2].YFunc.Gamma != 3 {
		t.Fatal("both warps not applied")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		new     string
		wantErr error
	}{
		{"unknown bone end", `"to": "b"`, `"to": "z"`, ErrUnknownBall},
		{"duplicate ball", `"name": "b"`, `"name": "a"`, ErrInvalid},
		{"negative radius", `"radius": 3`, `"radius": -3`, ErrInvalid},
		{"no camera", `"camera"`, `"unused"`, ErrInvalid},
		{"bad focal", `"focal_length": 200`, `"focal_length": 0`, ErrInvalid},
		{"camera on target", `[0, 0, -100]`, `[0, 0, 0]`, ErrInvalid},
		{"unknown shown ball", `"bones"`, `"show": ["q"], "bones"`, ErrUnknownBall},
		{"bad constraint", `"bones"`, `"constraints": [{"ball": "a", "op": "glue", "other": "b"}], "bones"`, ErrInvalid},
		{"bad axis", `"bones"`, `"rotations": [{"pivot": "a", "angle": 1, "axis": "w"}], "bones"`, ErrInvalid},
		{"camera and framing", `"bones"`,
			`"framing": {"head": "a", "shoulder": "b", "scale_factor": 1, "focal_length": 100}, "bones"`, ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := strings.Replace(minimal, tt.old, tt.new, 1)
			if data == minimal {
				t.Fatalf("replacement %q not applied", tt.old)
			}
			_, err := Parse([]byte(data))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_FramingErrors(t *testing.T) {
	framed := strings.Replace(minimal,
		`"camera": {"position": [0, 0, -100], "look_at": [0, 0, 0], "focal_length": 200}`,
		`"framing": {"head": "a", "shoulder": "b", "scale_factor": 1, "focal_length": 100}`, 1)
	if _, err := Parse([]byte(framed)); err != nil {
		t.Fatalf("framed scene: %v", err)
	}
	if _, err := Parse([]byte(strings.Replace(framed, `"head": "a"`, `"head": "x"`, 1))); !errors.Is(err, ErrUnknownBall) {
		t.Fatalf("unknown head: %v", err)
	}
	if _, err := Parse([]byte(strings.Replace(framed, `"scale_factor": 1`, `"scale_factor": 4`, 1))); !errors.Is(err, ErrInvalid) {
		t.Fatalf("scale factor: %v", err)
	}
}

func TestParse_BadJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"balls": [`)); err == nil {
		t.Fatal("truncated JSON parsed")
	}
	bad := strings.Replace(minimal, `"#ff0000"`, `{"r": 1}`, 1)
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("object color parsed")
	}
	bad = strings.Replace(minimal, `"#ff0000"`, `"#ff00"`, 1)
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("short hex color parsed")
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}

func TestParseAxis(t *testing.T) {
	for s, want := range map[string]mathutil.Axis{"x": mathutil.AxisX, "Y": mathutil.AxisY, "z": mathutil.AxisZ} {
		got, err := ParseAxis(s)
		if err != nil || got != want {
			t.Errorf("ParseAxis(%q) = %v, %v", s, got, err)
		}
	}
}
