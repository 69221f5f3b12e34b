package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/orbs/pkg/render"
)

const testScene = `{
	"viewport": {"width": 1, "height": 1},
	"spheres": [
		{"radius": 1, "center": {"x": 0, "y": -1, "z": 3}, "color": "#ff0000", "specular": 500, "reflective": 0.2},
		{"radius": 5000, "center": {"x": 0, "y": -5001, "z": 0}, "color": "#ffff00", "specular": 1000, "reflective": 0.5}
	]
}`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orbs.json")
	if err := os.WriteFile(path, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderRawToStdout(t *testing.T) {
	opts := renderOptions{width: 8, height: 6, raw: true, out: "-", depth: 3}

	var buf bytes.Buffer
	if err := opts.run(writeScene(t), &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.Len() != 8*6*render.BytesPerPixel {
		t.Errorf("wrote %d bytes, want %d", buf.Len(), 8*6*render.BytesPerPixel)
	}
}

func TestRenderPNGToStdout(t *testing.T) {
	opts := renderOptions{width: 5, height: 3, out: "-", depth: 1}

	var buf bytes.Buffer
	if err := opts.run(writeScene(t), &buf); err != nil {
		t.Fatalf("run: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("stdout is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Errorf("image bounds = %v", b)
	}
	if _, err := os.Stat("-"); !os.IsNotExist(err) {
		t.Error(`a file named "-" was created`)
	}
}

func TestRenderPNG(t *testing.T) {
	scenePath := writeScene(t)
	opts := renderOptions{width: 10, height: 4, depth: 1}

	var log bytes.Buffer
	if err := opts.run(scenePath, &log); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := strings.TrimSuffix(scenePath, ".json") + ".png"
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 4 {
		t.Errorf("image bounds = %v", b)
	}
	if !strings.Contains(log.String(), "Loaded: orbs.json (2 spheres, 3 lights)") {
		t.Errorf("log = %q", log.String())
	}
}

func TestRenderRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts renderOptions
	}{
		{"zero width", renderOptions{width: 0, height: 4}},
		{"negative height", renderOptions{width: 4, height: -2}},
		{"negative depth", renderOptions{width: 4, height: 4, depth: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.opts.run(writeScene(t), &bytes.Buffer{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRenderMissingScene(t *testing.T) {
	opts := renderOptions{width: 4, height: 4}
	if err := opts.run(filepath.Join(t.TempDir(), "nope.json"), &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing scene")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		opts renderOptions
		want string
	}{
		{renderOptions{}, "scenes/demo.png"},
		{renderOptions{raw: true}, "scenes/demo.rgba"},
		{renderOptions{out: "x.png"}, "x.png"},
	}

	for _, tc := range tests {
		if got := tc.opts.outputPath("scenes/demo.json"); got != tc.want {
			t.Errorf("outputPath(%+v) = %q, want %q", tc.opts, got, tc.want)
		}
	}
}

func TestViewportOverride(t *testing.T) {
	base := render.NewViewport(1, 1)

	if got := (&renderOptions{}).viewport(base); got != base {
		t.Errorf("no override changed viewport to %+v", got)
	}
	if got := (&renderOptions{vw: 2}).viewport(base); got != render.NewViewport(2, 1) {
		t.Errorf("width override = %+v", got)
	}
	if got := (&renderOptions{vw: 3, vh: 1.5}).viewport(base); got != render.NewViewport(3, 1.5) {
		t.Errorf("both overrides = %+v", got)
	}
}
