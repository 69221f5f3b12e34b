package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/orbs/pkg/render"
	"github.com/taigrr/orbs/pkg/scene"
)

// Draw renders a JSON scene description into a width x height canvas and
// returns its width*height*4 RGBA bytes, row-major from the top-left.
//
// Input problems are reported as a single *DescriptionError before any
// tracing starts; no partial buffer is ever returned.
func Draw(width, height int, data []byte) ([]byte, error) {
	if width <= 0 {
		return nil, invalid("width", "must be positive, got %d", width)
	}
	if height <= 0 {
		return nil, invalid("height", "must be positive, got %d", height)
	}

	d, err := DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	s, vp, err := d.Build()
	if err != nil {
		return nil, err
	}

	c := render.NewCanvas(width, height)
	render.Render(c, vp, s)
	return c.Bytes(), nil
}

// LoadFile reads a scene description from disk. Files ending in .glb or
// .gltf go through the glTF importer, anything else is decoded as JSON.
func LoadFile(path string) (*Description, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return LoadGLTF(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// LoadScene reads, validates and builds a scene from disk.
func LoadScene(path string) (*scene.Scene, render.Viewport, error) {
	d, err := LoadFile(path)
	if err != nil {
		return nil, render.Viewport{}, err
	}
	return d.Build()
}
