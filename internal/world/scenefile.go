package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownMesh   = errors.New("unknown mesh type")
	ErrBadMesh       = errors.New("invalid mesh definition")
	ErrUnknownFormat = errors.New("unknown scene file format")
)

// SceneFile is the on-disk description of a level. YAML and JSON share the
// same field names.
type SceneFile struct {
	Name    string      `json:"name" yaml:"name"`
	Spawn   [3]float32  `json:"spawn" yaml:"spawn"`
	Objects []ObjectDef `json:"objects" yaml:"objects"`
}

type ObjectDef struct {
	ID       string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string     `json:"name" yaml:"name"`
	Tags     []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Position [3]float32 `json:"position" yaml:"position"`
	Rotation [3]float32 `json:"rotation" yaml:"rotation"` // Euler angles in degrees
	Scale    [3]float32 `json:"scale" yaml:"scale"`
	Color    string     `json:"color,omitempty" yaml:"color,omitempty"`
	Mesh     MeshDef    `json:"mesh" yaml:"mesh"`
}

// MeshDef selects a mesh source. Size holds the primitive dimensions:
// plane [width, depth], box [x, y, z], ramp [width, length, height].
type MeshDef struct {
	Type     string       `json:"type" yaml:"type"`
	Size     []float32    `json:"size,omitempty" yaml:"size,omitempty,flow"`
	Corners  [][3]float32 `json:"corners,omitempty" yaml:"corners,omitempty"`
	Vertices [][3]float32 `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Indices  []int        `json:"indices,omitempty" yaml:"indices,omitempty,flow"`
	Model    string       `json:"model,omitempty" yaml:"model,omitempty"`
}

// Validate checks every object and reports all problems together.
func (sf *SceneFile) Validate() error {
	var err error
	for i, obj := range sf.Objects {
		if e := obj.Mesh.validate(); e != nil {
			err = multierr.Append(err, fmt.Errorf("object %d (%s): %w", i, obj.Name, e))
		}
	}
	return err
}

func (d MeshDef) validate() error {
	need := func(n int) error {
		if len(d.Size) != n {
			return fmt.Errorf("%w: %s needs %d sizes, got %d", ErrBadMesh, d.Type, n, len(d.Size))
		}
		for _, s := range d.Size {
			if s <= 0 {
				return fmt.Errorf("%w: %s sizes must be positive", ErrBadMesh, d.Type)
			}
		}
		return nil
	}

	switch d.Type {
	case "plane":
		return need(2)
	case "box", "ramp":
		return need(3)
	case "quad":
		if len(d.Corners) != 4 {
			return fmt.Errorf("%w: quad needs 4 corners, got %d", ErrBadMesh, len(d.Corners))
		}
	case "inline":
		if len(d.Vertices) == 0 || len(d.Indices) == 0 {
			return fmt.Errorf("%w: inline mesh needs vertices and indices", ErrBadMesh)
		}
	case "model":
		if d.Model == "" {
			return fmt.Errorf("%w: model path is empty", ErrBadMesh)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownMesh, d.Type)
	}
	return nil
}

// ReadSceneFile parses a .yaml, .yml or .json scene file.
func ReadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}

	var sf SceneFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &sf)
	case ".json":
		err = json.Unmarshal(data, &sf)
	default:
		return nil, fmt.Errorf("read scene %s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	if err := sf.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return &sf, nil
}

// WriteSceneFile writes sf in the format chosen by the path extension.
func WriteSceneFile(path string, sf *SceneFile) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(sf)
	case ".json":
		data, err = json.MarshalIndent(sf, "", "  ")
	default:
		return fmt.Errorf("write scene %s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
}

func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.LightGray
}

func vec(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

func arr(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
