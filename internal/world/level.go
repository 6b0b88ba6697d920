// Package world turns scene files into collision scenes and draws them for
// debugging.
package world

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"sweep3d/internal/engine"
	"sweep3d/internal/mesh"
)

var ErrNoModelLoader = errors.New("scene uses a model but no model loader is set")

// ModelLoader turns a model file into a mesh. Loading files is left to the
// caller so that headless tools do not need a graphics context.
type ModelLoader func(path string) (*mesh.Mesh, error)

// source remembers how an object was described so it can be saved again.
type source struct {
	mesh  MeshDef
	scale [3]float32
	color string
}

// Level is a built scene plus the data needed to draw and save it.
type Level struct {
	Name  string
	Scene *engine.Scene
	Spawn rl.Vector3

	sources map[engine.Handle]source
	meshes  map[uint64]*mesh.Mesh // shared meshes by fingerprint
}

// Load reads and builds a scene file.
func Load(path string, loader ModelLoader) (*Level, error) {
	sf, err := ReadSceneFile(path)
	if err != nil {
		return nil, err
	}
	return Build(sf, loader)
}

// Build creates the objects of sf. Objects with identical geometry share one
// mesh.
func Build(sf *SceneFile, loader ModelLoader) (*Level, error) {
	if err := sf.Validate(); err != nil {
		return nil, err
	}

	name := sf.Name
	if name == "" {
		name = "Main"
	}
	l := &Level{
		Name:    name,
		Scene:   engine.NewScene(name),
		Spawn:   vec(sf.Spawn),
		sources: make(map[engine.Handle]source),
		meshes:  make(map[uint64]*mesh.Mesh),
	}

	for i, def := range sf.Objects {
		m, err := buildMesh(def.Mesh, loader)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, def.Name, err)
		}

		scale := def.Scale
		if scale == [3]float32{} {
			scale = [3]float32{1, 1, 1}
		}
		if scale != [3]float32{1, 1, 1} {
			m = m.Transformed(rl.MatrixScale(scale[0], scale[1], scale[2]))
		}

		o := engine.NewObject(def.Name, l.share(m))
		if def.ID != "" {
			id, err := uuid.Parse(def.ID)
			if err != nil {
				return nil, fmt.Errorf("object %d (%s): parse id: %w", i, def.Name, err)
			}
			o.ID = id
		}
		o.Tags = append(o.Tags, def.Tags...)
		o.Position = vec(def.Position)
		o.Rotation = rl.QuaternionFromEuler(
			def.Rotation[0]*rl.Deg2rad,
			def.Rotation[1]*rl.Deg2rad,
			def.Rotation[2]*rl.Deg2rad,
		)

		h := l.Scene.Add(o)
		l.sources[h] = source{mesh: def.Mesh, scale: scale, color: def.Color}
	}
	return l, nil
}

func (l *Level) share(m *mesh.Mesh) *mesh.Mesh {
	if shared, ok := l.meshes[m.Fingerprint()]; ok {
		return shared
	}
	l.meshes[m.Fingerprint()] = m
	return m
}

// MeshCount returns how many distinct meshes the level holds.
func (l *Level) MeshCount() int {
	return len(l.meshes)
}

// Color returns the draw color of an object.
func (l *Level) Color(h engine.Handle) rl.Color {
	return lookupColor(l.sources[h].color)
}

// SceneFile describes the current state of the level. Objects added after
// Build without a source are saved as inline meshes.
func (l *Level) SceneFile() *SceneFile {
	sf := &SceneFile{Name: l.Name, Spawn: arr(l.Spawn)}
	l.Scene.Each(func(h engine.Handle, o *engine.Object) {
		src, ok := l.sources[h]
		if !ok {
			src = source{mesh: inlineDef(o.Mesh), scale: [3]float32{1, 1, 1}}
		}

		euler := rl.QuaternionToEuler(o.Rotation)
		sf.Objects = append(sf.Objects, ObjectDef{
			ID:       o.ID.String(),
			Name:     o.Name,
			Tags:     o.Tags,
			Position: arr(o.Position),
			Rotation: [3]float32{euler.X * rl.Rad2deg, euler.Y * rl.Rad2deg, euler.Z * rl.Rad2deg},
			Scale:    src.scale,
			Color:    src.color,
			Mesh:     src.mesh,
		})
	})
	return sf
}

// Save writes the level to path.
func (l *Level) Save(path string) error {
	return WriteSceneFile(path, l.SceneFile())
}

func buildMesh(d MeshDef, loader ModelLoader) (*mesh.Mesh, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	switch d.Type {
	case "plane":
		return mesh.Plane(d.Size[0], d.Size[1]), nil
	case "box":
		return mesh.Box(rl.Vector3{X: d.Size[0], Y: d.Size[1], Z: d.Size[2]}), nil
	case "ramp":
		return mesh.Ramp(d.Size[0], d.Size[1], d.Size[2]), nil
	case "quad":
		return mesh.Quad(vec(d.Corners[0]), vec(d.Corners[1]), vec(d.Corners[2]), vec(d.Corners[3])), nil
	case "inline":
		verts := make([]rl.Vector3, len(d.Vertices))
		for i, v := range d.Vertices {
			verts[i] = vec(v)
		}
		return mesh.New(verts, d.Indices)
	case "model":
		if loader == nil {
			return nil, ErrNoModelLoader
		}
		m, err := loader(d.Model)
		if err != nil {
			return nil, fmt.Errorf("load model %s: %w", d.Model, err)
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownMesh, d.Type)
}

func inlineDef(m *mesh.Mesh) MeshDef {
	d := MeshDef{Type: "inline"}
	if m == nil {
		return d
	}
	for _, v := range m.Vertices() {
		d.Vertices = append(d.Vertices, arr(v))
	}
	d.Indices = append(d.Indices, m.Indices()...)
	return d
}
