package mesh

import (
	"errors"
	"fmt"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrNoGeometry = errors.New("model has no mesh data")

// FromModel copies the triangles of a loaded raylib model into a Mesh, one
// submesh per model mesh, with the model transform applied. The model can be
// unloaded afterwards.
func FromModel(model rl.Model) (*Mesh, error) {
	if model.MeshCount == 0 || model.Meshes == nil {
		return nil, fmt.Errorf("mesh from model: %w", ErrNoGeometry)
	}

	b := NewBuilder()
	meshes := unsafe.Slice(model.Meshes, model.MeshCount)
	for n, src := range meshes {
		if src.Vertices == nil || src.VertexCount == 0 {
			continue
		}
		b.Submesh(fmt.Sprintf("mesh%d", n))

		raw := unsafe.Slice(src.Vertices, src.VertexCount*3)
		base := len(b.vertices)
		for i := 0; i < int(src.VertexCount); i++ {
			v := rl.Vector3{X: raw[i*3+0], Y: raw[i*3+1], Z: raw[i*3+2]}
			b.AddVertex(rl.Vector3Transform(v, model.Transform))
		}

		if src.Indices != nil {
			indices := unsafe.Slice(src.Indices, src.TriangleCount*3)
			for i := 0; i < int(src.TriangleCount); i++ {
				b.AddTriangle(base+int(indices[i*3+0]), base+int(indices[i*3+1]), base+int(indices[i*3+2]))
			}
			continue
		}

		// Non-indexed: every three vertices form a triangle.
		for i := 0; i < int(src.VertexCount)/3; i++ {
			b.AddTriangle(base+i*3, base+i*3+1, base+i*3+2)
		}
	}

	m, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("mesh from model: %w", err)
	}
	return m, nil
}
