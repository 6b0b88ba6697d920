package mesh

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Builder accumulates vertices and triangles. The zero value is ready to use
// and starts an unnamed submesh.
type Builder struct {
	vertices  []rl.Vector3
	indices   []int
	submeshes []Submesh
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddVertex appends a vertex and returns its index.
func (b *Builder) AddVertex(v rl.Vector3) int {
	b.vertices = append(b.vertices, v)
	return len(b.vertices) - 1
}

// AddTriangle appends a triangle referencing existing vertex indices. The
// front face is the side (v1-v0)x(v2-v0) points to.
func (b *Builder) AddTriangle(i0, i1, i2 int) {
	if len(b.submeshes) == 0 {
		b.Submesh("")
	}
	b.indices = append(b.indices, i0, i1, i2)
	b.submeshes[len(b.submeshes)-1].Count++
}

// AddQuad appends the two triangles a,b,c and a,c,d.
func (b *Builder) AddQuad(a, bb, c, d rl.Vector3) {
	i := b.AddVertex(a)
	b.AddVertex(bb)
	b.AddVertex(c)
	b.AddVertex(d)
	b.AddTriangle(i, i+1, i+2)
	b.AddTriangle(i, i+2, i+3)
}

// Submesh starts a new submesh; following triangles belong to it.
func (b *Builder) Submesh(name string) {
	b.submeshes = append(b.submeshes, Submesh{Name: name, First: len(b.indices) / 3})
}

// Build validates the buffers and returns the finished mesh. Empty submeshes
// are dropped.
func (b *Builder) Build() (*Mesh, error) {
	return build(b.vertices, b.indices, b.submeshes)
}

// New builds a single-submesh mesh from raw buffers.
func New(vertices []rl.Vector3, indices []int) (*Mesh, error) {
	return build(vertices, indices, []Submesh{{First: 0, Count: len(indices) / 3}})
}

func build(vertices []rl.Vector3, indices []int, submeshes []Submesh) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("build mesh: %w (%d)", ErrIndexCount, len(indices))
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("build mesh: %w", ErrEmpty)
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(vertices) {
			return nil, fmt.Errorf("build mesh: index %d = %d: %w (%d vertices)", i, idx, ErrIndexRange, len(vertices))
		}
	}

	m := &Mesh{
		vertices: append([]rl.Vector3(nil), vertices...),
		indices:  append([]int(nil), indices...),
	}
	for _, sub := range submeshes {
		if sub.Count > 0 {
			m.submeshes = append(m.submeshes, sub)
		}
	}
	m.finish()
	return m, nil
}

func mustBuild(b *Builder) *Mesh {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
