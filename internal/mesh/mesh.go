// Package mesh holds immutable triangle meshes in object local space.
// A Mesh is built once and then shared read-only by every query.
package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrEmpty      = errors.New("mesh has no triangles")
	ErrIndexCount = errors.New("index count is not a multiple of three")
	ErrIndexRange = errors.New("index out of range")
)

// Submesh is a contiguous run of triangles, in storage order.
type Submesh struct {
	Name  string
	First int // first triangle
	Count int // number of triangles
}

// Mesh is an indexed triangle mesh. Its buffers must not be modified after
// Build returns.
type Mesh struct {
	vertices  []rl.Vector3
	indices   []int
	submeshes []Submesh

	radiusSq    float32
	fingerprint uint64
}

// Vertices returns the vertex buffer. Callers must treat it as read-only.
func (m *Mesh) Vertices() []rl.Vector3 {
	return m.vertices
}

// Indices returns the index buffer, three entries per triangle.
func (m *Mesh) Indices() []int {
	return m.indices
}

// Submeshes returns the submesh ranges in storage order.
func (m *Mesh) Submeshes() []Submesh {
	return m.submeshes
}

// TriangleCount returns the number of triangles across all submeshes.
func (m *Mesh) TriangleCount() int {
	return len(m.indices) / 3
}

// Triangle returns the vertices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c rl.Vector3) {
	return m.vertices[m.indices[i*3]], m.vertices[m.indices[i*3+1]], m.vertices[m.indices[i*3+2]]
}

// EachTriangle calls fn for every triangle of every submesh in storage order.
func (m *Mesh) EachTriangle(fn func(a, b, c rl.Vector3)) {
	for _, sub := range m.submeshes {
		for i := sub.First; i < sub.First+sub.Count; i++ {
			fn(m.Triangle(i))
		}
	}
}

// BoundingRadiusSq is the largest squared distance from the local origin to
// any vertex.
func (m *Mesh) BoundingRadiusSq() float32 {
	return m.radiusSq
}

// BoundingRadius is the square root of BoundingRadiusSq.
func (m *Mesh) BoundingRadius() float32 {
	return float32(math.Sqrt(float64(m.radiusSq)))
}

// Fingerprint hashes the geometry so identical meshes can be shared.
func (m *Mesh) Fingerprint() uint64 {
	return m.fingerprint
}

// Transformed returns a copy of the mesh with every vertex passed through mat.
func (m *Mesh) Transformed(mat rl.Matrix) *Mesh {
	vertices := make([]rl.Vector3, len(m.vertices))
	for i, v := range m.vertices {
		vertices[i] = rl.Vector3Transform(v, mat)
	}
	out := &Mesh{
		vertices:  vertices,
		indices:   m.indices,
		submeshes: m.submeshes,
	}
	out.finish()
	return out
}

func (m *Mesh) finish() {
	m.radiusSq = 0
	for _, v := range m.vertices {
		if d := rl.Vector3DotProduct(v, v); d > m.radiusSq {
			m.radiusSq = d
		}
	}

	h := xxhash.New()
	var buf [4]byte
	for _, v := range m.vertices {
		for _, f := range [3]float32{v.X, v.Y, v.Z} {
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
			h.Write(buf[:])
		}
	}
	for _, idx := range m.indices {
		binary.LittleEndian.PutUint32(buf[:], uint32(idx))
		h.Write(buf[:])
	}
	m.fingerprint = h.Sum64()
}

func (m *Mesh) String() string {
	return fmt.Sprintf("mesh(%d vertices, %d triangles, %d submeshes)", len(m.vertices), m.TriangleCount(), len(m.submeshes))
}
