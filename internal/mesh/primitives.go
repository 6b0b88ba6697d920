package mesh

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// face appends a quad centered at c whose front faces u x v.
func face(b *Builder, c, u, v rl.Vector3) {
	b.AddQuad(
		rl.Vector3Subtract(rl.Vector3Subtract(c, u), v),
		rl.Vector3Subtract(rl.Vector3Add(c, u), v),
		rl.Vector3Add(rl.Vector3Add(c, u), v),
		rl.Vector3Add(rl.Vector3Subtract(c, u), v),
	)
}

// Plane is a width x depth floor on y=0 centered at the origin, facing +Y.
func Plane(width, depth float32) *Mesh {
	b := NewBuilder()
	b.Submesh("plane")
	face(b, rl.Vector3{}, rl.Vector3{Z: depth / 2}, rl.Vector3{X: width / 2})
	return mustBuild(b)
}

// Quad is a single quad with corners a, b, c, d; the front face is the side
// (b-a)x(c-a) points to.
func Quad(a, b, c, d rl.Vector3) *Mesh {
	bl := NewBuilder()
	bl.Submesh("quad")
	bl.AddQuad(a, b, c, d)
	return mustBuild(bl)
}

// Box is an axis aligned box centered at the origin with outward faces.
func Box(size rl.Vector3) *Mesh {
	h := rl.Vector3Scale(size, 0.5)
	x := rl.Vector3{X: h.X}
	y := rl.Vector3{Y: h.Y}
	z := rl.Vector3{Z: h.Z}

	b := NewBuilder()
	b.Submesh("box")
	face(b, x, y, z)                   // +X
	face(b, rl.Vector3Negate(x), z, y) // -X
	face(b, y, z, x)                   // +Y
	face(b, rl.Vector3Negate(y), x, z) // -Y
	face(b, z, x, y)                   // +Z
	face(b, rl.Vector3Negate(z), y, x) // -Z
	return mustBuild(b)
}

// Ramp is a slope of the given width that rises by height over length along
// +Z, starting at the origin. Only the walkable top is generated.
func Ramp(width, length, height float32) *Mesh {
	w := width / 2
	b := NewBuilder()
	b.Submesh("ramp")
	b.AddQuad(
		rl.Vector3{X: w},
		rl.Vector3{X: -w},
		rl.Vector3{X: -w, Y: height, Z: length},
		rl.Vector3{X: w, Y: height, Z: length},
	)
	return mustBuild(b)
}
