package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"sweep3d/internal/engine"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum builds the frustum of a camera for the given aspect ratio.
func ExtractFrustum(camera rl.Camera3D, aspect float32) Frustum {
	// MatrixLookAt stores its rows where the projection builders store
	// columns; transposing puts both in the same layout.
	view := rl.MatrixTranspose(rl.MatrixLookAt(camera.Position, camera.Target, camera.Up))

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		// Fovy in degrees.
		proj = rl.MatrixPerspective(camera.Fovy, aspect, 0.1, 1000.0)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, 0.1, 1000.0)
	}

	// VP = P * V
	return FrustumFromMatrix(rl.MatrixMultiply(view, proj))
}

// FrustumFromMatrix extracts the planes of a view-projection matrix with the
// Gribb/Hartmann method.
func FrustumFromMatrix(vp rl.Matrix) Frustum {
	rows := [4][4]float32{
		{vp.M0, vp.M4, vp.M8, vp.M12},
		{vp.M1, vp.M5, vp.M9, vp.M13},
		{vp.M2, vp.M6, vp.M10, vp.M14},
		{vp.M3, vp.M7, vp.M11, vp.M15},
	}

	var f Frustum
	for axis := 0; axis < 3; axis++ {
		for side, sign := range [2]float32{1, -1} {
			r := rows[axis]
			f.planes[axis*2+side] = normalizePlane(Plane{
				normal: rl.Vector3{
					X: rows[3][0] + sign*r[0],
					Y: rows[3][1] + sign*r[1],
					Z: rows[3][2] + sign*r[2],
				},
				distance: rows[3][3] + sign*r[3],
			})
		}
	}
	return f
}

// normalizePlane normalizes a plane equation
func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := 0; i < 6; i++ {
		dist := rl.Vector3DotProduct(f.planes[i].normal, center) + f.planes[i].distance
		if dist < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}

// Visible returns the objects whose bounding sphere touches the frustum, in
// scene order.
func (f *Frustum) Visible(scene *engine.Scene) []engine.Handle {
	var out []engine.Handle
	scene.Each(func(h engine.Handle, o *engine.Object) {
		if o.Mesh == nil {
			return
		}
		if f.ContainsSphere(o.Position, o.Mesh.BoundingRadius()) {
			out = append(out, h)
		}
	})
	return out
}
