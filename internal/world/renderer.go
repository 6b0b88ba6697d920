package world

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"sweep3d/internal/engine"
	"sweep3d/internal/mesh"
	"sweep3d/internal/physics"
)

// Renderer draws collision geometry for debugging. It needs an open raylib
// window.
type Renderer struct {
	Wireframe bool
	Bounds    bool

	drawn int
}

func NewRenderer() *Renderer {
	return &Renderer{Wireframe: true}
}

// Draw renders every object of the level inside the camera frustum.
func (r *Renderer) Draw(l *Level, camera rl.Camera3D) {
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	f := ExtractFrustum(camera, aspect)

	r.drawn = 0
	for _, h := range f.Visible(l.Scene) {
		o, _ := l.Scene.Get(h)
		r.drawObject(o, l.Color(h))
		r.drawn++
	}
}

// Drawn returns how many objects survived culling in the last Draw.
func (r *Renderer) Drawn() int {
	return r.drawn
}

func (r *Renderer) drawObject(o *engine.Object, color rl.Color) {
	edge := rl.Fade(rl.Black, 0.6)
	o.Mesh.EachTriangle(func(a, b, c rl.Vector3) {
		a, b, c = o.ToWorld(a), o.ToWorld(b), o.ToWorld(c)
		rl.DrawTriangle3D(a, b, c, color)
		if r.Wireframe {
			rl.DrawLine3D(a, b, edge)
			rl.DrawLine3D(b, c, edge)
			rl.DrawLine3D(c, a, edge)
		}
	})
	if r.Bounds {
		rl.DrawSphereWires(o.Position, o.Mesh.BoundingRadius(), 8, 8, rl.Fade(rl.SkyBlue, 0.3))
	}
}

// DrawHit marks a contact point and its normal.
func (r *Renderer) DrawHit(hit physics.CollisionHit) {
	if !hit.Hit {
		return
	}
	rl.DrawSphere(hit.Point, 0.08, rl.Red)
	rl.DrawLine3D(hit.Point, rl.Vector3Add(hit.Point, hit.Normal), rl.Yellow)
}

// DrawAgent draws the agent sphere.
func (r *Renderer) DrawAgent(pos rl.Vector3, radius float32, grounded bool) {
	color := rl.Orange
	if grounded {
		color = rl.Lime
	}
	rl.DrawSphereWires(pos, radius, 12, 12, color)
}

// LoadModelMesh loads a model file through raylib and copies its triangles.
// It needs an open window.
func LoadModelMesh(path string) (*mesh.Mesh, error) {
	model := rl.LoadModel(path)
	defer rl.UnloadModel(model)
	if model.MeshCount == 0 {
		return nil, fmt.Errorf("load model %s: no meshes", path)
	}
	return mesh.FromModel(model)
}
