package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"sweep3d/internal/mesh"
)

var (
	axisX = rl.Vector3{X: 1}
	axisY = rl.Vector3{Y: 1}
	axisZ = rl.Vector3{Z: 1}
)

// Object is a placed, rigid piece of static geometry. The mesh is shared and
// read-only; only the placement changes.
type Object struct {
	ID       uuid.UUID
	Name     string
	Tags     []string
	Position rl.Vector3
	Rotation rl.Quaternion // unit quaternion, local to world
	Mesh     *mesh.Mesh
}

func NewObject(name string, m *mesh.Mesh) *Object {
	return &Object{
		ID:       uuid.New(),
		Name:     name,
		Rotation: rl.QuaternionIdentity(),
		Mesh:     m,
		Tags:     make([]string, 0),
	}
}

func (o *Object) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (o *Object) AddTag(tag string) {
	if !o.HasTag(tag) {
		o.Tags = append(o.Tags, tag)
	}
}

// BoundingRadiusSq returns the mesh bounding sphere, or zero without a mesh.
func (o *Object) BoundingRadiusSq() float32 {
	if o.Mesh == nil {
		return 0
	}
	return o.Mesh.BoundingRadiusSq()
}

// ToLocal transforms a world space point into the object's frame.
func (o *Object) ToLocal(p rl.Vector3) rl.Vector3 {
	return o.DirToLocal(rl.Vector3Subtract(p, o.Position))
}

// DirToLocal rotates a world space direction into the object's frame.
func (o *Object) DirToLocal(d rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(d, rl.QuaternionInvert(o.Rotation))
}

// ToWorld transforms a local point into world space.
func (o *Object) ToWorld(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(o.DirToWorld(p), o.Position)
}

// DirToWorld rotates a local direction into world space.
func (o *Object) DirToWorld(d rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(d, o.Rotation)
}

// Forward is the object's local -Z axis in world space.
func (o *Object) Forward() rl.Vector3 {
	return o.DirToWorld(rl.Vector3{Z: -1})
}

// Right is the object's local +X axis in world space.
func (o *Object) Right() rl.Vector3 {
	return o.DirToWorld(axisX)
}

// Turn rotates around the world up axis. Angles are in radians.
func (o *Object) Turn(angle float32) {
	q := rl.QuaternionFromAxisAngle(axisY, angle)
	o.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(q, o.Rotation))
}

// Pitch rotates around the local X axis.
func (o *Object) Pitch(angle float32) {
	o.rotateLocal(axisX, angle)
}

// Yaw rotates around the local Y axis.
func (o *Object) Yaw(angle float32) {
	o.rotateLocal(axisY, angle)
}

// Roll rotates around the local Z axis.
func (o *Object) Roll(angle float32) {
	o.rotateLocal(axisZ, angle)
}

func (o *Object) rotateLocal(axis rl.Vector3, angle float32) {
	q := rl.QuaternionFromAxisAngle(axis, angle)
	o.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(o.Rotation, q))
}

// Walk returns the world space displacement for a walk-style move: right
// along the local X axis, up along world Y and forward along the horizontal
// heading, so pitching does not make the object fly.
func (o *Object) Walk(right, up, forward float32) rl.Vector3 {
	r := o.Right()
	heading := rl.Vector3Normalize(rl.Vector3CrossProduct(axisY, r))
	d := rl.Vector3Scale(heading, forward)
	d = rl.Vector3Add(d, rl.Vector3Scale(r, right))
	return rl.Vector3Add(d, rl.Vector3Scale(axisY, up))
}

// Move applies Walk to the position without collision.
func (o *Object) Move(right, up, forward float32) {
	o.Position = rl.Vector3Add(o.Position, o.Walk(right, up, forward))
}
