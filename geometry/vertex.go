package geometry

import "github.com/chewxy/math32"

// Vector2 is a point or direction on the screen plane.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a point or direction in model, world or screen space.
type Vector3 struct {
	X, Y, Z float32
}

var (
	Zero3 = Vector3{}
	UnitY = Vector3{0, 1, 0}
)

// V2 returns the Vector2 (x, y).
func V2(x, y float32) Vector2 { return Vector2{x, y} }

// V3 returns the Vector3 (x, y, z).
func V3(x, y, z float32) Vector3 { return Vector3{x, y, z} }

func (v1 Vector2) Add(v2 Vector2) Vector2 {
	return Vector2{v1.X + v2.X, v1.Y + v2.Y}
}

func (v1 Vector2) Sub(v2 Vector2) Vector2 {
	return Vector2{v1.X - v2.X, v1.Y - v2.Y}
}

func (v Vector2) Div(scalar float32) Vector2 {
	return Vector2{v.X / scalar, v.Y / scalar}
}

func (v Vector2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v1 Vector3) Add(v2 Vector3) Vector3 {
	return Vector3{v1.X + v2.X, v1.Y + v2.Y, v1.Z + v2.Z}
}

func (v1 Vector3) Sub(v2 Vector3) Vector3 {
	return Vector3{v1.X - v2.X, v1.Y - v2.Y, v1.Z - v2.Z}
}

func (v Vector3) Scale(scalar float32) Vector3 {
	return Vector3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

func (v Vector3) Div(scalar float32) Vector3 {
	return Vector3{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

func (v1 Vector3) Dot(v2 Vector3) float32 {
	return v1.X*v2.X + v1.Y*v2.Y + v1.Z*v2.Z
}

func (v1 Vector3) Cross(v2 Vector3) Vector3 {
	return Vector3{
		v1.Y*v2.Z - v1.Z*v2.Y,
		v1.Z*v2.X - v1.X*v2.Z,
		v1.X*v2.Y - v1.Y*v2.X,
	}
}

// Length returns the magnitude of v.
func (v Vector3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vector3) Normalize() Vector3 {
	var length float32 = v.Length()

	if length == 0 {
		return v
	}

	return v.Div(length)
}

// XY drops the Z component.
func (v Vector3) XY() Vector2 {
	return Vector2{v.X, v.Y}
}

// Vertex is a model-space position owned by a Mesh.
type Vertex struct {
	Position Vector3
}
