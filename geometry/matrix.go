package geometry

import "github.com/chewxy/math32"

// Matrix is a row-major 4x4 transform using the row-vector convention: a
// point is transformed as v * M, so world * view * projection applies the
// world transform first.
type Matrix [4][4]float32

// Quaternion is a rotation stored as (X, Y, Z) vector part and W scalar part.
type Quaternion struct {
	X, Y, Z, W float32
}

func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Multiply returns m1 * m2.
func (m1 Matrix) Multiply(m2 Matrix) (result Matrix) {
	for i := range result {
		for j := range result[i] {
			for k := 0; k < 4; k++ {
				result[i][j] += m1[i][k] * m2[k][j]
			}
		}
	}

	return
}

// Transpose swaps rows and columns, converting between the row-vector and
// column-vector conventions.
func (m Matrix) Transpose() (result Matrix) {
	for i := range m {
		for j := range m[i] {
			result[j][i] = m[i][j]
		}
	}

	return
}

// TransformCoordinate applies m to the point v with an implicit w of 1 and
// divides the result by the transformed w.
func (m Matrix) TransformCoordinate(v Vector3) Vector3 {
	var x float32 = v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + m[3][0]
	var y float32 = v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + m[3][1]
	var z float32 = v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + m[3][2]
	var w float32 = v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + m[3][3]

	var homogeneous float32 = 1 / w

	return Vector3{x * homogeneous, y * homogeneous, z * homogeneous}
}

func Translation(position Vector3) Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{position.X, position.Y, position.Z, 1},
	}
}

func Scaling(scale Vector3) Matrix {
	return Matrix{
		{scale.X, 0, 0, 0},
		{0, scale.Y, 0, 0},
		{0, 0, scale.Z, 0},
		{0, 0, 0, 1},
	}
}

// QuaternionYawPitchRoll builds the rotation that applies roll around Z,
// then pitch around X, then yaw around Y. Angles are in radians.
func QuaternionYawPitchRoll(yaw, pitch, roll float32) Quaternion {
	var halfYaw, halfPitch, halfRoll float32 = yaw * .5, pitch * .5, roll * .5

	sinYaw, cosYaw := math32.Sin(halfYaw), math32.Cos(halfYaw)
	sinPitch, cosPitch := math32.Sin(halfPitch), math32.Cos(halfPitch)
	sinRoll, cosRoll := math32.Sin(halfRoll), math32.Cos(halfRoll)

	return Quaternion{
		X: cosYaw*sinPitch*cosRoll + sinYaw*cosPitch*sinRoll,
		Y: sinYaw*cosPitch*cosRoll - cosYaw*sinPitch*sinRoll,
		Z: cosYaw*cosPitch*sinRoll - sinYaw*sinPitch*cosRoll,
		W: cosYaw*cosPitch*cosRoll + sinYaw*sinPitch*sinRoll,
	}
}

// RotationQuaternion converts the unit quaternion r to a rotation matrix.
func RotationQuaternion(r Quaternion) Matrix {
	return Matrix{
		{1 - 2*r.Y*r.Y - 2*r.Z*r.Z, 2*r.X*r.Y + 2*r.Z*r.W, 2*r.X*r.Z - 2*r.Y*r.W, 0},
		{2*r.X*r.Y - 2*r.Z*r.W, 1 - 2*r.X*r.X - 2*r.Z*r.Z, 2*r.Y*r.Z + 2*r.W*r.X, 0},
		{2*r.X*r.Z + 2*r.Y*r.W, 2*r.Y*r.Z - 2*r.W*r.X, 1 - 2*r.X*r.X - 2*r.Y*r.Y, 0},
		{0, 0, 0, 1},
	}
}

func RotationYawPitchRoll(yaw, pitch, roll float32) Matrix {
	return RotationQuaternion(QuaternionYawPitchRoll(yaw, pitch, roll))
}

// LookAtLH builds a left-handed view matrix for an eye looking at target.
func LookAtLH(eye, target, up Vector3) Matrix {
	var zAxis Vector3 = target.Sub(eye).Normalize()
	var xAxis Vector3 = up.Cross(zAxis).Normalize()
	var yAxis Vector3 = zAxis.Cross(xAxis)

	return Matrix{
		{xAxis.X, yAxis.X, zAxis.X, 0},
		{xAxis.Y, yAxis.Y, zAxis.Y, 0},
		{xAxis.Z, yAxis.Z, zAxis.Z, 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	}
}

// PerspectiveFovLH builds a left-handed perspective projection. fov is the
// vertical field of view in radians. Depth grows with distance from the eye
// and maps near to 0 and far to 1.
func PerspectiveFovLH(fov, aspect, near, far float32) Matrix {
	var yScale float32 = 1 / math32.Tan(fov*.5)
	var xScale float32 = yScale / aspect

	return Matrix{
		{xScale, 0, 0, 0},
		{0, yScale, 0, 0},
		{0, 0, far / (far - near), 1},
		{0, 0, -near * far / (far - near), 0},
	}
}
