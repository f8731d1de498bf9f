package geometry

// WorldUp is the fixed up direction used for every view matrix.
var WorldUp = UnitY

// Camera is held by value; copying a Camera never shares its vectors.
type Camera struct {
	Position Vector3
	Target   Vector3
}

func (camera Camera) View() Matrix {
	return LookAtLH(camera.Position, camera.Target, WorldUp)
}
