package geometry

import "fmt"

// Face is a triangle given as three indices into its Mesh's vertex list.
type Face struct {
	A, B, C int
}

// Indices returns the corners of f in drawing order.
func (f Face) Indices() [3]int {
	return [3]int{f.A, f.B, f.C}
}

// Mesh owns its vertices and faces. Position and Rotation (Euler angles in
// radians, X pitch, Y yaw, Z roll) are updated between frames; Scale of zero
// is treated as one.
type Mesh struct {
	Name string

	Vertices []Vertex
	Faces    []Face

	Position Vector3
	Rotation Vector3
	Scale    Vector3
}

// MalformedMeshError reports a face that references a vertex outside the mesh.
type MalformedMeshError struct {
	Mesh        string
	Face        int
	Index       int
	VertexCount int
}

func (e *MalformedMeshError) Error() string {
	return fmt.Sprintf("mesh %q: face %d references vertex %d, mesh has %d vertices", e.Mesh, e.Face, e.Index, e.VertexCount)
}

// NewMesh builds a mesh and checks every face index.
func NewMesh(name string, vertices []Vertex, faces []Face) (*Mesh, error) {
	var mesh *Mesh = &Mesh{Name: name, Vertices: vertices, Faces: faces}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	return mesh, nil
}

// Validate returns a *MalformedMeshError for the first face with an index
// outside [0, len(Vertices)).
func (mesh *Mesh) Validate() error {
	for index, face := range mesh.Faces {
		for _, corner := range face.Indices() {
			if corner < 0 || corner >= len(mesh.Vertices) {
				return &MalformedMeshError{mesh.Name, index, corner, len(mesh.Vertices)}
			}
		}
	}

	return nil
}

// Triangle returns the positions of the three corners of face i.
func (mesh *Mesh) Triangle(i int) (a, b, c Vector3) {
	var face Face = mesh.Faces[i]

	return mesh.Vertices[face.A].Position, mesh.Vertices[face.B].Position, mesh.Vertices[face.C].Position
}

// World builds the model matrix: scale, then rotation, then translation.
func (mesh *Mesh) World() Matrix {
	var world Matrix = RotationYawPitchRoll(mesh.Rotation.Y, mesh.Rotation.X, mesh.Rotation.Z).Multiply(Translation(mesh.Position))

	if mesh.Scale != Zero3 {
		world = Scaling(mesh.Scale).Multiply(world)
	}

	return world
}
