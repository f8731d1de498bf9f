// Package scene loads meshes from Babylon JSON scene files.
package scene

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"golang.org/x/sync/errgroup"

	"softengine/geometry"
)

// YAxis chooses how stored Y coordinates are read.
type YAxis int

const (
	// YAsStored keeps Y as written in the file.
	YAsStored YAxis = iota

	// YNegated flips the sign of every Y coordinate.
	YNegated
)

func (axis YAxis) String() string {
	switch axis {
	case YAsStored:
		return "as-stored"
	case YNegated:
		return "negated"
	}

	return fmt.Sprintf("YAxis(%d)", int(axis))
}

func (axis YAxis) MarshalText() ([]byte, error) {
	return []byte(axis.String()), nil
}

func (axis *YAxis) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "as-stored", "":
		*axis = YAsStored
	case "negated":
		*axis = YNegated
	default:
		return fmt.Errorf("unknown y axis convention %q", text)
	}

	return nil
}

type Options struct {
	YAxis YAxis
}

// SceneLoadError wraps every failure to read or decode a scene. Mesh is empty
// when the failure is not specific to one mesh.
type SceneLoadError struct {
	Name string
	Mesh string
	Err  error
}

func (e *SceneLoadError) Error() string {
	if e.Mesh != "" {
		return fmt.Sprintf("load scene %s: mesh %q: %v", e.Name, e.Mesh, e.Err)
	}

	return fmt.Sprintf("load scene %s: %v", e.Name, e.Err)
}

func (e *SceneLoadError) Unwrap() error { return e.Err }

// file and meshRecord mirror the parts of a Babylon scene the loader reads.
type file struct {
	Meshes []meshRecord `json:"meshes"`
}

type meshRecord struct {
	Name      string    `json:"name"`
	Positions []float32 `json:"positions"`
	UVCount   int       `json:"uvCount"`
	Indices   []int     `json:"indices"`
	Position  []float32 `json:"position"`
	Rotation  []float32 `json:"rotation"`
}

// stride returns how many floats each vertex occupies in Positions.
func (record *meshRecord) stride() (int, error) {
	switch record.UVCount {
	case 0:
		return 3, nil
	case 1:
		return 4, nil
	case 2:
		return 5, nil
	}

	return 0, fmt.Errorf("unsupported uvCount %d", record.UVCount)
}

func vector(values []float32, field string) (geometry.Vector3, error) {
	if len(values) != 3 {
		return geometry.Vector3{}, fmt.Errorf("%s has %d components, want 3", field, len(values))
	}

	return geometry.Vector3{X: values[0], Y: values[1], Z: values[2]}, nil
}

func (record *meshRecord) mesh(options Options) (*geometry.Mesh, error) {
	stride, err := record.stride()
	if err != nil {
		return nil, err
	}

	if len(record.Positions) == 0 {
		return nil, errors.New("no positions")
	}

	if len(record.Positions)%stride != 0 {
		return nil, fmt.Errorf("%d positions is not a multiple of the vertex stride %d", len(record.Positions), stride)
	}

	if len(record.Indices)%3 != 0 {
		return nil, fmt.Errorf("%d indices is not a multiple of 3", len(record.Indices))
	}

	var vertices []geometry.Vertex = make([]geometry.Vertex, len(record.Positions)/stride)

	for index := range vertices {
		var x, y, z float32 = record.Positions[index*stride], record.Positions[index*stride+1], record.Positions[index*stride+2]

		if options.YAxis == YNegated {
			y = -y
		}

		vertices[index].Position = geometry.Vector3{X: x, Y: y, Z: z}
	}

	var faces []geometry.Face = make([]geometry.Face, len(record.Indices)/3)

	for index := range faces {
		faces[index] = geometry.Face{A: record.Indices[index*3], B: record.Indices[index*3+1], C: record.Indices[index*3+2]}
	}

	mesh, err := geometry.NewMesh(record.Name, vertices, faces)
	if err != nil {
		return nil, err
	}

	if mesh.Position, err = vector(record.Position, "position"); err != nil {
		return nil, err
	}

	if record.Rotation != nil {
		if mesh.Rotation, err = vector(record.Rotation, "rotation"); err != nil {
			return nil, err
		}
	}

	return mesh, nil
}

// Decode reads a Babylon scene from r. name is only used in errors.
func Decode(r io.Reader, name string, options Options) ([]*geometry.Mesh, error) {
	var scene file

	if err := json.NewDecoder(r).Decode(&scene); err != nil {
		return nil, &SceneLoadError{Name: name, Err: err}
	}

	if len(scene.Meshes) == 0 {
		return nil, &SceneLoadError{Name: name, Err: errors.New("no meshes")}
	}

	var meshes []*geometry.Mesh = make([]*geometry.Mesh, 0, len(scene.Meshes))

	for index := range scene.Meshes {
		var record *meshRecord = &scene.Meshes[index]

		mesh, err := record.mesh(options)
		if err != nil {
			var meshName string = record.Name
			if meshName == "" {
				meshName = fmt.Sprintf("#%d", index)
			}

			return nil, &SceneLoadError{Name: name, Mesh: meshName, Err: err}
		}

		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

// Load reads the scene called name from fsys.
func Load(ctx context.Context, fsys fs.FS, name string, options Options) ([]*geometry.Mesh, error) {
	if err := ctx.Err(); err != nil {
		return nil, &SceneLoadError{Name: name, Err: err}
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, &SceneLoadError{Name: name, Err: err}
	}
	defer f.Close()

	return Decode(f, name, options)
}

// LoadAll loads several scenes concurrently and returns their meshes in the
// order the names were given. The first failure cancels the others.
func LoadAll(ctx context.Context, fsys fs.FS, names []string, options Options) ([]*geometry.Mesh, error) {
	var results [][]*geometry.Mesh = make([][]*geometry.Mesh, len(names))

	group, ctx := errgroup.WithContext(ctx)

	for index, name := range names {
		group.Go(func() error {
			meshes, err := Load(ctx, fsys, name, options)
			results[index] = meshes
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	var meshes []*geometry.Mesh
	for _, result := range results {
		meshes = append(meshes, result...)
	}

	return meshes, nil
}

// Pending is a scene load running in the background. It resolves once.
type Pending struct {
	done   chan struct{}
	meshes []*geometry.Mesh
	err    error
}

// LoadAsync starts loading names from fsys and returns immediately.
func LoadAsync(ctx context.Context, fsys fs.FS, names []string, options Options) *Pending {
	var pending *Pending = &Pending{done: make(chan struct{})}

	go func() {
		defer close(pending.done)
		pending.meshes, pending.err = LoadAll(ctx, fsys, names, options)
	}()

	return pending
}

// Done is closed when the load has finished.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the load finishes or ctx is done.
func (p *Pending) Wait(ctx context.Context) ([]*geometry.Mesh, error) {
	select {
	case <-p.done:
		return p.meshes, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
