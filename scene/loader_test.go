package scene

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softengine/geometry"
)

func TestLoadTestdata(t *testing.T) {
	meshes, err := Load(context.Background(), os.DirFS("testdata"), "square.babylon", Options{})
	require.NoError(t, err)
	require.Len(t, meshes, 2)

	square := meshes[0]
	assert.Equal(t, "Square", square.Name)
	assert.Len(t, square.Vertices, 4)
	assert.Equal(t, []geometry.Face{{A: 0, B: 1, C: 2}, {A: 0, B: 2, C: 3}}, square.Faces)
	assert.Equal(t, geometry.V3(0.5, 0.5, 0), square.Vertices[2].Position)

	tile := meshes[1]
	assert.Len(t, tile.Vertices, 3)
	assert.Equal(t, geometry.V3(0, 2, 0), tile.Vertices[2].Position)
	assert.Equal(t, geometry.V3(2, 1, -1), tile.Position)
	assert.Equal(t, geometry.Zero3, tile.Rotation)
}

func TestDecodeStrides(t *testing.T) {
	tests := []struct {
		uvCount   string
		positions string
		last      geometry.Vector3
	}{
		{"0", "0,0,0, 1,0,0, 0,1,3", geometry.V3(0, 1, 3)},
		{"1", "0,0,0,9, 1,0,0,9, 0,1,3,9", geometry.V3(0, 1, 3)},
		{"2", "0,0,0,9,9, 1,0,0,9,9, 0,1,3,9,9", geometry.V3(0, 1, 3)},
	}

	for _, tc := range tests {
		t.Run("uvCount "+tc.uvCount, func(t *testing.T) {
			data := `{"meshes":[{"name":"m","position":[0,0,0],"uvCount":` + tc.uvCount +
				`,"positions":[` + tc.positions + `],"indices":[0,1,2]}]}`

			meshes, err := Decode(strings.NewReader(data), "inline", Options{})
			require.NoError(t, err)
			require.Len(t, meshes[0].Vertices, 3)
			assert.Equal(t, tc.last, meshes[0].Vertices[2].Position)
		})
	}
}

func TestDecodeNegatedY(t *testing.T) {
	data := `{"meshes":[{"name":"m","position":[0,4,0],"positions":[0,1,0, 1,-2,0, 0,3,0],"indices":[0,1,2]}]}`

	meshes, err := Decode(strings.NewReader(data), "inline", Options{YAxis: YNegated})
	require.NoError(t, err)

	assert.Equal(t, float32(-1), meshes[0].Vertices[0].Position.Y)
	assert.Equal(t, float32(2), meshes[0].Vertices[1].Position.Y)
	// only vertex positions are flipped
	assert.Equal(t, geometry.V3(0, 4, 0), meshes[0].Position)
}

func TestDecodeRejectsMalformedScenes(t *testing.T) {
	tests := map[string]string{
		"not json":       `{"meshes": [`,
		"wrong type":     `{"meshes": [{"positions": "abc"}]}`,
		"no meshes":      `{"meshes": []}`,
		"bad uv count":   `{"meshes":[{"name":"m","uvCount":3,"position":[0,0,0],"positions":[0,0,0],"indices":[]}]}`,
		"ragged vertex":  `{"meshes":[{"name":"m","position":[0,0,0],"positions":[0,0,0,1],"indices":[]}]}`,
		"ragged indices": `{"meshes":[{"name":"m","position":[0,0,0],"positions":[0,0,0],"indices":[0,0]}]}`,
		"no positions":   `{"meshes":[{"name":"m","position":[0,0,0],"indices":[]}]}`,
		"short position": `{"meshes":[{"name":"m","position":[0,0],"positions":[0,0,0],"indices":[]}]}`,
		"bad rotation":   `{"meshes":[{"name":"m","position":[0,0,0],"rotation":[1],"positions":[0,0,0],"indices":[]}]}`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(data), "inline", Options{})

			var loadErr *SceneLoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, "inline", loadErr.Name)
		})
	}
}

func TestDecodeIndexOutOfRange(t *testing.T) {
	data := `{"meshes":[{"name":"m","position":[0,0,0],"positions":[0,0,0, 1,0,0, 0,1,0],"indices":[0,1,3]}]}`

	_, err := Decode(strings.NewReader(data), "inline", Options{})

	var loadErr *SceneLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "m", loadErr.Mesh)

	var malformed *geometry.MalformedMeshError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 3, malformed.Index)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), fstest.MapFS{}, "monkey.babylon", Options{})

	var loadErr *SceneLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadAsync(t *testing.T) {
	fsys := fstest.MapFS{
		"a.babylon": {Data: []byte(`{"meshes":[{"name":"a","position":[0,0,0],"positions":[0,0,0],"indices":[]}]}`)},
		"b.babylon": {Data: []byte(`{"meshes":[{"name":"b","position":[0,0,0],"positions":[0,0,0],"indices":[]}]}`)},
	}

	pending := LoadAsync(context.Background(), fsys, []string{"b.babylon", "a.babylon"}, Options{})
	meshes, err := pending.Wait(context.Background())
	require.NoError(t, err)
	require.Len(t, meshes, 2)
	assert.Equal(t, "b", meshes[0].Name)
	assert.Equal(t, "a", meshes[1].Name)

	<-pending.Done()

	pending = LoadAsync(context.Background(), fsys, []string{"a.babylon", "missing.babylon"}, Options{})
	_, err = pending.Wait(context.Background())
	var loadErr *SceneLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "missing.babylon", loadErr.Name)
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, os.DirFS("testdata"), "square.babylon", Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestYAxisText(t *testing.T) {
	var axis YAxis
	require.NoError(t, axis.UnmarshalText([]byte("negated")))
	assert.Equal(t, YNegated, axis)
	assert.Error(t, axis.UnmarshalText([]byte("up")))
}
