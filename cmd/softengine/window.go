package main

import (
	"strconv"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"softengine/config"
	"softengine/geometry"
	"softengine/present"
	"softengine/render"
)

// viewer animates the scene once per tick and shows the last presented frame.
type viewer struct {
	renderer  *render.Renderer
	sink      *present.MemorySink
	meshes    []*geometry.Mesh
	camera    geometry.Camera
	animation config.AnimationConfig

	baseTarget geometry.Vector3
	phase      float32

	scratch []byte
	pixels  []byte
	image   *ebiten.Image
}

func newViewer(cfg config.Config, renderer *render.Renderer, sink *present.MemorySink, meshes []*geometry.Mesh) *viewer {
	var camera geometry.Camera = cfg.ViewCamera()

	return &viewer{
		renderer:   renderer,
		sink:       sink,
		meshes:     meshes,
		camera:     camera,
		animation:  cfg.Animation,
		baseTarget: camera.Target,
		scratch:    make([]byte, 0, sink.Width()*sink.Height()*4),
		pixels:     make([]byte, sink.Width()*sink.Height()*4),
	}
}

// step advances the meshes and camera by one frame.
func (v *viewer) step() {
	for _, mesh := range v.meshes {
		mesh.Rotation.Y += v.animation.RotationStep
	}

	v.phase += v.animation.BobSpeed
	v.camera.Target = v.baseTarget.Add(geometry.UnitY.Scale(math32.Sin(v.phase) * v.animation.BobHeight))
}

func (v *viewer) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	v.step()

	return v.renderer.Draw(v.camera, v.meshes...)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.image == nil {
		v.image = ebiten.NewImage(v.sink.Width(), v.sink.Height())
	}

	v.scratch = v.sink.Snapshot(v.scratch[:0])
	present.SwizzleBGRA(v.pixels, v.scratch)

	v.image.WritePixels(v.pixels)
	screen.DrawImage(v.image, nil)

	ebitenutil.DebugPrint(screen, strconv.Itoa(int(ebiten.ActualFPS())))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.sink.Width(), v.sink.Height()
}
