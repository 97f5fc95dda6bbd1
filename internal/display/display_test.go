package display

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-terrain/internal/grid"
	"github.com/Faultbox/midgard-terrain/internal/terrain"
)

func TestTextureFromColorMap(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	c := terrain.ColorGrid{Width: 2, Height: 1, Colors: []color.RGBA{red, {}}}

	img := TextureFromColorMap(c)
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != red {
		t.Errorf("pixel 0 = %v, want %v", got, red)
	}
	if got := img.RGBAAt(1, 0); got != Unset {
		t.Errorf("unset pixel = %v, want %v", got, Unset)
	}
}

func TestTextureFromHeightMap(t *testing.T) {
	g := grid.New(3, 1)
	g.Set(0, 0, 0)
	g.Set(1, 0, 1)
	g.Set(2, 0, 2) // clamped

	img := TextureFromHeightMap(g)
	if got := img.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("height 0 = %v, want black", got)
	}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if got := img.RGBAAt(1, 0); got != white {
		t.Errorf("height 1 = %v, want white", got)
	}
	if got := img.RGBAAt(2, 0); got != white {
		t.Errorf("height 2 = %v, want white", got)
	}
}

func TestReliefFromFlatMesh(t *testing.T) {
	g := grid.New(7, 7)
	m, err := terrain.BuildMesh(g, 1, nil, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	img := ReliefFromMesh(m, nil)
	if img.Bounds().Dx() != m.VerticesPerLine {
		t.Fatalf("width = %d, want %d", img.Bounds().Dx(), m.VerticesPerLine)
	}
	first := img.RGBAAt(0, 0)
	for y := range m.VerticesPerLine {
		for x := range m.VerticesPerLine {
			if got := img.RGBAAt(x, y); got != first {
				t.Fatalf("pixel (%d,%d) = %v, want uniform %v", x, y, got, first)
			}
		}
	}
	if first.R == 0 || first.R > 200 {
		t.Errorf("flat shade = %v", first)
	}
}

func TestPNGWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "previews")
	w := NewPNGWriter(dir, "chunk", 3)

	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	src.SetRGBA(3, 1, color.RGBA{G: 255, A: 255})

	path, err := w.Write("color", src)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != filepath.Join(dir, "chunk_color.png") {
		t.Errorf("path = %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 6 {
		t.Errorf("size = %v, want 12x6", img.Bounds())
	}
	r, g, _, _ := img.At(11, 5).RGBA()
	if r != 0 || g != 0xffff {
		t.Errorf("upscaled corner = %v", img.At(11, 5))
	}
}

func TestUpscaleIdentity(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if Upscale(src, 1) != image.Image(src) {
		t.Error("Upscale(1) should return the input")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(nil)
	coord := terrain.ChunkCoord{X: 1, Y: 0}

	tex := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range tex.Pix {
		tex.Pix[i] = 255
	}
	mesh, err := terrain.BuildMesh(grid.New(5, 5), 1, nil, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	r.DrawTexture(coord, tex)
	r.DrawMesh(coord, mesh, nil)
	r.SetVisible(coord, true)
	r.AssignCollider(coord, mesh)
	r.SetCollisionEnabled(coord, true)

	v, ok := r.Chunk(coord)
	if !ok {
		t.Fatal("chunk not recorded")
	}
	if v.Texture != tex || v.Mesh != mesh || v.Collider != mesh || !v.Visible || !v.CollisionEnabled {
		t.Errorf("view = %+v", v)
	}
	want := Counters{Textures: 1, Meshes: 1, VisibilityChanges: 1, Colliders: 1, CollisionToggles: 1}
	if r.Counters() != want {
		t.Errorf("counters = %+v, want %+v", r.Counters(), want)
	}
	if r.VisibleCount() != 1 {
		t.Errorf("VisibleCount = %d, want 1", r.VisibleCount())
	}

	// Chunk (1,0) in a 2x2 overview lands bottom-right.
	ov := r.Overview(2, 2)
	if got := ov.RGBAAt(3, 3); got.R != 255 {
		t.Errorf("bottom-right = %v, want white", got)
	}
	if got := ov.RGBAAt(0, 0); got.R != 0 || got.A != 255 {
		t.Errorf("empty cell = %v, want opaque black", got)
	}
}
