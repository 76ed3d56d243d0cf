// SPDX-License-Identifier: Unlicense OR MIT

package rendertest

import (
	"flag"
	"image/color"
	"testing"

	"gioui.org/shader"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/f32"

	"rendercore.org/gpu"
	"rendercore.org/gpu/gl"
	"rendercore.org/gpu/gl/gltest"
	"rendercore.org/internal/unsafe"
)

var dumpCalls = flag.Bool("dumpcalls", false, "log the driver calls of each frame")

var palette = []color.RGBA{
	colornames.Red,
	colornames.Green,
	colornames.Blue,
	colornames.Magenta,
	colornames.Black,
	colornames.White,
}

// sprite is the per-instance data of a colored quad.
type sprite struct {
	offset f32.Vec4
	color  [4]uint8
}

var spriteFormat = []gpu.VertexElement{
	{Usage: gpu.UsageTextureCoord, UsageIndex: 1, Format: gpu.FormatABGR32F},
	{Usage: gpu.UsageDiffuse, Format: gpu.FormatABGR8},
}

var spriteSources = shader.Sources{
	Name: "sprite",
	Inputs: []shader.InputLocation{
		{Name: "pos", Location: 0, Semantic: "POSITION", Type: shader.DataTypeFloat, Size: 2},
		{Name: "offset", Location: 1, Semantic: "TEXCOORD", SemanticIndex: 1, Type: shader.DataTypeFloat, Size: 4},
		{Name: "color", Location: 2, Semantic: "COLOR", Type: shader.DataTypeFloat, Size: 4},
	},
}

func sprites(n int) []sprite {
	s := make([]sprite, n)
	for i := range s {
		c := palette[i%len(palette)]
		s[i] = sprite{
			offset: f32.Vec4{float32(i % 4), float32(i / 4), 0, 1},
			color:  [4]uint8{c.R, c.G, c.B, c.A},
		}
	}
	return s
}

// scene holds the device objects of a sprite draw.
type scene struct {
	dev     *gpu.OpenGL
	rec     *gltest.Recorder
	tech    *gpu.Technique
	layout  *gpu.RenderLayout
	sprites []sprite
}

func newScene(t *testing.T, cfg gpu.Config, version string, n int) *scene {
	t.Helper()
	rec := gltest.New(version)
	rec.Integers[gl.MAX_VERTEX_ATTRIBS] = 16
	dev, err := gpu.NewOpenGL(rec, cfg)
	require.NoError(t, err)

	quad := []f32.Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	verts, err := dev.NewBuffer(gpu.BufferBindingVertices, unsafe.BytesView(quad))
	require.NoError(t, err)
	indices, err := dev.NewBuffer(gpu.BufferBindingIndices, unsafe.BytesView([]uint16{0, 1, 2, 2, 1, 3}))
	require.NoError(t, err)
	sp := sprites(n)
	inst, err := dev.NewBuffer(gpu.BufferBindingVertices, unsafe.BytesView(sp))
	require.NoError(t, err)

	fill := dev.NewProgram(gl.Program{V: 1}, spriteSources)
	outline := dev.NewProgram(gl.Program{V: 2}, spriteSources)
	s := &scene{
		dev: dev,
		rec: rec,
		tech: &gpu.Technique{
			Name: "sprites",
			Passes: []gpu.Pass{
				dev.NewPass(fill, nil),
				dev.NewPass(outline, func(b *gpu.OpenGL) {
					b.Uniform4fv(gl.Uniform{V: 0}, []float32{0, 0, 0, 1})
				}),
			},
		},
		layout: &gpu.RenderLayout{
			Topology: gpu.TopologyTriangleList,
			Streams: []gpu.VertexStream{{
				Buffer: verts,
				Format: []gpu.VertexElement{{Usage: gpu.UsagePosition, Format: gpu.FormatGR32F}},
			}},
			Instances:    &gpu.VertexStream{Buffer: inst, Format: spriteFormat},
			Indices:      indices,
			IndexFormat:  gpu.FormatR16UI,
			NumVertices:  4,
			NumIndices:   6,
			NumInstances: n,
		},
		sprites: sp,
	}
	return s
}

type frameBuffer struct {
	width, height int
}

func (f frameBuffer) Handle() gl.Framebuffer { return gl.Framebuffer{} }
func (f frameBuffer) Viewport() gpu.Viewport {
	return gpu.Viewport{Width: f.width, Height: f.height}
}
func (f frameBuffer) Active() bool { return true }

// run draws frames of s and checks the driver calls of each. Every
// frame after the first runs with warm caches.
func run(t *testing.T, s *scene, frames int, draw func(s *scene), check func(frame int, calls []gltest.Call)) {
	t.Helper()
	for i := 0; i < frames; i++ {
		s.rec.Reset()
		s.dev.BeginFrame()
		draw(s)
		s.dev.EndFrame()
		if *dumpCalls {
			for _, c := range s.rec.Calls {
				t.Logf("frame %d: %v", i, c)
			}
		}
		check(i, s.rec.Calls)
	}
}

func names(calls []gltest.Call) []string {
	n := make([]string, len(calls))
	for i, c := range calls {
		n[i] = c.Name
	}
	return n
}

func count(calls []gltest.Call, name string) int {
	n := 0
	for _, c := range calls {
		if c.Name == name {
			n++
		}
	}
	return n
}
