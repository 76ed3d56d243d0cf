// SPDX-License-Identifier: Unlicense OR MIT

//go:build !openbsd && !freebsd && !android && !ios && !js

// Command glfw draws a field of animated sprites with one instanced
// draw per frame.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"
	"time"

	"gioui.org/shader"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/f32"

	"rendercore.org/gpu"
	rgl "rendercore.org/gpu/gl"
	"rendercore.org/gpu/gl/glcore"
	"rendercore.org/internal/unsafe"
)

var (
	numSprites   = flag.Int("sprites", 256, "number of sprites")
	noInstancing = flag.Bool("noinstancing", false, "emulate instancing")
	maxEmulated  = flag.Int("maxemulated", 0, "limit on emulated instances, 0 for none")
	verbose      = flag.Bool("v", false, "log backend debug messages")
)

const vertexShader = `#version 330 core
layout(location = 0) in vec2 pos;
layout(location = 1) in vec4 offset;
layout(location = 2) in vec4 color;
uniform float scale;
out vec4 vColor;
void main() {
	vColor = color;
	gl_Position = vec4((pos*offset.w + offset.xy)*scale - 1.0, 0.0, 1.0);
}
`

const fillShader = `#version 330 core
in vec4 vColor;
out vec4 fragColor;
void main() {
	fragColor = vColor;
}
`

var spriteSources = shader.Sources{
	Name: "sprite",
	Inputs: []shader.InputLocation{
		{Name: "pos", Location: 0, Semantic: "POSITION", Type: shader.DataTypeFloat, Size: 2},
		{Name: "offset", Location: 1, Semantic: "TEXCOORD", SemanticIndex: 1, Type: shader.DataTypeFloat, Size: 4},
		{Name: "color", Location: 2, Semantic: "COLOR", Type: shader.DataTypeFloat, Size: 4},
	},
}

type sprite struct {
	offset f32.Vec4
	color  [4]uint8
}

// window is the default framebuffer of a glfw window.
type window struct {
	w *glfw.Window
}

func (w window) Handle() rgl.Framebuffer { return rgl.Framebuffer{} }

func (w window) Viewport() gpu.Viewport {
	width, height := w.w.GetFramebufferSize()
	return gpu.Viewport{Width: width, Height: height}
}

// Active reports whether the window is visible.
func (w window) Active() bool {
	return w.w.GetAttrib(glfw.Iconified) == glfw.False
}

func main() {
	flag.Parse()
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	gpu.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Required by the OpenGL threading model.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	w, err := glfw.CreateWindow(800, 600, "Instanced sprites", nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	w.MakeContextCurrent()
	glfw.SwapInterval(1)

	f, err := glcore.New()
	if err != nil {
		log.Fatal(err)
	}
	// Core profiles draw nothing without a vertex array object.
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	dev, err := gpu.NewOpenGL(f, gpu.Config{
		DisableInstancing:    *noInstancing,
		MaxEmulatedInstances: *maxEmulated,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Release()

	if err := run(dev, window{w}); err != nil {
		log.Fatal(err)
	}
}

func run(dev *gpu.OpenGL, win window) error {
	obj, err := createProgram(vertexShader, fillShader)
	if err != nil {
		return err
	}
	prog := dev.NewProgram(rgl.Program{V: uint(obj)}, spriteSources)
	defer prog.Release()
	scaleLoc := rgl.Uniform{V: int(gl.GetUniformLocation(obj, gl.Str("scale\x00")))}
	tech := &gpu.Technique{
		Name: "sprites",
		Passes: []gpu.Pass{dev.NewPass(prog, func(b *gpu.OpenGL) {
			b.Uniform1f(scaleLoc, 2.0/float32(gridSize(*numSprites)))
		})},
	}

	quad := []f32.Vec2{{0, 0}, {0.9, 0}, {0, 0.9}, {0.9, 0.9}}
	verts, err := dev.NewBuffer(gpu.BufferBindingVertices, unsafe.BytesView(quad))
	if err != nil {
		return err
	}
	defer verts.Release()
	indices, err := dev.NewBuffer(gpu.BufferBindingIndices, unsafe.BytesView([]uint16{0, 1, 2, 2, 1, 3}))
	if err != nil {
		return err
	}
	defer indices.Release()

	sprites := make([]sprite, *numSprites)
	inst, err := dev.NewBuffer(gpu.BufferBindingVertices, unsafe.BytesView(sprites))
	if err != nil {
		return err
	}
	defer inst.Release()

	rl := &gpu.RenderLayout{
		Topology: gpu.TopologyTriangleList,
		Streams: []gpu.VertexStream{{
			Buffer: verts,
			Format: []gpu.VertexElement{{Usage: gpu.UsagePosition, Format: gpu.FormatGR32F}},
		}},
		Instances: &gpu.VertexStream{
			Buffer: inst,
			Format: []gpu.VertexElement{
				{Usage: gpu.UsageTextureCoord, UsageIndex: 1, Format: gpu.FormatABGR32F},
				{Usage: gpu.UsageDiffuse, Format: gpu.FormatABGR8},
			},
		},
		Indices:      indices,
		IndexFormat:  gpu.FormatR16UI,
		NumVertices:  len(quad),
		NumIndices:   6,
		NumInstances: len(sprites),
	}

	var stats gpu.Stats
	start := time.Now()
	lastReport := start
	for !win.w.ShouldClose() {
		if win.Active() {
			glfw.PollEvents()
		} else {
			glfw.WaitEvents()
			continue
		}
		animate(sprites, time.Since(start).Seconds())
		inst.Upload(unsafe.BytesView(sprites))

		dev.BeginFrame()
		dev.BindFrameBuffer(win)
		dev.ClearColor(0.1, 0.1, 0.1, 1)
		dev.Clear(true, false, false)
		dev.BeginPass()
		if err := dev.Submit(tech, rl); err != nil {
			return err
		}
		dev.EndPass()
		dev.EndFrame()
		stats.Collect(dev)
		win.w.SwapBuffers()

		if now := time.Now(); now.Sub(lastReport) >= 5*time.Second {
			lastReport = now
			slog.Info("frame stats",
				"frames", stats.Frames,
				"primitives", stats.Last.Primitives,
				"avgPrimitives", stats.AveragePrimitives(),
			)
		}
	}
	return nil
}

func gridSize(n int) int {
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// animate places the sprites on a grid and pulses their size and
// color.
func animate(sprites []sprite, t float64) {
	palette := []struct{ R, G, B uint8 }{
		{colornames.Tomato.R, colornames.Tomato.G, colornames.Tomato.B},
		{colornames.Gold.R, colornames.Gold.G, colornames.Gold.B},
		{colornames.Mediumseagreen.R, colornames.Mediumseagreen.G, colornames.Mediumseagreen.B},
		{colornames.Dodgerblue.R, colornames.Dodgerblue.G, colornames.Dodgerblue.B},
	}
	n := gridSize(len(sprites))
	for i := range sprites {
		x, y := i%n, i/n
		phase := t*2 + float64(x+y)*0.3
		size := float32(0.6 + 0.4*math.Sin(phase))
		c := palette[(x+y)%len(palette)]
		sprites[i] = sprite{
			offset: f32.Vec4{float32(x), float32(y), 0, size},
			color:  [4]uint8{c.R, c.G, c.B, 255},
		}
	}
}

func createProgram(vsrc, fsrc string) (uint32, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vsrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, fsrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)
	p := gl.CreateProgram()
	gl.AttachShader(p, vs)
	gl.AttachShader(p, fs)
	gl.LinkProgram(p)
	var status int32
	gl.GetProgramiv(p, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(p, logLength, nil, gl.Str(msg))
		gl.DeleteProgram(p)
		return 0, fmt.Errorf("failed to link program: %s", strings.TrimRight(msg, "\x00"))
	}
	return p, nil
}

func compileShader(typ uint32, src string) (uint32, error) {
	s := gl.CreateShader(typ)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(s, 1, csrc, nil)
	free()
	gl.CompileShader(s)
	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(s, logLength, nil, gl.Str(msg))
		gl.DeleteShader(s)
		return 0, fmt.Errorf("failed to compile shader: %s", strings.TrimRight(msg, "\x00"))
	}
	return s, nil
}
