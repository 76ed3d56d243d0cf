// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"gioui.org/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rendercore.org/gpu/gl"
	"rendercore.org/gpu/gl/gltest"
	"rendercore.org/gpu/internal/driver"
)

// newTestBackend returns a backend over a recorder with a cleared
// call log.
func newTestBackend(t *testing.T, cfg Config, version string, exts ...string) (*Backend, *gltest.Recorder) {
	t.Helper()
	rec := gltest.New(version, exts...)
	rec.Strings[gl.VENDOR] = "Test Vendor"
	rec.Integers[gl.MAX_VERTEX_ATTRIBS] = 16
	rec.Integers[gl.MAX_SAMPLES] = 4
	b, err := NewBackend(rec, cfg)
	require.NoError(t, err)
	rec.Reset()
	return b, rec
}

var instancingSources = shader.Sources{
	Name: "instancing",
	Inputs: []shader.InputLocation{
		{Name: "pos", Location: 0, Semantic: "POSITION", Type: shader.DataTypeFloat, Size: 3},
		{Name: "offset", Location: 1, Semantic: "TEXCOORD", SemanticIndex: 1, Type: shader.DataTypeFloat, Size: 4},
		{Name: "color", Location: 2, Semantic: "COLOR", SemanticIndex: 0, Type: shader.DataTypeFloat, Size: 4},
		{Name: "glslOnly", Location: 5},
	},
}

func TestNewBackendInitState(t *testing.T) {
	rec := gltest.New("3.3.0 NVIDIA 535.54")
	b, err := NewBackend(rec, Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Enable", "ActiveTexture", "Disable"}, rec.Names())
	assert.Equal(t, gl.Enum(gl.PRIMITIVE_RESTART), rec.Calls[0].Args[0])
	assert.Equal(t, gl.Enum(gl.TEXTURE0), rec.Calls[1].Args[0])
	assert.Equal(t, gl.Enum(gl.FRAMEBUFFER_SRGB), rec.Calls[2].Args[0])

	ver, gles := b.Version()
	assert.Equal(t, [2]int{3, 3}, ver)
	assert.False(t, gles)

	// The initial state is cached.
	rec.Reset()
	b.ActiveTexture(gl.TEXTURE0)
	b.EnableFramebufferSRGB(false)
	assert.Empty(t, rec.Calls)
}

func TestNewBackendLegacyInitState(t *testing.T) {
	rec := gltest.New("2.1 Mesa")
	_, err := NewBackend(rec, Config{})
	require.NoError(t, err)
	// No primitive restart nor sRGB framebuffers.
	assert.Equal(t, []string{"ActiveTexture"}, rec.Names())
}

func TestNewBackendESInitState(t *testing.T) {
	rec := gltest.New("OpenGL ES 3.0 Mesa 23.0")
	b, err := NewBackend(rec, Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Enable", "ActiveTexture"}, rec.Names())
	assert.Equal(t, gl.Enum(gl.PRIMITIVE_RESTART_FIXED_INDEX), rec.Calls[0].Args[0])
	feats := b.Caps().Features
	assert.True(t, feats.Has(driver.FeaturePrimitiveRestart))
	assert.False(t, feats.Has(driver.FeatureFramebufferSRGB))
	assert.False(t, feats.Has(driver.FeatureLogicOp))
	assert.True(t, feats.Has(driver.FeatureMapBuffer))

	rec = gltest.New("OpenGL ES 3.2", "GL_EXT_sRGB_write_control")
	b, err = NewBackend(rec, Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Enable", "ActiveTexture", "Disable"}, rec.Names())
	assert.Equal(t, gl.Enum(gl.FRAMEBUFFER_SRGB), rec.Calls[2].Args[0])
	assert.True(t, b.Caps().Features.Has(driver.FeatureFramebufferSRGB))

	rec = gltest.New("OpenGL ES 2.0")
	b, err = NewBackend(rec, Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ActiveTexture"}, rec.Names())
	assert.False(t, b.Caps().Features.Has(driver.FeatureMapBuffer))
	assert.Zero(t, b.Caps().MaxTextureDepth)
}

func TestNewBackendErrors(t *testing.T) {
	_, err := NewBackend(nil, Config{})
	assert.Error(t, err)
	_, err = NewBackend(gltest.New("3.3"), Config{MaxEmulatedInstances: -1})
	assert.Error(t, err)
}

func TestNewBackendLogs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	rec := gltest.New("2.1")
	rec.Strings[gl.VENDOR] = "Intel"
	_, err := NewBackend(rec, Config{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "opengl backend created")
	assert.Contains(t, out, "vendor=Intel")
	assert.Contains(t, out, "primitive restart not supported")
	assert.Contains(t, out, "instanced draws are emulated")
}

func TestSetLoggerNil(t *testing.T) {
	SetLogger(nil)
	assert.False(t, slogger().Enabled(context.Background(), slog.LevelError))
	assert.NoError(t, nopHandler{}.Handle(context.Background(), slog.Record{}))
	assert.IsType(t, nopHandler{}, nopHandler{}.WithGroup("g"))
	assert.IsType(t, nopHandler{}, nopHandler{}.WithAttrs(nil))
}

func TestBackendCacheMethods(t *testing.T) {
	b, rec := newTestBackend(t, Config{}, "4.5")

	b.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{V: 3})
	b.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{V: 3})
	b.UseProgram(gl.Program{V: 2})
	b.UseProgram(gl.Program{V: 2})
	b.BindTexture(1, gl.TEXTURE_2D, gl.Texture{V: 4})
	b.BindTexture(1, gl.TEXTURE_2D, gl.Texture{V: 4})
	b.ClearColor(0, 0, 0, 1)
	b.ClearColor(0, 0, 0, 1)
	b.ClearDepth(1)
	b.ClearDepth(1)
	b.ClearStencil(0)
	b.ClearStencil(0)
	b.Viewport(0, 0, 640, 480)
	b.Viewport(0, 0, 640, 480)
	b.EnableFramebufferSRGB(true)
	b.EnableFramebufferSRGB(true)
	assert.Equal(t, []string{
		"BindBuffer", "UseProgram", "ActiveTexture", "BindTexture",
		"ClearColor", "ClearDepthf", "ClearStencil", "Viewport", "Enable",
	}, rec.Names())

	rec.Reset()
	b.Invalidate()
	b.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{V: 3})
	b.UseProgram(gl.Program{V: 2})
	b.Viewport(0, 0, 640, 480)
	assert.Equal(t, []string{"BindBuffer", "UseProgram", "Viewport"}, rec.Names())
}

type testFrameBuffer struct {
	fbo    gl.Framebuffer
	vp     driver.Viewport
	active bool
}

func (f *testFrameBuffer) Handle() gl.Framebuffer    { return f.fbo }
func (f *testFrameBuffer) Viewport() driver.Viewport { return f.vp }
func (f *testFrameBuffer) Active() bool              { return f.active }

func TestBindFrameBuffer(t *testing.T) {
	b, rec := newTestBackend(t, Config{}, "3.3")
	fb := &testFrameBuffer{fbo: gl.Framebuffer{V: 1}, vp: driver.Viewport{Width: 800, Height: 600}}

	b.BindFrameBuffer(fb)
	b.BindFrameBuffer(fb)
	assert.Equal(t, []string{"BindFramebuffer", "Viewport"}, rec.Names())
	assert.Equal(t, []interface{}{0, 0, 800, 600}, rec.Calls[1].Args)
	assert.Same(t, fb, b.CurFrameBuffer())

	// A resize is applied on the next bind.
	rec.Reset()
	fb.vp.Width = 1024
	b.BindFrameBuffer(fb)
	assert.Equal(t, []string{"Viewport"}, rec.Names())

	rec.Reset()
	b.BindFramebuffer(fb.Handle(), true)
	assert.Equal(t, []string{"BindFramebuffer"}, rec.Names())

	b.DeleteFramebuffer(fb.Handle())
	assert.Nil(t, b.CurFrameBuffer())
	rec.Reset()
	b.BindFrameBuffer(fb)
	assert.Equal(t, []string{"BindFramebuffer"}, rec.Names())
}

func TestBackendUniforms(t *testing.T) {
	b, rec := newTestBackend(t, Config{}, "3.3")
	loc := gl.Uniform{V: 0}

	b.UseProgram(gl.Program{V: 1})
	rec.Reset()
	b.Uniform1i(loc, 7)
	b.Uniform1i(loc, 7)
	b.Uniform1f(gl.Uniform{V: 1}, 0.5)
	b.Uniform1f(gl.Uniform{V: 1}, 0.5)
	b.Uniform2iv(gl.Uniform{V: 2}, []int32{1, 2})
	b.Uniform3iv(gl.Uniform{V: 3}, []int32{1, 2, 3})
	b.Uniform4iv(gl.Uniform{V: 4}, []int32{1, 2, 3, 4})
	b.Uniform1iv(gl.Uniform{V: 5}, []int32{1, 2})
	b.Uniform2fv(gl.Uniform{V: 7}, []float32{1, 2})
	b.Uniform1fv(gl.Uniform{V: 8}, []float32{1})
	b.UniformMatrix4fv(gl.Uniform{V: 9}, false, make([]float32, 16))
	b.UniformMatrix4fv(gl.Uniform{V: 9}, false, make([]float32, 16))
	assert.Equal(t, []string{
		"Uniform1iv", "Uniform1fv", "Uniform2iv", "Uniform3iv", "Uniform4iv",
		"Uniform1iv", "Uniform2fv", "Uniform1fv", "UniformMatrix4fv",
	}, rec.Names())
}

func TestBackendRelease(t *testing.T) {
	b, rec := newTestBackend(t, Config{}, "3.3")
	b.BindSOBuffers(&driver.RenderLayout{Topology: driver.TopologyPointList})
	require.NotNil(t, b.so)
	b.UseProgram(gl.Program{V: 1})
	b.Release()
	assert.Nil(t, b.so)
	rec.Reset()
	b.UseProgram(gl.Program{V: 1})
	assert.Equal(t, []string{"UseProgram"}, rec.Names())
}

func TestDriverInfoCopy(t *testing.T) {
	b, _ := newTestBackend(t, Config{}, "3.3", "GL_B", "GL_A")
	info := b.DriverInfo()
	assert.Equal(t, []string{"GL_A", "GL_B"}, info.Extensions)
	info.Extensions[0] = "changed"
	assert.Equal(t, "GL_A", b.DriverInfo().Extensions[0])
}
