// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rendercore.org/gpu/gl"
	"rendercore.org/gpu/gl/gltest"
)

func newTestState() (*glState, *gltest.Recorder) {
	s := newGLState()
	return &s, gltest.New("3.3")
}

func TestStateSetIfDifferent(t *testing.T) {
	s, rec := newTestState()

	for i := 0; i < 3; i++ {
		s.bindBuffer(rec, gl.ARRAY_BUFFER, gl.Buffer{V: 1})
		s.activeTexture(rec, gl.TEXTURE0+2)
		s.useProgram(rec, gl.Program{V: 3})
		s.bindFramebuffer(rec, gl.Framebuffer{V: 4}, false)
		s.setViewport(rec, 0, 0, 64, 32)
		s.setClearColor(rec, 0.1, 0.2, 0.3, 1)
		s.setClearDepth(rec, 1)
		s.setClearStencil(rec, 0)
		s.setFramebufferSRGB(rec, true, true)
		s.setPrimitiveRestartIndex(rec, 0xFFFF, true)
		s.setVertexAttribArray(rec, 1, true)
		s.setVertexAttribDivisor(rec, 1, 1)
	}
	assert.Equal(t, []string{
		"BindBuffer", "ActiveTexture", "UseProgram", "BindFramebuffer",
		"Viewport", "ClearColor", "ClearDepthf", "ClearStencil", "Enable",
		"PrimitiveRestartIndex", "EnableVertexAttribArray", "VertexAttribDivisor",
	}, rec.Names())
}

func TestStateInitiallyUnknown(t *testing.T) {
	s, rec := newTestState()
	// Zero values are not assumed to be current.
	s.bindBuffer(rec, gl.ARRAY_BUFFER, gl.Buffer{})
	s.activeTexture(rec, 0)
	s.useProgram(rec, gl.Program{})
	s.bindFramebuffer(rec, gl.Framebuffer{}, false)
	s.setViewport(rec, 0, 0, 0, 0)
	s.setClearColor(rec, 0, 0, 0, 0)
	s.setClearDepth(rec, 0)
	s.setClearStencil(rec, 0)
	s.setFramebufferSRGB(rec, false, true)
	s.setPrimitiveRestartIndex(rec, 0, true)
	s.setVertexAttribArray(rec, 0, false)
	s.setVertexAttribDivisor(rec, 0, 0)
	assert.Len(t, rec.Calls, 12)
}

func TestStateChangedValuesReachDriver(t *testing.T) {
	s, rec := newTestState()
	s.bindBuffer(rec, gl.ARRAY_BUFFER, gl.Buffer{V: 1})
	s.bindBuffer(rec, gl.ARRAY_BUFFER, gl.Buffer{V: 2})
	s.bindBuffer(rec, gl.ELEMENT_ARRAY_BUFFER, gl.Buffer{V: 2})
	s.setClearColor(rec, 0, 0, 0, 1)
	s.setClearColor(rec, 0, 0, 0, 0.5)
	s.setViewport(rec, 0, 0, 10, 10)
	s.setViewport(rec, 0, 0, 10, 11)
	s.setFramebufferSRGB(rec, true, true)
	s.setFramebufferSRGB(rec, false, true)
	assert.Equal(t, []string{
		"BindBuffer", "BindBuffer", "BindBuffer",
		"ClearColor", "ClearColor", "Viewport", "Viewport", "Enable", "Disable",
	}, rec.Names())
	assert.Equal(t, []interface{}{gl.Enum(gl.FRAMEBUFFER_SRGB)}, rec.Calls[8].Args)
}

func TestStateDeleteBufferPurges(t *testing.T) {
	s, rec := newTestState()
	buf := rec.CreateBuffer()
	s.bindBuffer(rec, gl.ARRAY_BUFFER, buf)
	s.bindBufferBase(rec, gl.TRANSFORM_FEEDBACK_BUFFER, 0, buf)
	s.deleteBuffer(rec, buf)

	// The driver hands the deleted name out again.
	reused := rec.CreateBuffer()
	require.Equal(t, buf, reused)
	rec.Reset()
	s.bindBuffer(rec, gl.ARRAY_BUFFER, reused)
	s.bindBufferBase(rec, gl.TRANSFORM_FEEDBACK_BUFFER, 0, reused)
	assert.Equal(t, []string{"BindBuffer", "BindBufferBase"}, rec.Names())
}

func TestStateDeleteBufferKeepsOthers(t *testing.T) {
	s, rec := newTestState()
	s.bindBuffer(rec, gl.ARRAY_BUFFER, gl.Buffer{V: 1})
	s.bindBuffer(rec, gl.ELEMENT_ARRAY_BUFFER, gl.Buffer{V: 2})
	s.deleteBuffer(rec, gl.Buffer{V: 2})
	rec.Reset()
	s.bindBuffer(rec, gl.ARRAY_BUFFER, gl.Buffer{V: 1})
	assert.Empty(t, rec.Calls)
}

func TestStateBufferBaseBindsTarget(t *testing.T) {
	s, rec := newTestState()
	s.bindBufferBase(rec, gl.TRANSFORM_FEEDBACK_BUFFER, 1, gl.Buffer{V: 5})
	s.bindBufferBase(rec, gl.TRANSFORM_FEEDBACK_BUFFER, 1, gl.Buffer{V: 5})
	s.bindBuffer(rec, gl.TRANSFORM_FEEDBACK_BUFFER, gl.Buffer{V: 5})
	assert.Equal(t, []string{"BindBufferBase"}, rec.Names())
	// Other indices are separate slots.
	s.bindBufferBase(rec, gl.TRANSFORM_FEEDBACK_BUFFER, 0, gl.Buffer{V: 5})
	assert.Equal(t, 2, rec.Count("BindBufferBase"))
}

func TestStateTextures(t *testing.T) {
	s, rec := newTestState()
	tex := gl.Texture{V: 7}
	s.bindTexture(rec, 0, gl.TEXTURE_2D, tex)
	s.bindTexture(rec, 0, gl.TEXTURE_2D, tex)
	s.bindTexture(rec, 1, gl.TEXTURE_2D, tex)
	assert.Equal(t, []string{"ActiveTexture", "BindTexture", "ActiveTexture", "BindTexture"}, rec.Names())
	assert.Equal(t, gl.Enum(gl.TEXTURE0+1), rec.Calls[2].Args[0])

	s.deleteTexture(rec, tex)
	rec.Reset()
	s.bindTexture(rec, 0, gl.TEXTURE_2D, tex)
	s.bindTexture(rec, 1, gl.TEXTURE_2D, tex)
	assert.Equal(t, []string{"ActiveTexture", "BindTexture", "ActiveTexture", "BindTexture"}, rec.Names())
}

func TestStateDeleteProgramPurges(t *testing.T) {
	s, rec := newTestState()
	p := gl.Program{V: 1}
	loc := gl.Uniform{V: 0}
	s.useProgram(rec, p)
	s.uniformf(rec, loc, 1, []float32{2})
	s.uniformi(rec, gl.Uniform{V: 1}, 1, []int32{3})
	s.uniformMatrix4f(rec, gl.Uniform{V: 2}, false, make([]float32, 16))
	s.deleteProgram(rec, p)

	// A new program with the recycled name starts out unknown.
	rec.Reset()
	s.useProgram(rec, p)
	s.uniformf(rec, loc, 1, []float32{2})
	s.uniformi(rec, gl.Uniform{V: 1}, 1, []int32{3})
	s.uniformMatrix4f(rec, gl.Uniform{V: 2}, false, make([]float32, 16))
	assert.Equal(t, []string{"UseProgram", "Uniform1fv", "Uniform1iv", "UniformMatrix4fv"}, rec.Names())
}

func TestStateDeleteBoundProgram(t *testing.T) {
	s, rec := newTestState()
	p := gl.Program{V: 7}
	loc := gl.Uniform{V: 0}
	s.useProgram(rec, p)
	s.deleteProgram(rec, p)
	// The deleted program stays current in the driver; writes to it
	// must not be cached under its name.
	s.uniformf(rec, loc, 1, []float32{1})
	s.uniformi(rec, loc, 1, []int32{1})
	s.uniformMatrix4f(rec, loc, false, make([]float32, 16))
	assert.Empty(t, s.uniformsf[p])
	assert.Empty(t, s.uniformsi[p])
	assert.Empty(t, s.matrices[p])
	s.useProgram(rec, gl.Program{V: 8})

	// A new program reuses the name.
	s.useProgram(rec, p)
	rec.Reset()
	s.uniformf(rec, loc, 1, []float32{1})
	s.uniformi(rec, loc, 1, []int32{1})
	s.uniformMatrix4f(rec, loc, false, make([]float32, 16))
	assert.Equal(t, []string{"Uniform1fv", "Uniform1iv", "UniformMatrix4fv"}, rec.Names())
}

func TestUniformsWithoutProgram(t *testing.T) {
	s, rec := newTestState()
	s.uniformf(rec, gl.Uniform{V: 0}, 1, []float32{1})
	s.uniformf(rec, gl.Uniform{V: 0}, 1, []float32{1})
	assert.Equal(t, 2, rec.Count("Uniform1fv"))
	assert.Panics(t, func() { s.uniformf(rec, gl.Uniform{V: 0}, 3, []float32{1, 2}) })
}

func TestStateDeleteOtherProgram(t *testing.T) {
	s, rec := newTestState()
	s.useProgram(rec, gl.Program{V: 1})
	s.deleteProgram(rec, gl.Program{V: 2})
	rec.Reset()
	s.useProgram(rec, gl.Program{V: 1})
	assert.Empty(t, rec.Calls)
}

func TestStateFramebufferForce(t *testing.T) {
	s, rec := newTestState()
	fbo := gl.Framebuffer{V: 1}
	s.bindFramebuffer(rec, fbo, false)
	s.bindFramebuffer(rec, fbo, false)
	assert.Equal(t, 1, rec.Count("BindFramebuffer"))
	s.bindFramebuffer(rec, fbo, true)
	assert.Equal(t, 2, rec.Count("BindFramebuffer"))
	assert.Equal(t, []interface{}{gl.Enum(gl.FRAMEBUFFER), fbo}, rec.Calls[1].Args)

	s.deleteFramebuffer(rec, fbo)
	rec.Reset()
	s.bindFramebuffer(rec, fbo, false)
	assert.Equal(t, []string{"BindFramebuffer"}, rec.Names())
}

func TestStateUnsupported(t *testing.T) {
	s, rec := newTestState()
	s.setFramebufferSRGB(rec, true, false)
	s.setPrimitiveRestartIndex(rec, 0xFFFF, false)
	assert.Empty(t, rec.Calls)
	assert.Equal(t, uint32(0xFFFF), s.restartIndex)
	assert.NotZero(t, s.known&knownRestartIndex)

	// The recorded index suppresses the call once supported.
	s.setPrimitiveRestartIndex(rec, 0xFFFF, true)
	assert.Empty(t, rec.Calls)
}

func TestUniformPartialVector(t *testing.T) {
	s, rec := newTestState()
	p := gl.Program{V: 1}
	loc := gl.Uniform{V: 3}
	s.useProgram(rec, p)
	rec.Reset()

	s.uniformf(rec, loc, 3, []float32{1, 2, 3})
	s.uniformf(rec, loc, 3, []float32{1, 2, 3})
	s.uniformf(rec, loc, 3, []float32{1, 2, 4})
	require.Equal(t, []string{"Uniform3fv", "Uniform3fv"}, rec.Names())
	assert.Equal(t, []float32{1, 2, 4}, rec.Calls[1].Args[1])
	assert.Equal(t, [4]float32{1, 2, 4, 0}, s.uniformsf[p][loc])

	// The last component counts too.
	rec.Reset()
	s.uniformf(rec, loc, 4, []float32{1, 2, 4, 0})
	assert.Empty(t, rec.Calls)
	s.uniformf(rec, loc, 4, []float32{1, 2, 4, 1})
	assert.Equal(t, []string{"Uniform4fv"}, rec.Names())
}

func TestUniformArrays(t *testing.T) {
	s, rec := newTestState()
	s.useProgram(rec, gl.Program{V: 1})
	rec.Reset()

	s.uniformf(rec, gl.Uniform{V: 2}, 4, []float32{1, 2, 3, 4, 5, 6, 7, 8})
	// The second vector is cached at the next location.
	s.uniformf(rec, gl.Uniform{V: 3}, 4, []float32{5, 6, 7, 8})
	assert.Equal(t, 1, rec.Count("Uniform4fv"))

	// A change in any vector rewrites the whole array.
	s.uniformf(rec, gl.Uniform{V: 2}, 4, []float32{1, 2, 3, 4, 5, 6, 7, 9})
	require.Equal(t, 2, rec.Count("Uniform4fv"))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 9}, rec.Calls[1].Args[1])

	s.uniformi(rec, gl.Uniform{V: 0}, 2, []int32{1, 2, 3, 4})
	s.uniformi(rec, gl.Uniform{V: 1}, 2, []int32{3, 4})
	assert.Equal(t, 1, rec.Count("Uniform2iv"))
}

func TestUniformsPerProgram(t *testing.T) {
	s, rec := newTestState()
	a, b := gl.Program{V: 1}, gl.Program{V: 2}
	loc := gl.Uniform{V: 0}

	s.useProgram(rec, a)
	s.uniformi(rec, loc, 1, []int32{1})
	s.useProgram(rec, b)
	s.uniformi(rec, loc, 1, []int32{2})
	s.useProgram(rec, a)
	s.uniformi(rec, loc, 1, []int32{1})
	s.useProgram(rec, b)
	s.uniformi(rec, loc, 1, []int32{2})
	assert.Equal(t, 2, rec.Count("Uniform1iv"))
	assert.Equal(t, 4, rec.Count("UseProgram"))
}

func TestUniformIntAndFloatSeparate(t *testing.T) {
	s, rec := newTestState()
	s.useProgram(rec, gl.Program{V: 1})
	s.uniformi(rec, gl.Uniform{V: 0}, 1, []int32{1})
	s.uniformf(rec, gl.Uniform{V: 0}, 1, []float32{1})
	assert.Equal(t, 1, rec.Count("Uniform1iv"))
	assert.Equal(t, 1, rec.Count("Uniform1fv"))
}

func TestUniformInvalid(t *testing.T) {
	s, rec := newTestState()
	s.useProgram(rec, gl.Program{V: 1})
	rec.Reset()
	s.uniformf(rec, gl.Uniform{V: -1}, 4, []float32{1, 2, 3, 4})
	s.uniformf(rec, gl.Uniform{V: 0}, 4, nil)
	s.uniformMatrix4f(rec, gl.Uniform{V: -1}, false, make([]float32, 16))
	assert.Empty(t, rec.Calls)

	assert.Panics(t, func() { s.uniformf(rec, gl.Uniform{V: 0}, 3, []float32{1, 2}) })
	assert.Panics(t, func() { s.uniformi(rec, gl.Uniform{V: 0}, 5, []int32{1, 2, 3, 4, 5}) })
	assert.Panics(t, func() { s.uniformMatrix4f(rec, gl.Uniform{V: 0}, false, make([]float32, 15)) })
}

func TestUniformMatrix(t *testing.T) {
	s, rec := newTestState()
	s.useProgram(rec, gl.Program{V: 1})
	rec.Reset()
	m := []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	loc := gl.Uniform{V: 4}

	s.uniformMatrix4f(rec, loc, false, m)
	s.uniformMatrix4f(rec, loc, false, m)
	assert.Equal(t, 1, rec.Count("UniformMatrix4fv"))
	s.uniformMatrix4f(rec, loc, true, m)
	assert.Equal(t, 2, rec.Count("UniformMatrix4fv"))

	two := append(append([]float32(nil), m...), m...)
	two[31] = 2
	s.uniformMatrix4f(rec, loc, true, two)
	assert.Equal(t, 3, rec.Count("UniformMatrix4fv"))
	s.uniformMatrix4f(rec, gl.Uniform{V: 5}, true, two[16:])
	assert.Equal(t, 3, rec.Count("UniformMatrix4fv"))
}

func TestStateAttribArrays(t *testing.T) {
	s, rec := newTestState()
	s.setVertexAttribArray(rec, 2, true)
	s.setVertexAttribArray(rec, 2, true)
	s.setVertexAttribArray(rec, 2, false)
	s.setVertexAttribArray(rec, 3, false)
	s.setVertexAttribDivisor(rec, 2, 1)
	s.setVertexAttribDivisor(rec, 2, 0)
	s.setVertexAttribDivisor(rec, 2, 0)
	assert.Equal(t, []string{
		"EnableVertexAttribArray", "DisableVertexAttribArray", "DisableVertexAttribArray",
		"VertexAttribDivisor", "VertexAttribDivisor",
	}, rec.Names())
}
