// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"golang.org/x/image/math/f32"

	"rendercore.org/gpu/gl"
)

// knownState marks the scalar state categories whose cached value
// matches the context. Unknown categories always reach the driver.
type knownState uint16

const (
	knownActiveTexture knownState = 1 << iota
	knownProgram
	knownFramebuffer
	knownViewport
	knownClearColor
	knownClearDepth
	knownClearStencil
	knownSRGB
	knownRestartIndex
)

type bufferBase struct {
	target gl.Enum
	index  int
}

type textureBinding struct {
	unit   int
	target gl.Enum
}

type matrixSlot struct {
	m         f32.Mat4
	transpose bool
}

// uniformCache holds the last vector written to each uniform
// location, per program.
type uniformCache[T int32 | float32] map[gl.Program]map[gl.Uniform][4]T

// State tracking. Map entries are created on first use; a missing
// entry means the value is unknown.
type glState struct {
	known knownState

	buffers     map[gl.Enum]gl.Buffer
	bufferBases map[bufferBase]gl.Buffer
	activeTex   gl.Enum
	textures    map[textureBinding]gl.Texture
	prog        gl.Program
	fbo         gl.Framebuffer

	viewport     [4]int
	clearColor   f32.Vec4
	clearDepth   float32
	clearStencil int
	srgb         bool
	restartIndex uint32

	attribEnabled map[gl.Attrib]bool
	attribDivisor map[gl.Attrib]int

	uniformsi uniformCache[int32]
	uniformsf uniformCache[float32]
	matrices  map[gl.Program]map[gl.Uniform]matrixSlot
}

func newGLState() glState {
	return glState{
		buffers:       make(map[gl.Enum]gl.Buffer),
		bufferBases:   make(map[bufferBase]gl.Buffer),
		textures:      make(map[textureBinding]gl.Texture),
		attribEnabled: make(map[gl.Attrib]bool),
		attribDivisor: make(map[gl.Attrib]int),
		uniformsi:     make(uniformCache[int32]),
		uniformsf:     make(uniformCache[float32]),
		matrices:      make(map[gl.Program]map[gl.Uniform]matrixSlot),
	}
}

func (s *glState) bindBuffer(f gl.Functions, target gl.Enum, buf gl.Buffer) {
	if old, ok := s.buffers[target]; ok && old.Equal(buf) {
		return
	}
	f.BindBuffer(target, buf)
	s.buffers[target] = buf
}

// bindBufferBase binds buf to an indexed slot of target. Like the
// driver, it also binds buf to the generic target.
func (s *glState) bindBufferBase(f gl.Functions, target gl.Enum, idx int, buf gl.Buffer) {
	key := bufferBase{target, idx}
	if old, ok := s.bufferBases[key]; ok && old.Equal(buf) {
		return
	}
	f.BindBufferBase(target, idx, buf)
	s.bufferBases[key] = buf
	s.buffers[target] = buf
}

func (s *glState) deleteBuffer(f gl.Functions, b gl.Buffer) {
	f.DeleteBuffer(b)
	for target, b2 := range s.buffers {
		if b.Equal(b2) {
			delete(s.buffers, target)
		}
	}
	for key, b2 := range s.bufferBases {
		if b.Equal(b2) {
			delete(s.bufferBases, key)
		}
	}
}

func (s *glState) activeTexture(f gl.Functions, unit gl.Enum) {
	if s.known&knownActiveTexture != 0 && unit == s.activeTex {
		return
	}
	f.ActiveTexture(unit)
	s.activeTex = unit
	s.known |= knownActiveTexture
}

func (s *glState) bindTexture(f gl.Functions, unit int, target gl.Enum, t gl.Texture) {
	s.activeTexture(f, gl.TEXTURE0+gl.Enum(unit))
	key := textureBinding{unit, target}
	if old, ok := s.textures[key]; ok && old.Equal(t) {
		return
	}
	f.BindTexture(target, t)
	s.textures[key] = t
}

func (s *glState) deleteTexture(f gl.Functions, t gl.Texture) {
	f.DeleteTexture(t)
	for key, t2 := range s.textures {
		if t.Equal(t2) {
			delete(s.textures, key)
		}
	}
}

func (s *glState) useProgram(f gl.Functions, p gl.Program) {
	if s.known&knownProgram != 0 && p.Equal(s.prog) {
		return
	}
	f.UseProgram(p)
	s.prog = p
	s.known |= knownProgram
}

func (s *glState) deleteProgram(f gl.Functions, p gl.Program) {
	f.DeleteProgram(p)
	if p.Equal(s.prog) {
		s.prog = gl.Program{}
		s.known &^= knownProgram
	}
	delete(s.uniformsi, p)
	delete(s.uniformsf, p)
	delete(s.matrices, p)
}

// bindFramebuffer binds fbo. With force set the call is issued even
// if fbo is believed to be bound.
func (s *glState) bindFramebuffer(f gl.Functions, fbo gl.Framebuffer, force bool) {
	if !force && s.known&knownFramebuffer != 0 && fbo.Equal(s.fbo) {
		return
	}
	f.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	s.fbo = fbo
	s.known |= knownFramebuffer
}

func (s *glState) deleteFramebuffer(f gl.Functions, fbo gl.Framebuffer) {
	f.DeleteFramebuffer(fbo)
	if fbo.Equal(s.fbo) {
		s.known &^= knownFramebuffer
	}
}

func (s *glState) setViewport(f gl.Functions, x, y, width, height int) {
	view := [4]int{x, y, width, height}
	if s.known&knownViewport != 0 && view == s.viewport {
		return
	}
	f.Viewport(x, y, width, height)
	s.viewport = view
	s.known |= knownViewport
}

func (s *glState) setClearColor(f gl.Functions, r, g, b, a float32) {
	col := f32.Vec4{r, g, b, a}
	if s.known&knownClearColor != 0 && col == s.clearColor {
		return
	}
	f.ClearColor(r, g, b, a)
	s.clearColor = col
	s.known |= knownClearColor
}

func (s *glState) setClearDepth(f gl.Functions, d float32) {
	if s.known&knownClearDepth != 0 && d == s.clearDepth {
		return
	}
	f.ClearDepthf(d)
	s.clearDepth = d
	s.known |= knownClearDepth
}

func (s *glState) setClearStencil(f gl.Functions, stencil int) {
	if s.known&knownClearStencil != 0 && stencil == s.clearStencil {
		return
	}
	f.ClearStencil(stencil)
	s.clearStencil = stencil
	s.known |= knownClearStencil
}

// setFramebufferSRGB toggles sRGB conversion of framebuffer writes.
// It does nothing if the context lacks support.
func (s *glState) setFramebufferSRGB(f gl.Functions, enable, supported bool) {
	if !supported || (s.known&knownSRGB != 0 && enable == s.srgb) {
		return
	}
	if enable {
		f.Enable(gl.FRAMEBUFFER_SRGB)
	} else {
		f.Disable(gl.FRAMEBUFFER_SRGB)
	}
	s.srgb = enable
	s.known |= knownSRGB
}

// setPrimitiveRestartIndex records idx as the restart index and
// programs it if the context supports primitive restart.
func (s *glState) setPrimitiveRestartIndex(f gl.Functions, idx uint32, supported bool) {
	if s.known&knownRestartIndex != 0 && idx == s.restartIndex {
		return
	}
	if supported {
		f.PrimitiveRestartIndex(idx)
	}
	s.restartIndex = idx
	s.known |= knownRestartIndex
}

func (s *glState) setVertexAttribArray(f gl.Functions, a gl.Attrib, enabled bool) {
	if old, ok := s.attribEnabled[a]; ok && old == enabled {
		return
	}
	if enabled {
		f.EnableVertexAttribArray(a)
	} else {
		f.DisableVertexAttribArray(a)
	}
	s.attribEnabled[a] = enabled
}

func (s *glState) setVertexAttribDivisor(f gl.Functions, a gl.Attrib, divisor int) {
	if old, ok := s.attribDivisor[a]; ok && old == divisor {
		return
	}
	f.VertexAttribDivisor(a, divisor)
	s.attribDivisor[a] = divisor
}

// programKnown reports whether uniform writes can be cached against
// s.prog. Writes while the current program is unknown always reach
// the driver.
func (s *glState) programKnown() bool {
	return s.known&knownProgram != 0 && s.prog.Valid()
}

func checkUniformVector(n, length int) {
	if n < 1 || n > 4 || length%n != 0 {
		panic("uniform vector length not a multiple of its size")
	}
}

// update stores the n component vectors of v at consecutive
// locations starting at loc. It reports whether any vector differed
// from the cache.
func (c uniformCache[T]) update(prog gl.Program, loc gl.Uniform, n int, v []T) bool {
	checkUniformVector(n, len(v))
	slots := c[prog]
	if slots == nil {
		slots = make(map[gl.Uniform][4]T)
		c[prog] = slots
	}
	dirty := false
	for i := 0; i < len(v)/n; i++ {
		var vec [4]T
		copy(vec[:n], v[i*n:(i+1)*n])
		l := gl.Uniform{V: loc.V + i}
		if old, ok := slots[l]; !ok || old != vec {
			dirty = true
			slots[l] = vec
		}
	}
	return dirty
}

// uniformi writes the n component int vectors of v to the current
// program if any of them changed.
func (s *glState) uniformi(f gl.Functions, loc gl.Uniform, n int, v []int32) {
	if !loc.Valid() || len(v) == 0 {
		return
	}
	checkUniformVector(n, len(v))
	if s.programKnown() && !s.uniformsi.update(s.prog, loc, n, v) {
		return
	}
	switch n {
	case 1:
		f.Uniform1iv(loc, v)
	case 2:
		f.Uniform2iv(loc, v)
	case 3:
		f.Uniform3iv(loc, v)
	case 4:
		f.Uniform4iv(loc, v)
	}
}

func (s *glState) uniformf(f gl.Functions, loc gl.Uniform, n int, v []float32) {
	if !loc.Valid() || len(v) == 0 {
		return
	}
	checkUniformVector(n, len(v))
	if s.programKnown() && !s.uniformsf.update(s.prog, loc, n, v) {
		return
	}
	switch n {
	case 1:
		f.Uniform1fv(loc, v)
	case 2:
		f.Uniform2fv(loc, v)
	case 3:
		f.Uniform3fv(loc, v)
	case 4:
		f.Uniform4fv(loc, v)
	}
}

// uniformMatrix4f writes the 4x4 matrices of v to consecutive
// locations starting at loc.
func (s *glState) uniformMatrix4f(f gl.Functions, loc gl.Uniform, transpose bool, v []float32) {
	const size = len(f32.Mat4{})
	if !loc.Valid() || len(v) == 0 {
		return
	}
	if len(v)%size != 0 {
		panic("matrix uniform length not a multiple of 16")
	}
	if !s.programKnown() {
		f.UniformMatrix4fv(loc, transpose, v)
		return
	}
	slots := s.matrices[s.prog]
	if slots == nil {
		slots = make(map[gl.Uniform]matrixSlot)
		s.matrices[s.prog] = slots
	}
	dirty := false
	for i := 0; i < len(v)/size; i++ {
		m := matrixSlot{transpose: transpose}
		copy(m.m[:], v[i*size:(i+1)*size])
		l := gl.Uniform{V: loc.V + i}
		if old, ok := slots[l]; !ok || old != m {
			dirty = true
			slots[l] = m
		}
	}
	if dirty {
		f.UniformMatrix4fv(loc, transpose, v)
	}
}
