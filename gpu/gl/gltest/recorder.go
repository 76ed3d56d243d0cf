// SPDX-License-Identifier: Unlicense OR MIT

// Package gltest implements gl.Functions by recording every call, for
// testing code that drives a GL context without one.
package gltest

import (
	"fmt"
	"strings"

	"rendercore.org/gpu/gl"
)

// Call is a recorded driver call.
type Call struct {
	Name string
	Args []interface{}
}

// Recorder is a gl.Functions that records state changing calls and
// draws. Queries (GetString, GetStringi, GetInteger, GetError) are
// answered from the configuration fields but not recorded.
//
// Buffer objects are simulated: their contents are kept so that
// MapBufferRange returns the bytes uploaded with BufferSubData, and
// deleted buffer names are handed out again by CreateBuffer, the way
// drivers recycle names.
type Recorder struct {
	Calls []Call

	// Strings answers GetString.
	Strings map[gl.Enum]string
	// Integers answers GetInteger.
	Integers map[gl.Enum]int
	// Extensions answers GetStringi(EXTENSIONS, i), NUM_EXTENSIONS and,
	// when Strings has no entry, GetString(EXTENSIONS).
	Extensions []string
	// MapFails makes MapBufferRange return nil.
	MapFails bool
	// UnmapFails makes UnmapBuffer report lost contents.
	UnmapFails bool

	nextBuffer  uint
	freeBuffers []uint
	bound       map[gl.Enum]gl.Buffer
	data        map[gl.Buffer][]byte
}

// New returns a Recorder for a context of the given GL_VERSION string
// and extensions.
func New(version string, exts ...string) *Recorder {
	return &Recorder{
		Strings:    map[gl.Enum]string{gl.VERSION: version},
		Integers:   make(map[gl.Enum]int),
		Extensions: exts,
		bound:      make(map[gl.Enum]gl.Buffer),
		data:       make(map[gl.Buffer][]byte),
	}
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

// Reset forgets the recorded calls. Simulated buffers are kept.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Count returns the number of recorded calls with the given name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Named returns the recorded calls whose name is among names, in
// call order.
func (r *Recorder) Named(names ...string) []Call {
	var calls []Call
	for _, c := range r.Calls {
		for _, n := range names {
			if c.Name == n {
				calls = append(calls, c)
				break
			}
		}
	}
	return calls
}

// Names returns the names of all recorded calls in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// Contents returns the simulated storage of buffer b.
func (r *Recorder) Contents(b gl.Buffer) []byte {
	return r.data[b]
}

func (r *Recorder) record(name string, args ...interface{}) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) GetString(pname gl.Enum) string {
	if s, ok := r.Strings[pname]; ok {
		return s
	}
	if pname == gl.EXTENSIONS {
		return strings.Join(r.Extensions, " ")
	}
	return ""
}

func (r *Recorder) GetStringi(pname gl.Enum, index int) string {
	if pname == gl.EXTENSIONS && index >= 0 && index < len(r.Extensions) {
		return r.Extensions[index]
	}
	return ""
}

func (r *Recorder) GetInteger(pname gl.Enum) int {
	if v, ok := r.Integers[pname]; ok {
		return v
	}
	if pname == gl.NUM_EXTENSIONS {
		return len(r.Extensions)
	}
	return 0
}

func (r *Recorder) GetError() gl.Enum {
	return gl.NO_ERROR
}

func (r *Recorder) Enable(cap gl.Enum) {
	r.record("Enable", cap)
}

func (r *Recorder) Disable(cap gl.Enum) {
	r.record("Disable", cap)
}

func (r *Recorder) Flush() {
	r.record("Flush")
}

func (r *Recorder) CreateBuffer() gl.Buffer {
	var b gl.Buffer
	if n := len(r.freeBuffers); n > 0 {
		b = gl.Buffer{V: r.freeBuffers[n-1]}
		r.freeBuffers = r.freeBuffers[:n-1]
	} else {
		r.nextBuffer++
		b = gl.Buffer{V: r.nextBuffer}
	}
	r.record("CreateBuffer", b)
	return b
}

func (r *Recorder) DeleteBuffer(b gl.Buffer) {
	r.record("DeleteBuffer", b)
	if !b.Valid() {
		return
	}
	delete(r.data, b)
	for target, bound := range r.bound {
		if bound.Equal(b) {
			delete(r.bound, target)
		}
	}
	r.freeBuffers = append(r.freeBuffers, b.V)
}

func (r *Recorder) BindBuffer(target gl.Enum, b gl.Buffer) {
	r.record("BindBuffer", target, b)
	r.bound[target] = b
}

func (r *Recorder) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	r.record("BindBufferBase", target, index, b)
	r.bound[target] = b
}

func (r *Recorder) BufferData(target gl.Enum, size int, usage gl.Enum) {
	r.record("BufferData", target, size, usage)
	if b := r.bound[target]; b.Valid() {
		r.data[b] = make([]byte, size)
	}
}

func (r *Recorder) BufferSubData(target gl.Enum, offset int, src []byte) {
	r.record("BufferSubData", target, offset, len(src))
	if b := r.bound[target]; b.Valid() {
		copy(r.data[b][offset:], src)
	}
}

func (r *Recorder) MapBufferRange(target gl.Enum, offset, length int, access gl.Enum) []byte {
	r.record("MapBufferRange", target, offset, length, access)
	if r.MapFails {
		return nil
	}
	data, ok := r.data[r.bound[target]]
	if !ok || offset+length > len(data) {
		return nil
	}
	return data[offset : offset+length]
}

func (r *Recorder) UnmapBuffer(target gl.Enum) bool {
	r.record("UnmapBuffer", target)
	return !r.UnmapFails
}

func (r *Recorder) ActiveTexture(unit gl.Enum) {
	r.record("ActiveTexture", unit)
}

func (r *Recorder) BindTexture(target gl.Enum, t gl.Texture) {
	r.record("BindTexture", target, t)
}

func (r *Recorder) DeleteTexture(t gl.Texture) {
	r.record("DeleteTexture", t)
}

func (r *Recorder) UseProgram(p gl.Program) {
	r.record("UseProgram", p)
}

func (r *Recorder) DeleteProgram(p gl.Program) {
	r.record("DeleteProgram", p)
}

func (r *Recorder) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	r.record("BindFramebuffer", target, fb)
}

func (r *Recorder) DeleteFramebuffer(fb gl.Framebuffer) {
	r.record("DeleteFramebuffer", fb)
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) Scissor(x, y, width, height int) {
	r.record("Scissor", x, y, width, height)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) ClearDepthf(d float32) {
	r.record("ClearDepthf", d)
}

func (r *Recorder) ClearStencil(s int) {
	r.record("ClearStencil", s)
}

func (r *Recorder) Clear(mask gl.Enum) {
	r.record("Clear", mask)
}

func (r *Recorder) PrimitiveRestartIndex(index uint32) {
	r.record("PrimitiveRestartIndex", index)
}

func (r *Recorder) Uniform1iv(dst gl.Uniform, v []int32) {
	r.record("Uniform1iv", dst, append([]int32(nil), v...))
}

func (r *Recorder) Uniform2iv(dst gl.Uniform, v []int32) {
	r.record("Uniform2iv", dst, append([]int32(nil), v...))
}

func (r *Recorder) Uniform3iv(dst gl.Uniform, v []int32) {
	r.record("Uniform3iv", dst, append([]int32(nil), v...))
}

func (r *Recorder) Uniform4iv(dst gl.Uniform, v []int32) {
	r.record("Uniform4iv", dst, append([]int32(nil), v...))
}

func (r *Recorder) Uniform1fv(dst gl.Uniform, v []float32) {
	r.record("Uniform1fv", dst, append([]float32(nil), v...))
}

func (r *Recorder) Uniform2fv(dst gl.Uniform, v []float32) {
	r.record("Uniform2fv", dst, append([]float32(nil), v...))
}

func (r *Recorder) Uniform3fv(dst gl.Uniform, v []float32) {
	r.record("Uniform3fv", dst, append([]float32(nil), v...))
}

func (r *Recorder) Uniform4fv(dst gl.Uniform, v []float32) {
	r.record("Uniform4fv", dst, append([]float32(nil), v...))
}

func (r *Recorder) UniformMatrix4fv(dst gl.Uniform, transpose bool, v []float32) {
	r.record("UniformMatrix4fv", dst, transpose, append([]float32(nil), v...))
}

func (r *Recorder) EnableVertexAttribArray(a gl.Attrib) {
	r.record("EnableVertexAttribArray", a)
}

func (r *Recorder) DisableVertexAttribArray(a gl.Attrib) {
	r.record("DisableVertexAttribArray", a)
}

func (r *Recorder) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	r.record("VertexAttribPointer", dst, size, ty, normalized, stride, offset)
}

func (r *Recorder) VertexAttribDivisor(dst gl.Attrib, divisor int) {
	r.record("VertexAttribDivisor", dst, divisor)
}

func (r *Recorder) VertexAttrib1fv(dst gl.Attrib, v []float32) {
	r.record("VertexAttrib1fv", dst, append([]float32(nil), v...))
}

func (r *Recorder) VertexAttrib2fv(dst gl.Attrib, v []float32) {
	r.record("VertexAttrib2fv", dst, append([]float32(nil), v...))
}

func (r *Recorder) VertexAttrib3fv(dst gl.Attrib, v []float32) {
	r.record("VertexAttrib3fv", dst, append([]float32(nil), v...))
}

func (r *Recorder) VertexAttrib4fv(dst gl.Attrib, v []float32) {
	r.record("VertexAttrib4fv", dst, append([]float32(nil), v...))
}

func (r *Recorder) VertexAttrib4ubv(dst gl.Attrib, v []byte) {
	r.record("VertexAttrib4ubv", dst, append([]byte(nil), v...))
}

func (r *Recorder) VertexAttrib4Nubv(dst gl.Attrib, v []byte) {
	r.record("VertexAttrib4Nubv", dst, append([]byte(nil), v...))
}

func (r *Recorder) DrawArrays(mode gl.Enum, first, count int) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	r.record("DrawElements", mode, count, ty, offset)
}

func (r *Recorder) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	r.record("DrawArraysInstanced", mode, first, count, instances)
}

func (r *Recorder) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	r.record("DrawElementsInstanced", mode, count, ty, offset, instances)
}

func (r *Recorder) TransformFeedbackVaryings(p gl.Program, varyings []string, bufferMode gl.Enum) {
	r.record("TransformFeedbackVaryings", p, append([]string(nil), varyings...), bufferMode)
}

func (r *Recorder) BeginTransformFeedback(primitiveMode gl.Enum) {
	r.record("BeginTransformFeedback", primitiveMode)
}

func (r *Recorder) EndTransformFeedback() {
	r.record("EndTransformFeedback")
}

var _ gl.Functions = (*Recorder)(nil)
