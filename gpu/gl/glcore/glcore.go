// SPDX-License-Identifier: Unlicense OR MIT

// Package glcore implements gl.Functions on top of the go-gl
// bindings for OpenGL 3.3 core profile contexts.
package glcore

import (
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	rgl "rendercore.org/gpu/gl"
)

// Functions calls the entry points of the current context.
type Functions struct{}

// New loads the entry points of the context current on the calling
// thread.
func New() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return new(Functions), nil
}

func (f *Functions) GetString(pname rgl.Enum) string {
	s := gl.GetString(uint32(pname))
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (f *Functions) GetStringi(pname rgl.Enum, index int) string {
	s := gl.GetStringi(uint32(pname), uint32(index))
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (f *Functions) GetInteger(pname rgl.Enum) int {
	var p [4]int32
	gl.GetIntegerv(uint32(pname), &p[0])
	return int(p[0])
}

func (f *Functions) GetError() rgl.Enum {
	return rgl.Enum(gl.GetError())
}

func (f *Functions) Enable(cap rgl.Enum) {
	gl.Enable(uint32(cap))
}

func (f *Functions) Disable(cap rgl.Enum) {
	gl.Disable(uint32(cap))
}

func (f *Functions) Flush() {
	gl.Flush()
}

func (f *Functions) CreateBuffer() rgl.Buffer {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return rgl.Buffer{V: uint(buf)}
}

func (f *Functions) DeleteBuffer(v rgl.Buffer) {
	buf := uint32(v.V)
	gl.DeleteBuffers(1, &buf)
}

func (f *Functions) BindBuffer(target rgl.Enum, b rgl.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b.V))
}

func (f *Functions) BindBufferBase(target rgl.Enum, index int, b rgl.Buffer) {
	gl.BindBufferBase(uint32(target), uint32(index), uint32(b.V))
}

func (f *Functions) BufferData(target rgl.Enum, size int, usage rgl.Enum) {
	gl.BufferData(uint32(target), size, nil, uint32(usage))
}

func (f *Functions) BufferSubData(target rgl.Enum, offset int, src []byte) {
	if len(src) == 0 {
		return
	}
	gl.BufferSubData(uint32(target), offset, len(src), gl.Ptr(src))
}

func (f *Functions) MapBufferRange(target rgl.Enum, offset, length int, access rgl.Enum) []byte {
	p := gl.MapBufferRange(uint32(target), offset, length, uint32(access))
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), length)
}

func (f *Functions) UnmapBuffer(target rgl.Enum) bool {
	return gl.UnmapBuffer(uint32(target))
}

func (f *Functions) ActiveTexture(texture rgl.Enum) {
	gl.ActiveTexture(uint32(texture))
}

func (f *Functions) BindTexture(target rgl.Enum, t rgl.Texture) {
	gl.BindTexture(uint32(target), uint32(t.V))
}

func (f *Functions) DeleteTexture(v rgl.Texture) {
	t := uint32(v.V)
	gl.DeleteTextures(1, &t)
}

func (f *Functions) UseProgram(p rgl.Program) {
	gl.UseProgram(uint32(p.V))
}

func (f *Functions) DeleteProgram(p rgl.Program) {
	gl.DeleteProgram(uint32(p.V))
}

func (f *Functions) BindFramebuffer(target rgl.Enum, fb rgl.Framebuffer) {
	gl.BindFramebuffer(uint32(target), uint32(fb.V))
}

func (f *Functions) DeleteFramebuffer(v rgl.Framebuffer) {
	fb := uint32(v.V)
	gl.DeleteFramebuffers(1, &fb)
}

func (f *Functions) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) Scissor(x, y, width, height int) {
	gl.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
}

func (f *Functions) ClearDepthf(d float32) {
	// glClearDepthf is missing from 3.3 core.
	gl.ClearDepth(float64(d))
}

func (f *Functions) ClearStencil(s int) {
	gl.ClearStencil(int32(s))
}

func (f *Functions) Clear(mask rgl.Enum) {
	gl.Clear(uint32(mask))
}

func (f *Functions) PrimitiveRestartIndex(index uint32) {
	gl.PrimitiveRestartIndex(index)
}

func (f *Functions) Uniform1iv(dst rgl.Uniform, v []int32) {
	gl.Uniform1iv(int32(dst.V), int32(len(v)), &v[0])
}

func (f *Functions) Uniform2iv(dst rgl.Uniform, v []int32) {
	gl.Uniform2iv(int32(dst.V), int32(len(v)/2), &v[0])
}

func (f *Functions) Uniform3iv(dst rgl.Uniform, v []int32) {
	gl.Uniform3iv(int32(dst.V), int32(len(v)/3), &v[0])
}

func (f *Functions) Uniform4iv(dst rgl.Uniform, v []int32) {
	gl.Uniform4iv(int32(dst.V), int32(len(v)/4), &v[0])
}

func (f *Functions) Uniform1fv(dst rgl.Uniform, v []float32) {
	gl.Uniform1fv(int32(dst.V), int32(len(v)), &v[0])
}

func (f *Functions) Uniform2fv(dst rgl.Uniform, v []float32) {
	gl.Uniform2fv(int32(dst.V), int32(len(v)/2), &v[0])
}

func (f *Functions) Uniform3fv(dst rgl.Uniform, v []float32) {
	gl.Uniform3fv(int32(dst.V), int32(len(v)/3), &v[0])
}

func (f *Functions) Uniform4fv(dst rgl.Uniform, v []float32) {
	gl.Uniform4fv(int32(dst.V), int32(len(v)/4), &v[0])
}

func (f *Functions) UniformMatrix4fv(dst rgl.Uniform, transpose bool, v []float32) {
	gl.UniformMatrix4fv(int32(dst.V), int32(len(v)/16), transpose, &v[0])
}

func (f *Functions) EnableVertexAttribArray(a rgl.Attrib) {
	gl.EnableVertexAttribArray(uint32(a))
}

func (f *Functions) DisableVertexAttribArray(a rgl.Attrib) {
	gl.DisableVertexAttribArray(uint32(a))
}

func (f *Functions) VertexAttribPointer(dst rgl.Attrib, size int, ty rgl.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(dst), int32(size), uint32(ty), normalized, int32(stride), uintptr(offset))
}

func (f *Functions) VertexAttribDivisor(dst rgl.Attrib, divisor int) {
	gl.VertexAttribDivisor(uint32(dst), uint32(divisor))
}

func (f *Functions) VertexAttrib1fv(dst rgl.Attrib, v []float32) {
	gl.VertexAttrib1fv(uint32(dst), &v[0])
}

func (f *Functions) VertexAttrib2fv(dst rgl.Attrib, v []float32) {
	gl.VertexAttrib2fv(uint32(dst), &v[0])
}

func (f *Functions) VertexAttrib3fv(dst rgl.Attrib, v []float32) {
	gl.VertexAttrib3fv(uint32(dst), &v[0])
}

func (f *Functions) VertexAttrib4fv(dst rgl.Attrib, v []float32) {
	gl.VertexAttrib4fv(uint32(dst), &v[0])
}

func (f *Functions) VertexAttrib4ubv(dst rgl.Attrib, v []byte) {
	gl.VertexAttrib4ubv(uint32(dst), &v[0])
}

func (f *Functions) VertexAttrib4Nubv(dst rgl.Attrib, v []byte) {
	gl.VertexAttrib4Nubv(uint32(dst), &v[0])
}

func (f *Functions) DrawArrays(mode rgl.Enum, first, count int) {
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (f *Functions) DrawElements(mode rgl.Enum, count int, ty rgl.Enum, offset int) {
	gl.DrawElementsWithOffset(uint32(mode), int32(count), uint32(ty), uintptr(offset))
}

func (f *Functions) DrawArraysInstanced(mode rgl.Enum, first, count, instances int) {
	gl.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
}

func (f *Functions) DrawElementsInstanced(mode rgl.Enum, count int, ty rgl.Enum, offset, instances int) {
	gl.DrawElementsInstanced(uint32(mode), int32(count), uint32(ty), unsafe.Pointer(uintptr(offset)), int32(instances))
}

func (f *Functions) TransformFeedbackVaryings(p rgl.Program, varyings []string, bufferMode rgl.Enum) {
	names := make([]string, len(varyings))
	for i, v := range varyings {
		names[i] = v + "\x00"
	}
	cnames, free := gl.Strs(names...)
	defer free()
	gl.TransformFeedbackVaryings(uint32(p.V), int32(len(names)), cnames, uint32(bufferMode))
}

func (f *Functions) BeginTransformFeedback(primitiveMode rgl.Enum) {
	gl.BeginTransformFeedback(uint32(primitiveMode))
}

func (f *Functions) EndTransformFeedback() {
	gl.EndTransformFeedback()
}

var _ rgl.Functions = (*Functions)(nil)
