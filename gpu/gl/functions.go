// SPDX-License-Identifier: Unlicense OR MIT

package gl

// Functions is the set of driver entry points used by the backend.
// Implementations issue every call to the current context; they
// perform no caching of their own.
//
// GetString and GetStringi return the empty string when the driver
// reports no value.
type Functions interface {
	GetString(pname Enum) string
	GetStringi(pname Enum, index int) string
	GetInteger(pname Enum) int
	GetError() Enum

	Enable(cap Enum)
	Disable(cap Enum)
	Flush()

	CreateBuffer() Buffer
	DeleteBuffer(b Buffer)
	BindBuffer(target Enum, b Buffer)
	BindBufferBase(target Enum, index int, b Buffer)
	BufferData(target Enum, size int, usage Enum)
	BufferSubData(target Enum, offset int, src []byte)
	MapBufferRange(target Enum, offset, length int, access Enum) []byte
	UnmapBuffer(target Enum) bool

	ActiveTexture(unit Enum)
	BindTexture(target Enum, t Texture)
	DeleteTexture(t Texture)

	UseProgram(p Program)
	DeleteProgram(p Program)

	BindFramebuffer(target Enum, fb Framebuffer)
	DeleteFramebuffer(fb Framebuffer)

	Viewport(x, y, width, height int)
	Scissor(x, y, width, height int)
	ClearColor(red, green, blue, alpha float32)
	ClearDepthf(d float32)
	ClearStencil(s int)
	Clear(mask Enum)
	PrimitiveRestartIndex(index uint32)

	Uniform1iv(dst Uniform, v []int32)
	Uniform2iv(dst Uniform, v []int32)
	Uniform3iv(dst Uniform, v []int32)
	Uniform4iv(dst Uniform, v []int32)
	Uniform1fv(dst Uniform, v []float32)
	Uniform2fv(dst Uniform, v []float32)
	Uniform3fv(dst Uniform, v []float32)
	Uniform4fv(dst Uniform, v []float32)
	UniformMatrix4fv(dst Uniform, transpose bool, v []float32)

	EnableVertexAttribArray(a Attrib)
	DisableVertexAttribArray(a Attrib)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	VertexAttribDivisor(dst Attrib, divisor int)
	VertexAttrib1fv(dst Attrib, v []float32)
	VertexAttrib2fv(dst Attrib, v []float32)
	VertexAttrib3fv(dst Attrib, v []float32)
	VertexAttrib4fv(dst Attrib, v []float32)
	VertexAttrib4ubv(dst Attrib, v []byte)
	VertexAttrib4Nubv(dst Attrib, v []byte)

	DrawArrays(mode Enum, first, count int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	DrawArraysInstanced(mode Enum, first, count, instances int)
	DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int)

	TransformFeedbackVaryings(p Program, varyings []string, bufferMode Enum)
	BeginTransformFeedback(primitiveMode Enum)
	EndTransformFeedback()
}
