// SPDX-License-Identifier: Unlicense OR MIT

// Package driver declares the vocabulary shared by render backends
// and the objects that collaborate with them: formats, capabilities,
// geometry layouts, shader programs and render targets.
package driver

import (
	"errors"

	"rendercore.org/gpu/gl"
)

// Buffer is a device buffer object.
type Buffer interface {
	Handle() gl.Buffer
	Size() int
	Upload(data []byte)
	// Download copies the first len(data) bytes of the buffer
	// into data.
	Download(data []byte) error
	Release()
}

// FrameBuffer is a render target.
type FrameBuffer interface {
	Handle() gl.Framebuffer
	Viewport() Viewport
	// Active reports whether the target is visible. The application
	// loop polls for events while active and blocks otherwise.
	Active() bool
}

type Viewport struct {
	Left, Top     int
	Width, Height int
}

// ShaderObject is a linked program together with the attribute
// slots of its inputs.
type ShaderObject interface {
	Program() gl.Program
	// AttribLocation returns the attribute slot that consumes the
	// given usage, if any.
	AttribLocation(usage VertexUsage, index int) (gl.Attrib, bool)
}

// Pass binds a complete program and its fixed function state.
type Pass interface {
	Bind()
	Unbind()
	Shader() ShaderObject
}

// Technique is an ordered sequence of passes.
type Technique struct {
	Name   string
	Passes []Pass
}

func (t *Technique) NumPasses() int {
	return len(t.Passes)
}

type BufferBinding uint8

const (
	BufferBindingIndices BufferBinding = 1 << iota
	BufferBindingVertices
	BufferBindingStreamOutput
)

// ErrContentLost is returned by Buffer.Download when the driver
// discarded the buffer contents while it was mapped.
var ErrContentLost = errors.New("buffer content lost")
