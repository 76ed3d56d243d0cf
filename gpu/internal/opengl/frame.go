// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import "rendercore.org/gpu/gl"

// Counters accumulate the work submitted by draws.
type Counters struct {
	Primitives uint64
	Vertices   uint64
}

// BeginFrame marks the start of a frame. It changes no state.
func (b *Backend) BeginFrame() {
	slogger().Debug("begin frame")
}

func (b *Backend) EndFrame() {
	slogger().Debug("end frame",
		"primitives", b.counters.Primitives,
		"vertices", b.counters.Vertices,
	)
}

func (b *Backend) BeginPass() {
	slogger().Debug("begin pass")
}

func (b *Backend) EndPass() {
	slogger().Debug("end pass")
}

// Counters returns the work submitted since the last call to
// ResetCounters. The backend never resets them itself.
func (b *Backend) Counters() Counters {
	return b.counters
}

func (b *Backend) ResetCounters() {
	b.counters = Counters{}
}

// Flush forces the submission of queued commands.
func (b *Backend) Flush() {
	b.funcs.Flush()
}

func (b *Backend) Scissor(x, y, width, height int) {
	b.funcs.Scissor(x, y, width, height)
}

// Clear clears the selected buffers of the bound framebuffer to the
// current clear values.
func (b *Backend) Clear(color, depth, stencil bool) {
	var mask gl.Enum
	if color {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if stencil {
		mask |= gl.STENCIL_BUFFER_BIT
	}
	if mask != 0 {
		b.funcs.Clear(mask)
	}
}
