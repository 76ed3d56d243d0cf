// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"rendercore.org/gpu/gl"
	"rendercore.org/gpu/internal/driver"
)

// streamOutput is a bound capture layout. The varyings are derived
// once, when the layout is bound.
type streamOutput struct {
	mode     gl.Enum
	buffers  []gl.Buffer
	varyings []string
}

func (s *streamOutput) captures(buf gl.Buffer) bool {
	for _, b := range s.buffers {
		if b.Equal(buf) {
			return true
		}
	}
	return false
}

// BindSOBuffers makes the vertex streams of rl the capture targets
// of subsequent draws. Each stream captures the shader output that
// matches the usage of its first element. A nil layout ends capture.
func (b *Backend) BindSOBuffers(rl *driver.RenderLayout) {
	if rl == nil {
		if b.so != nil {
			slogger().Debug("stream output unbound")
		}
		b.so = nil
		return
	}
	if !b.caps.Features.Has(driver.FeatureStreamOutput) {
		panic("opengl: stream output not supported")
	}
	so := &streamOutput{mode: streamOutputMode(rl.Topology)}
	for _, s := range rl.Streams {
		if len(s.Format) == 0 {
			panic("opengl: stream output stream has no elements")
		}
		so.buffers = append(so.buffers, s.Buffer.Handle())
		so.varyings = append(so.varyings, streamOutputVarying(s.Format[0]))
	}
	b.so = so
	slogger().Debug("stream output bound", "topology", rl.Topology, "varyings", so.varyings)
}

// beginCapture prepares prog for capture and starts it. It does
// nothing without a stream output binding.
func (b *Backend) beginCapture(prog gl.Program) {
	so := b.so
	if so == nil {
		return
	}
	b.funcs.TransformFeedbackVaryings(prog, so.varyings, gl.SEPARATE_ATTRIBS)
	for j, buf := range so.buffers {
		b.glstate.bindBufferBase(b.funcs, gl.TRANSFORM_FEEDBACK_BUFFER, j, buf)
	}
	b.funcs.BeginTransformFeedback(so.mode)
}

func (b *Backend) endCapture() {
	if b.so != nil {
		b.funcs.EndTransformFeedback()
	}
}
