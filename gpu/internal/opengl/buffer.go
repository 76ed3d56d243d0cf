// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"fmt"

	"rendercore.org/gpu/gl"
	"rendercore.org/gpu/internal/driver"
)

type gpuBuffer struct {
	backend  *Backend
	obj      gl.Buffer
	typ      driver.BufferBinding
	size     int
	released bool
	// shadow mirrors the contents of buffers on contexts that cannot
	// map them.
	shadow []byte
}

// NewBuffer creates a buffer initialized with data.
func (b *Backend) NewBuffer(typ driver.BufferBinding, data []byte) (driver.Buffer, error) {
	target, ok := firstBufferType(typ)
	if !ok {
		return nil, fmt.Errorf("opengl: unsupported buffer binding %#x", uint8(typ))
	}
	if typ&driver.BufferBindingStreamOutput != 0 && !b.caps.Features.Has(driver.FeatureStreamOutput) {
		return nil, fmt.Errorf("opengl: stream output buffers not supported")
	}
	glErr(b.funcs)
	buf := &gpuBuffer{backend: b, obj: b.funcs.CreateBuffer(), typ: typ, size: len(data)}
	if !b.caps.Features.Has(driver.FeatureMapBuffer) {
		buf.shadow = append([]byte(nil), data...)
	}
	b.glstate.bindBuffer(b.funcs, target, buf.obj)
	b.funcs.BufferData(target, len(data), gl.STATIC_DRAW)
	if len(data) > 0 {
		b.funcs.BufferSubData(target, 0, data)
	}
	if err := glErr(b.funcs); err != nil {
		buf.Release()
		return nil, err
	}
	return buf, nil
}

func (b *gpuBuffer) Handle() gl.Buffer {
	return b.obj
}

func (b *gpuBuffer) Size() int {
	return b.size
}

func (b *gpuBuffer) Upload(data []byte) {
	if len(data) > b.size {
		panic("buffer size overflow")
	}
	target, _ := firstBufferType(b.typ)
	f := b.backend.funcs
	b.backend.glstate.bindBuffer(f, target, b.obj)
	if len(data) == b.size {
		// Respecify the storage so the driver can drop the old
		// contents instead of waiting for pending draws.
		f.BufferData(target, b.size, gl.DYNAMIC_DRAW)
	}
	f.BufferSubData(target, 0, data)
	copy(b.shadow, data)
}

func (b *gpuBuffer) Download(data []byte) error {
	if len(data) > b.size {
		panic("buffer size overflow")
	}
	if len(data) == 0 {
		return nil
	}
	if b.shadow != nil {
		copy(data, b.shadow)
		return nil
	}
	target, _ := firstBufferType(b.typ)
	f := b.backend.funcs
	b.backend.glstate.bindBuffer(f, target, b.obj)
	bufferMap := f.MapBufferRange(target, 0, len(data), gl.MAP_READ_BIT)
	if bufferMap == nil {
		return fmt.Errorf("opengl: MapBufferRange: error %#x", f.GetError())
	}
	copy(data, bufferMap)
	if !f.UnmapBuffer(target) {
		return driver.ErrContentLost
	}
	return nil
}

func (b *gpuBuffer) Release() {
	if !b.released {
		b.backend.DeleteBuffer(b.obj)
		b.released = true
	}
}

func firstBufferType(typ driver.BufferBinding) (gl.Enum, bool) {
	switch {
	case typ&driver.BufferBindingIndices != 0:
		return gl.ELEMENT_ARRAY_BUFFER, true
	case typ&driver.BufferBindingVertices != 0:
		return gl.ARRAY_BUFFER, true
	case typ&driver.BufferBindingStreamOutput != 0:
		return gl.TRANSFORM_FEEDBACK_BUFFER, true
	default:
		return 0, false
	}
}
