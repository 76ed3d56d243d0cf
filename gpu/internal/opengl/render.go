// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"

	"rendercore.org/gpu/gl"
	"rendercore.org/gpu/internal/driver"
)

// drawCall holds the resolved parameters of the draw issued per pass.
type drawCall struct {
	mode    gl.Enum
	first   int
	count   int
	indexed bool
	typ     gl.Enum
	offset  int
	restart uint32
}

// instanceAttrib is an instance element consumed by the shader.
type instanceAttrib struct {
	slot   gl.Attrib
	elem   driver.VertexElement
	offset int
}

// Submit draws rl with every pass of tech, in order.
//
// Instances are drawn with instanced arrays when the context supports
// them. Otherwise every instance is drawn separately, with its
// attributes set as constant vertex attributes.
//
// Submit panics if rl has no instances, tech has no passes or the
// layout uses an unsupported topology or index format. It returns an
// error if the instance data cannot be read or the emulated instance
// limit is exceeded; no draw is issued in that case.
func (b *Backend) Submit(tech *driver.Technique, rl *driver.RenderLayout) error {
	instances := rl.InstanceCount()
	if instances < 1 {
		panic("opengl: render layout has no instances")
	}
	if len(tech.Passes) == 0 {
		panic("opengl: technique has no passes")
	}
	dc := newDrawCall(rl)
	hw := b.hwInstancing() && (rl.Instances != nil || instances > 1)
	if !hw && instances > 1 {
		if limit := b.cfg.MaxEmulatedInstances; limit > 0 && instances > limit {
			return fmt.Errorf("%w: %d instances, limit %d", ErrEmulatedInstanceLimit, instances, limit)
		}
	}
	var instData []byte
	if !hw && rl.Instances != nil {
		var err error
		if instData, err = b.instanceData(rl); err != nil {
			return err
		}
	}

	shader := tech.Passes[0].Shader()
	enabled := b.activateLayout(shader, rl)

	b.counters.Primitives += uint64(instances) * uint64(primitiveCount(rl))
	b.counters.Vertices += uint64(instances) * uint64(dc.count)

	if dc.indexed {
		b.glstate.setPrimitiveRestartIndex(b.funcs, dc.restart, b.restartIndexSettable())
	}

	var attribs []instanceAttrib
	if rl.Instances != nil {
		attribs = instanceAttribs(shader, rl.Instances)
	}
	if hw {
		b.drawInstanced(tech, rl, dc, attribs)
	} else {
		b.drawEmulated(tech, rl, dc, attribs, instData)
	}

	for _, a := range enabled {
		b.glstate.setVertexAttribArray(b.funcs, a, false)
	}
	return nil
}

// Dispatch runs a compute program. Compute is not supported by this
// backend and Dispatch always panics.
func (b *Backend) Dispatch(tech *driver.Technique, x, y, z int) {
	panic("opengl: compute dispatch not supported")
}

func newDrawCall(rl *driver.RenderLayout) drawCall {
	dc := drawCall{first: rl.StartVertex, count: rl.ElementCount()}
	dc.mode, _ = toGLDrawMode(rl.Topology, dc.count)
	if rl.UseIndices() {
		var size int
		dc.typ, size, dc.restart = toGLIndexType(rl.IndexFormat)
		dc.indexed = true
		dc.offset = rl.StartIndex * size
	}
	return dc
}

func primitiveCount(rl *driver.RenderLayout) int {
	_, n := toGLDrawMode(rl.Topology, rl.ElementCount())
	return n
}

// activateLayout points the shader inputs at the vertex streams of rl
// and binds its index buffer. It returns the enabled slots.
func (b *Backend) activateLayout(shader driver.ShaderObject, rl *driver.RenderLayout) []gl.Attrib {
	f := b.funcs
	var enabled []gl.Attrib
	for _, s := range rl.Streams {
		stride := s.Stride()
		offset := 0
		for _, e := range s.Format {
			if a, ok := shader.AttribLocation(e.Usage, e.UsageIndex); ok {
				n, typ, norm := toGLVertexFormat(e)
				b.glstate.bindBuffer(f, gl.ARRAY_BUFFER, s.Buffer.Handle())
				f.VertexAttribPointer(a, n, typ, norm, stride, offset)
				b.glstate.setVertexAttribArray(f, a, true)
				enabled = append(enabled, a)
			}
			offset += e.Size()
		}
	}
	if rl.UseIndices() {
		b.glstate.bindBuffer(f, gl.ELEMENT_ARRAY_BUFFER, rl.Indices.Handle())
	}
	return enabled
}

// instanceAttribs lists the elements of inst that shader consumes.
// Elements without a matching input are skipped.
func instanceAttribs(shader driver.ShaderObject, inst *driver.VertexStream) []instanceAttrib {
	var attribs []instanceAttrib
	offset := 0
	for _, e := range inst.Format {
		if a, ok := shader.AttribLocation(e.Usage, e.UsageIndex); ok {
			attribs = append(attribs, instanceAttrib{slot: a, elem: e, offset: offset})
		}
		offset += e.Size()
	}
	return attribs
}

func (b *Backend) drawInstanced(tech *driver.Technique, rl *driver.RenderLayout, dc drawCall, attribs []instanceAttrib) {
	f := b.funcs
	instances := rl.InstanceCount()
	if inst := rl.Instances; inst != nil {
		size := inst.Stride()
		base := rl.StartInstance * size
		for _, a := range attribs {
			n, typ, norm := toGLVertexFormat(a.elem)
			b.glstate.bindBuffer(f, gl.ARRAY_BUFFER, inst.Buffer.Handle())
			f.VertexAttribPointer(a.slot, n, typ, norm, size, base+a.offset)
			b.glstate.setVertexAttribArray(f, a.slot, true)
			b.glstate.setVertexAttribDivisor(f, a.slot, 1)
		}
	}
	for _, p := range tech.Passes {
		p.Bind()
		b.beginCapture(p.Shader().Program())
		if dc.indexed {
			f.DrawElementsInstanced(dc.mode, dc.count, dc.typ, dc.offset, instances)
		} else {
			f.DrawArraysInstanced(dc.mode, dc.first, dc.count, instances)
		}
		b.endCapture()
		p.Unbind()
	}
	for _, a := range attribs {
		b.glstate.setVertexAttribArray(f, a.slot, false)
		b.glstate.setVertexAttribDivisor(f, a.slot, 0)
	}
}

func (b *Backend) drawEmulated(tech *driver.Technique, rl *driver.RenderLayout, dc drawCall, attribs []instanceAttrib, data []byte) {
	f := b.funcs
	// Constant attributes apply only to disabled arrays.
	for _, a := range attribs {
		b.glstate.setVertexAttribArray(f, a.slot, false)
	}
	size := rl.InstanceSize()
	for i := 0; i < rl.InstanceCount(); i++ {
		if rl.Instances != nil {
			inst := data[i*size : (i+1)*size]
			for _, a := range attribs {
				b.pushInstanceAttrib(a, inst)
			}
		}
		for _, p := range tech.Passes {
			p.Bind()
			b.beginCapture(p.Shader().Program())
			if dc.indexed {
				f.DrawElements(dc.mode, dc.count, dc.typ, dc.offset)
			} else {
				f.DrawArrays(dc.mode, dc.first, dc.count)
			}
			b.endCapture()
			p.Unbind()
		}
	}
}

// instanceData reads the instance range of rl from its instance
// stream.
func (b *Backend) instanceData(rl *driver.RenderLayout) ([]byte, error) {
	size := rl.InstanceSize()
	start := rl.StartInstance * size
	end := start + rl.InstanceCount()*size
	buf := rl.Instances.Buffer
	if end > buf.Size() {
		return nil, fmt.Errorf("opengl: instance range [%d, %d) exceeds instance buffer size %d", start, end, buf.Size())
	}
	data := make([]byte, end)
	if err := buf.Download(data); err != nil {
		return nil, fmt.Errorf("opengl: reading instance stream: %w", err)
	}
	return data[start:end], nil
}

// pushInstanceAttrib sets the value of one instance element as a
// constant vertex attribute.
func (b *Backend) pushInstanceAttrib(a instanceAttrib, inst []byte) {
	f := b.funcs
	e := a.elem
	src := inst[a.offset : a.offset+e.Size()]
	n := e.Format.NumComponents()
	if n == 4 && e.Format.ComponentSize() == 1 && !e.Format.IsSigned() {
		if normalizedElement(e) {
			f.VertexAttrib4Nubv(a.slot, src)
		} else {
			f.VertexAttrib4ubv(a.slot, src)
		}
		return
	}
	v, ok := decodeElement(e, src)
	if !ok {
		panic(fmt.Errorf("opengl: instance element format %v cannot be emulated", e.Format))
	}
	switch n {
	case 1:
		f.VertexAttrib1fv(a.slot, v)
	case 2:
		f.VertexAttrib2fv(a.slot, v)
	case 3:
		f.VertexAttrib3fv(a.slot, v)
	case 4:
		f.VertexAttrib4fv(a.slot, v)
	}
}

// decodeElement converts the channels of an element to the floats
// an attribute array of the same format supplies to the shader.
// Buffers hold values in host byte order. Packed formats are not
// decoded.
func decodeElement(e driver.VertexElement, src []byte) ([]float32, bool) {
	f := e.Format
	cs := f.ComponentSize()
	norm := normalizedElement(e)
	signed := f.IsSigned()
	order := binary.NativeEndian
	v := make([]float32, f.NumComponents())
	for i := range v {
		c := src[i*cs:]
		switch {
		case f.IsFloat() && cs == 4:
			v[i] = math.Float32frombits(order.Uint32(c))
		case f.IsFloat() && cs == 2:
			v[i] = float16.Frombits(order.Uint16(c)).Float32()
		case cs == 1 && signed:
			v[i] = snorm(int64(int8(c[0])), math.MaxInt8, norm)
		case cs == 1:
			v[i] = unorm(uint64(c[0]), math.MaxUint8, norm)
		case cs == 2 && signed:
			v[i] = snorm(int64(int16(order.Uint16(c))), math.MaxInt16, norm)
		case cs == 2:
			v[i] = unorm(uint64(order.Uint16(c)), math.MaxUint16, norm)
		case cs == 4 && signed:
			v[i] = snorm(int64(int32(order.Uint32(c))), math.MaxInt32, norm)
		case cs == 4:
			v[i] = unorm(uint64(order.Uint32(c)), math.MaxUint32, norm)
		default:
			return nil, false
		}
	}
	return v, true
}

func unorm(v, limit uint64, norm bool) float32 {
	if !norm {
		return float32(v)
	}
	return float32(float64(v) / float64(limit))
}

// snorm maps the most negative value to -1 as well.
func snorm(v, limit int64, norm bool) float32 {
	if !norm {
		return float32(v)
	}
	return float32(math.Max(float64(v)/float64(limit), -1))
}
