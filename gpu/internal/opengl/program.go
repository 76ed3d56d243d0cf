// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"strings"

	"gioui.org/shader"

	"rendercore.org/gpu/gl"
	"rendercore.org/gpu/internal/driver"
)

type semantic struct {
	name  string
	index int
}

// Program is a linked program together with the attribute slots of
// its vertex inputs.
type Program struct {
	backend *Backend
	obj     gl.Program
	name    string
	attribs map[semantic]gl.Attrib
}

// Pass binds a program and runs an optional setup function, for
// example to set uniforms, each time it is bound.
type Pass struct {
	prog  *Program
	setup func(b *Backend)
}

// NewProgram wraps the linked program obj. The attribute slots are
// taken from the input reflection of src.
func (b *Backend) NewProgram(obj gl.Program, src shader.Sources) *Program {
	p := &Program{
		backend: b,
		obj:     obj,
		name:    src.Name,
		attribs: make(map[semantic]gl.Attrib, len(src.Inputs)),
	}
	for _, in := range src.Inputs {
		if in.Semantic == "" {
			continue
		}
		key := semantic{strings.ToUpper(in.Semantic), in.SemanticIndex}
		p.attribs[key] = gl.Attrib(in.Location)
	}
	return p
}

func (p *Program) Program() gl.Program {
	return p.obj
}

func (p *Program) AttribLocation(usage driver.VertexUsage, index int) (gl.Attrib, bool) {
	name, idx := usage.Semantic(index)
	a, ok := p.attribs[semantic{name, idx}]
	return a, ok
}

// Release deletes the program.
func (p *Program) Release() {
	p.backend.DeleteProgram(p.obj)
}

// NewPass returns a pass that binds prog and then calls setup, if
// not nil.
func (b *Backend) NewPass(prog *Program, setup func(b *Backend)) *Pass {
	return &Pass{prog: prog, setup: setup}
}

func (p *Pass) Bind() {
	b := p.prog.backend
	b.glstate.useProgram(b.funcs, p.prog.obj)
	if p.setup != nil {
		p.setup(b)
	}
}

// Unbind does nothing. The next pass overwrites the state.
func (p *Pass) Unbind() {}

func (p *Pass) Shader() driver.ShaderObject {
	return p.prog
}
