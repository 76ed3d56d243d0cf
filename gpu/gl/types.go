// SPDX-License-Identifier: Unlicense OR MIT

package gl

// Object handles are opaque driver names. The zero value of every
// handle except Uniform denotes "no object".
type (
	Buffer      struct{ V uint }
	Framebuffer struct{ V uint }
	Program     struct{ V uint }
	Texture     struct{ V uint }
	Uniform     struct{ V int }
)

func (b Buffer) Valid() bool {
	return b.V != 0
}

func (b Buffer) Equal(b2 Buffer) bool {
	return b == b2
}

func (f Framebuffer) Valid() bool {
	return f.V != 0
}

func (f Framebuffer) Equal(f2 Framebuffer) bool {
	return f == f2
}

func (p Program) Valid() bool {
	return p.V != 0
}

func (p Program) Equal(p2 Program) bool {
	return p == p2
}

func (t Texture) Valid() bool {
	return t.V != 0
}

func (t Texture) Equal(t2 Texture) bool {
	return t == t2
}

func (u Uniform) Valid() bool {
	return u.V != -1
}

func (u Uniform) Equal(u2 Uniform) bool {
	return u == u2
}
