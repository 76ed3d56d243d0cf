// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"fmt"

	"rendercore.org/gpu/gl"
	"rendercore.org/gpu/internal/driver"
)

// toGLDrawMode returns the draw mode of a topology and the number of
// primitives drawn from count vertices or indices.
func toGLDrawMode(t driver.Topology, count int) (gl.Enum, int) {
	switch t {
	case driver.TopologyPointList:
		return gl.POINTS, count
	case driver.TopologyLineList:
		return gl.LINES, count / 2
	case driver.TopologyLineStrip:
		return gl.LINE_STRIP, max(count-1, 0)
	case driver.TopologyTriangleList:
		return gl.TRIANGLES, count / 3
	case driver.TopologyTriangleStrip:
		return gl.TRIANGLE_STRIP, max(count-2, 0)
	case driver.TopologyLineListAdj:
		return gl.LINES_ADJACENCY, count / 4
	case driver.TopologyLineStripAdj:
		return gl.LINE_STRIP_ADJACENCY, max(count-3, 0)
	case driver.TopologyTriangleListAdj:
		return gl.TRIANGLES_ADJACENCY, count / 6
	case driver.TopologyTriangleStripAdj:
		return gl.TRIANGLE_STRIP_ADJACENCY, max((count-4)/2, 0)
	default:
		panic(fmt.Errorf("opengl: unsupported topology %v", t))
	}
}

// toGLIndexType returns the index type, the byte size of one index
// and the primitive restart index for an index format.
func toGLIndexType(f driver.ElementFormat) (gl.Enum, int, uint32) {
	switch f {
	case driver.FormatR16UI:
		return gl.UNSIGNED_SHORT, 2, 0xFFFF
	case driver.FormatR32UI:
		return gl.UNSIGNED_INT, 4, 0xFFFFFFFF
	default:
		panic(fmt.Errorf("opengl: unsupported index format %v", f))
	}
}

// toGLVertexFormat returns the component count, component type and
// normalization for a vertex element.
func toGLVertexFormat(e driver.VertexElement) (int, gl.Enum, bool) {
	f := e.Format
	n := f.NumComponents()
	var typ gl.Enum
	switch f {
	case driver.FormatA2BGR10:
		typ = gl.UNSIGNED_INT_2_10_10_10_REV
	case driver.FormatSignedA2BGR10:
		typ = gl.INT_2_10_10_10_REV
	case driver.FormatB10G11R11F:
		typ = gl.UNSIGNED_INT_10F_11F_11F_REV
	default:
		switch cs := f.ComponentSize(); {
		case f.IsFloat() && cs == 2:
			typ = gl.HALF_FLOAT
		case f.IsFloat() && cs == 4:
			typ = gl.FLOAT
		case cs == 1 && f.IsSigned():
			typ = gl.BYTE
		case cs == 1:
			typ = gl.UNSIGNED_BYTE
		case cs == 2 && f.IsSigned():
			typ = gl.SHORT
		case cs == 2:
			typ = gl.UNSIGNED_SHORT
		case cs == 4 && f.IsSigned():
			typ = gl.INT
		case cs == 4:
			typ = gl.UNSIGNED_INT
		default:
			panic(fmt.Errorf("opengl: unsupported vertex format %v", f))
		}
	}
	return n, typ, normalizedElement(e)
}

// normalizedElement reports whether the integer channels of e are
// read as normalized values. Colors always are.
func normalizedElement(e driver.VertexElement) bool {
	if (e.Usage == driver.UsageDiffuse || e.Usage == driver.UsageSpecular) && !e.Format.IsFloat() {
		return true
	}
	return e.Format.IsNormalized()
}

// streamOutputMode returns the capture primitive of a topology.
func streamOutputMode(t driver.Topology) gl.Enum {
	switch t {
	case driver.TopologyPointList:
		return gl.POINTS
	case driver.TopologyLineList:
		return gl.LINES
	case driver.TopologyTriangleList:
		return gl.TRIANGLES
	default:
		panic(fmt.Errorf("opengl: unsupported stream output topology %v", t))
	}
}

// streamOutputVarying returns the name of the shader output captured
// into a stream whose first element is e.
func streamOutputVarying(e driver.VertexElement) string {
	switch e.Usage {
	case driver.UsagePosition:
		return "gl_Position"
	case driver.UsageNormal:
		return "gl_Normal"
	case driver.UsageDiffuse:
		return "gl_FrontColor"
	case driver.UsageSpecular:
		return "gl_FrontSecondaryColor"
	case driver.UsageBlendWeight:
		return "_BLENDWEIGHT"
	case driver.UsageBlendIndex:
		return "_BLENDINDEX"
	case driver.UsageTextureCoord:
		return fmt.Sprintf("gl_TexCoord[%d]", e.UsageIndex)
	case driver.UsageTangent:
		return "_TANGENT"
	case driver.UsageBinormal:
		return "_BINORMAL"
	default:
		panic(fmt.Errorf("opengl: unsupported stream output usage %v", e.Usage))
	}
}
