// SPDX-License-Identifier: Unlicense OR MIT

package driver

import "fmt"

// VertexUsage is the semantic meaning of a vertex element.
type VertexUsage uint8

const (
	UsagePosition VertexUsage = iota
	UsageNormal
	UsageDiffuse
	UsageSpecular
	UsageBlendWeight
	UsageBlendIndex
	UsageTextureCoord
	UsageTangent
	UsageBinormal
)

func (u VertexUsage) String() string {
	switch u {
	case UsagePosition:
		return "Position"
	case UsageNormal:
		return "Normal"
	case UsageDiffuse:
		return "Diffuse"
	case UsageSpecular:
		return "Specular"
	case UsageBlendWeight:
		return "BlendWeight"
	case UsageBlendIndex:
		return "BlendIndex"
	case UsageTextureCoord:
		return "TextureCoord"
	case UsageTangent:
		return "Tangent"
	case UsageBinormal:
		return "Binormal"
	default:
		return fmt.Sprintf("VertexUsage(%d)", uint8(u))
	}
}

// Semantic returns the shader input semantic and semantic index
// that consume the usage with the given index, such as ("COLOR", 1)
// for the specular color.
func (u VertexUsage) Semantic(index int) (string, int) {
	switch u {
	case UsagePosition:
		return "POSITION", index
	case UsageNormal:
		return "NORMAL", index
	case UsageDiffuse:
		return "COLOR", 0
	case UsageSpecular:
		return "COLOR", 1
	case UsageBlendWeight:
		return "BLENDWEIGHT", index
	case UsageBlendIndex:
		return "BLENDINDICES", index
	case UsageTextureCoord:
		return "TEXCOORD", index
	case UsageTangent:
		return "TANGENT", index
	case UsageBinormal:
		return "BINORMAL", index
	default:
		return "", 0
	}
}

// VertexElement describes one attribute of a vertex or instance.
type VertexElement struct {
	Usage      VertexUsage
	UsageIndex int
	Format     ElementFormat
}

func (e VertexElement) Size() int {
	return e.Format.Size()
}

type Topology uint8

const (
	TopologyPointList Topology = iota
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
	TopologyLineListAdj
	TopologyLineStripAdj
	TopologyTriangleListAdj
	TopologyTriangleStripAdj
	// TopologyPatchList is declared for completeness. No backend
	// draws it.
	TopologyPatchList
)

func (t Topology) String() string {
	switch t {
	case TopologyPointList:
		return "PointList"
	case TopologyLineList:
		return "LineList"
	case TopologyLineStrip:
		return "LineStrip"
	case TopologyTriangleList:
		return "TriangleList"
	case TopologyTriangleStrip:
		return "TriangleStrip"
	case TopologyLineListAdj:
		return "LineListAdj"
	case TopologyLineStripAdj:
		return "LineStripAdj"
	case TopologyTriangleListAdj:
		return "TriangleListAdj"
	case TopologyTriangleStripAdj:
		return "TriangleStripAdj"
	case TopologyPatchList:
		return "PatchList"
	default:
		return fmt.Sprintf("Topology(%d)", uint8(t))
	}
}

// VertexStream is a buffer of interleaved elements.
type VertexStream struct {
	Buffer Buffer
	Format []VertexElement
}

// Stride returns the size of one vertex of the stream.
func (s VertexStream) Stride() int {
	n := 0
	for _, e := range s.Format {
		n += e.Size()
	}
	return n
}

// RenderLayout describes the geometry of a draw: its vertex, index
// and instance streams and the ranges to draw from them.
type RenderLayout struct {
	Topology Topology
	Streams  []VertexStream
	// Instances is the per-instance stream, or nil.
	Instances *VertexStream

	Indices     Buffer
	IndexFormat ElementFormat

	NumVertices   int
	StartVertex   int
	NumIndices    int
	StartIndex    int
	NumInstances  int
	StartInstance int
}

// UseIndices reports whether the layout draws through an index
// buffer.
func (l *RenderLayout) UseIndices() bool {
	return l.Indices != nil && l.NumIndices > 0
}

// InstanceCount returns the number of instances to draw.
func (l *RenderLayout) InstanceCount() int {
	return l.NumInstances
}

// InstanceSize returns the size of one element of the instance
// stream, or 0 if there is none.
func (l *RenderLayout) InstanceSize() int {
	if l.Instances == nil {
		return 0
	}
	return l.Instances.Stride()
}

// ElementCount returns the number of indices or vertices drawn per
// instance.
func (l *RenderLayout) ElementCount() int {
	if l.UseIndices() {
		return l.NumIndices
	}
	return l.NumVertices
}
