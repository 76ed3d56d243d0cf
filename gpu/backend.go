// SPDX-License-Identifier: Unlicense OR MIT

// Package gpu renders geometry through a state caching backend. It
// declares the Device contract shared by backends and exposes the
// OpenGL implementation together with the vocabulary needed to drive
// it: formats, capabilities, layouts and techniques.
package gpu

import (
	"rendercore.org/gpu/gl"
	"rendercore.org/gpu/internal/driver"
	"rendercore.org/gpu/internal/opengl"
)

// Device is a render backend bound to one graphics context. Devices
// are not safe for concurrent use.
type Device interface {
	BeginFrame()
	EndFrame()
	BeginPass()
	EndPass()
	Caps() Caps

	NewBuffer(typ BufferBinding, data []byte) (Buffer, error)
	BindFrameBuffer(fb FrameBuffer)
	CurFrameBuffer() FrameBuffer
	Viewport(x, y, width, height int)
	Scissor(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	ClearDepth(d float32)
	ClearStencil(s int)
	Clear(color, depth, stencil bool)

	// Submit draws a layout with every pass of a technique.
	Submit(tech *Technique, rl *RenderLayout) error
	Dispatch(tech *Technique, x, y, z int)
	// BindSOBuffers routes the output of subsequent draws into the
	// streams of rl. A nil layout ends capture.
	BindSOBuffers(rl *RenderLayout)
	Flush()

	Counters() Counters
	ResetCounters()
	// Invalidate forgets all cached context state.
	Invalidate()
	Release()
}

type (
	// OpenGL is the Device for OpenGL and OpenGL ES contexts.
	OpenGL     = opengl.Backend
	Config     = opengl.Config
	Counters   = opengl.Counters
	DriverInfo = opengl.DriverInfo
	Program    = opengl.Program
	GLPass     = opengl.Pass

	Caps          = driver.Caps
	Features      = driver.Features
	Quirks        = driver.Quirks
	FormatSet     = driver.FormatSet
	ElementFormat = driver.ElementFormat
	VertexUsage   = driver.VertexUsage
	VertexElement = driver.VertexElement
	VertexStream  = driver.VertexStream
	Topology      = driver.Topology
	RenderLayout  = driver.RenderLayout
	Buffer        = driver.Buffer
	BufferBinding = driver.BufferBinding
	FrameBuffer   = driver.FrameBuffer
	Viewport      = driver.Viewport
	ShaderObject  = driver.ShaderObject
	Pass          = driver.Pass
	Technique     = driver.Technique
)

var (
	ErrEmulatedInstanceLimit = opengl.ErrEmulatedInstanceLimit
	ErrContentLost           = driver.ErrContentLost
)

// NewOpenGL returns a Device for the context current on f.
func NewOpenGL(f gl.Functions, cfg Config) (*OpenGL, error) {
	return opengl.NewBackend(f, cfg)
}

var _ Device = (*OpenGL)(nil)

const (
	BufferBindingIndices      = driver.BufferBindingIndices
	BufferBindingVertices     = driver.BufferBindingVertices
	BufferBindingStreamOutput = driver.BufferBindingStreamOutput
)

const (
	TopologyPointList        = driver.TopologyPointList
	TopologyLineList         = driver.TopologyLineList
	TopologyLineStrip        = driver.TopologyLineStrip
	TopologyTriangleList     = driver.TopologyTriangleList
	TopologyTriangleStrip    = driver.TopologyTriangleStrip
	TopologyLineListAdj      = driver.TopologyLineListAdj
	TopologyLineStripAdj     = driver.TopologyLineStripAdj
	TopologyTriangleListAdj  = driver.TopologyTriangleListAdj
	TopologyTriangleStripAdj = driver.TopologyTriangleStripAdj
	TopologyPatchList        = driver.TopologyPatchList
)

const (
	UsagePosition     = driver.UsagePosition
	UsageNormal       = driver.UsageNormal
	UsageDiffuse      = driver.UsageDiffuse
	UsageSpecular     = driver.UsageSpecular
	UsageBlendWeight  = driver.UsageBlendWeight
	UsageBlendIndex   = driver.UsageBlendIndex
	UsageTextureCoord = driver.UsageTextureCoord
	UsageTangent      = driver.UsageTangent
	UsageBinormal     = driver.UsageBinormal
)

const (
	FeatureHWInstancing            = driver.FeatureHWInstancing
	FeatureInstanceID              = driver.FeatureInstanceID
	FeatureStreamOutput            = driver.FeatureStreamOutput
	FeatureAlphaToCoverage         = driver.FeatureAlphaToCoverage
	FeaturePrimitiveRestart        = driver.FeaturePrimitiveRestart
	FeatureMultithreadRendering    = driver.FeatureMultithreadRendering
	FeatureMultithreadResCreating  = driver.FeatureMultithreadResCreating
	FeatureMRTIndependentBitDepths = driver.FeatureMRTIndependentBitDepths
	FeatureStandardDerivatives     = driver.FeatureStandardDerivatives
	FeatureLogicOp                 = driver.FeatureLogicOp
	FeatureGeometryShader          = driver.FeatureGeometryShader
	FeatureComputeShader           = driver.FeatureComputeShader
	FeatureHullShader              = driver.FeatureHullShader
	FeatureDomainShader            = driver.FeatureDomainShader
	FeatureFramebufferSRGB         = driver.FeatureFramebufferSRGB
	FeatureMapBuffer               = driver.FeatureMapBuffer
)

const (
	QuirkNVIDIA = driver.QuirkNVIDIA
	QuirkAMD    = driver.QuirkAMD
	QuirkIntel  = driver.QuirkIntel
)

const (
	FormatUnknown = driver.FormatUnknown

	FormatA8            = driver.FormatA8
	FormatARGB4         = driver.FormatARGB4
	FormatR8            = driver.FormatR8
	FormatSignedR8      = driver.FormatSignedR8
	FormatGR8           = driver.FormatGR8
	FormatSignedGR8     = driver.FormatSignedGR8
	FormatBGR8          = driver.FormatBGR8
	FormatSignedBGR8    = driver.FormatSignedBGR8
	FormatARGB8         = driver.FormatARGB8
	FormatABGR8         = driver.FormatABGR8
	FormatSignedABGR8   = driver.FormatSignedABGR8
	FormatA2BGR10       = driver.FormatA2BGR10
	FormatSignedA2BGR10 = driver.FormatSignedA2BGR10

	FormatR8UI    = driver.FormatR8UI
	FormatR8I     = driver.FormatR8I
	FormatGR8UI   = driver.FormatGR8UI
	FormatGR8I    = driver.FormatGR8I
	FormatBGR8UI  = driver.FormatBGR8UI
	FormatBGR8I   = driver.FormatBGR8I
	FormatABGR8UI = driver.FormatABGR8UI
	FormatABGR8I  = driver.FormatABGR8I

	FormatR16          = driver.FormatR16
	FormatSignedR16    = driver.FormatSignedR16
	FormatGR16         = driver.FormatGR16
	FormatSignedGR16   = driver.FormatSignedGR16
	FormatBGR16        = driver.FormatBGR16
	FormatSignedBGR16  = driver.FormatSignedBGR16
	FormatABGR16       = driver.FormatABGR16
	FormatSignedABGR16 = driver.FormatSignedABGR16

	FormatR16UI    = driver.FormatR16UI
	FormatR16I     = driver.FormatR16I
	FormatGR16UI   = driver.FormatGR16UI
	FormatGR16I    = driver.FormatGR16I
	FormatBGR16UI  = driver.FormatBGR16UI
	FormatBGR16I   = driver.FormatBGR16I
	FormatABGR16UI = driver.FormatABGR16UI
	FormatABGR16I  = driver.FormatABGR16I

	FormatR32UI    = driver.FormatR32UI
	FormatR32I     = driver.FormatR32I
	FormatGR32UI   = driver.FormatGR32UI
	FormatGR32I    = driver.FormatGR32I
	FormatBGR32UI  = driver.FormatBGR32UI
	FormatBGR32I   = driver.FormatBGR32I
	FormatABGR32UI = driver.FormatABGR32UI
	FormatABGR32I  = driver.FormatABGR32I

	FormatR16F       = driver.FormatR16F
	FormatGR16F      = driver.FormatGR16F
	FormatBGR16F     = driver.FormatBGR16F
	FormatABGR16F    = driver.FormatABGR16F
	FormatB10G11R11F = driver.FormatB10G11R11F
	FormatR32F       = driver.FormatR32F
	FormatGR32F      = driver.FormatGR32F
	FormatBGR32F     = driver.FormatBGR32F
	FormatABGR32F    = driver.FormatABGR32F

	FormatBC1       = driver.FormatBC1
	FormatBC2       = driver.FormatBC2
	FormatBC3       = driver.FormatBC3
	FormatBC4       = driver.FormatBC4
	FormatBC5       = driver.FormatBC5
	FormatSignedBC4 = driver.FormatSignedBC4
	FormatSignedBC5 = driver.FormatSignedBC5
	FormatBC6       = driver.FormatBC6
	FormatBC7       = driver.FormatBC7
	FormatBC1SRGB   = driver.FormatBC1SRGB
	FormatBC2SRGB   = driver.FormatBC2SRGB
	FormatBC3SRGB   = driver.FormatBC3SRGB
	FormatBC4SRGB   = driver.FormatBC4SRGB
	FormatBC5SRGB   = driver.FormatBC5SRGB

	FormatD16   = driver.FormatD16
	FormatD24S8 = driver.FormatD24S8
	FormatD32F  = driver.FormatD32F

	FormatARGB8SRGB = driver.FormatARGB8SRGB
	FormatABGR8SRGB = driver.FormatABGR8SRGB
)
