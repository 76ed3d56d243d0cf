// SPDX-License-Identifier: Unlicense OR MIT

package driver

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Features uint

const (
	FeatureHWInstancing Features = 1 << iota
	// FeatureInstanceID reports whether shaders can read the instance
	// index.
	FeatureInstanceID
	FeatureStreamOutput
	FeatureAlphaToCoverage
	FeaturePrimitiveRestart
	FeatureMultithreadRendering
	FeatureMultithreadResCreating
	FeatureMRTIndependentBitDepths
	FeatureStandardDerivatives
	FeatureLogicOp
	FeatureGeometryShader
	FeatureComputeShader
	FeatureHullShader
	FeatureDomainShader
	FeatureFramebufferSRGB
	// FeatureMapBuffer reports whether buffers can be mapped for
	// reading.
	FeatureMapBuffer
)

var featureNames = [...]string{
	"HWInstancing",
	"InstanceID",
	"StreamOutput",
	"AlphaToCoverage",
	"PrimitiveRestart",
	"MultithreadRendering",
	"MultithreadResCreating",
	"MRTIndependentBitDepths",
	"StandardDerivatives",
	"LogicOp",
	"GeometryShader",
	"ComputeShader",
	"HullShader",
	"DomainShader",
	"FramebufferSRGB",
	"MapBuffer",
}

func (f Features) Has(feats Features) bool {
	return f&feats == feats
}

// Names lists the names of the features set in f.
func (f Features) Names() []string {
	var names []string
	for i, n := range featureNames {
		if f&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	return names
}

// Quirks identify the driver vendor for workarounds.
type Quirks uint

const (
	QuirkNVIDIA Quirks = 1 << iota
	QuirkAMD
	QuirkIntel
)

func (q Quirks) Has(quirks Quirks) bool {
	return q&quirks == quirks
}

// FormatSet is a set of element formats.
type FormatSet map[ElementFormat]struct{}

func NewFormatSet(formats ...ElementFormat) FormatSet {
	s := make(FormatSet, len(formats))
	s.Add(formats...)
	return s
}

func (s FormatSet) Add(formats ...ElementFormat) {
	for _, f := range formats {
		s[f] = struct{}{}
	}
}

func (s FormatSet) Has(f ElementFormat) bool {
	_, ok := s[f]
	return ok
}

// Sorted returns the members of s in ascending order.
func (s FormatSet) Sorted() []ElementFormat {
	fs := maps.Keys(s)
	slices.Sort(fs)
	return fs
}

// Caps describes the limits and features of a device. It is filled
// once when the device is created and is read-only afterwards.
type Caps struct {
	MaxShaderModel int

	MaxTextureWidth       int
	MaxTextureHeight      int
	MaxTextureDepth       int
	MaxTextureCubeSize    int
	MaxTextureArrayLength int

	MaxVertexTextureUnits   int
	MaxPixelTextureUnits    int
	MaxGeometryTextureUnits int

	MaxSimultaneousRTs   int
	MaxSimultaneousUAVs  int
	MaxVertexStreams     int
	MaxTextureAnisotropy int
	MaxSamples           int

	Features Features
	Quirks   Quirks

	VertexFormatSet       FormatSet
	TextureFormatSet      FormatSet
	RenderTargetFormatSet FormatSet
}

func (c *Caps) VertexFormatSupported(f ElementFormat) bool {
	return c.VertexFormatSet.Has(f)
}

func (c *Caps) TextureFormatSupported(f ElementFormat) bool {
	return c.TextureFormatSet.Has(f)
}

// RenderTargetFormatSupported reports whether f can be rendered to
// with the given number of samples per pixel.
func (c *Caps) RenderTargetFormatSupported(f ElementFormat, samples int) bool {
	return c.RenderTargetFormatSet.Has(f) && samples <= c.MaxSamples
}

func (c *Caps) VertexFormats() []ElementFormat {
	return c.VertexFormatSet.Sorted()
}

func (c *Caps) TextureFormats() []ElementFormat {
	return c.TextureFormatSet.Sorted()
}

func (c *Caps) RenderTargetFormats() []ElementFormat {
	return c.RenderTargetFormatSet.Sorted()
}
