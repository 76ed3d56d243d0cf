// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"rendercore.org/gpu/gl"
	"rendercore.org/gpu/internal/driver"
)

// DriverInfo holds the identification strings of the context. A
// string the driver does not report is empty.
type DriverInfo struct {
	Vendor                 string
	Renderer               string
	Version                string
	ShadingLanguageVersion string
	Extensions             []string
}

// featureLevel is the desktop OpenGL version a context is
// equivalent to, together with its extensions. For OpenGL ES
// contexts es holds the ES version.
type featureLevel struct {
	major, minor int
	gles         bool
	es           [2]int
	exts         map[string]bool
}

func (l featureLevel) atLeast(major, minor int) bool {
	return l.major > major || (l.major == major && l.minor >= minor)
}

func (l featureLevel) esAtLeast(major, minor int) bool {
	return l.gles && (l.es[0] > major || (l.es[0] == major && l.es[1] >= minor))
}

// has reports whether any of the named extensions is present. Names
// omit the GL_ prefix.
func (l featureLevel) has(names ...string) bool {
	for _, n := range names {
		if l.exts["GL_"+n] {
			return true
		}
	}
	return false
}

// desktopVersion maps an OpenGL ES version to the desktop version
// with an equivalent feature set.
func desktopVersion(v [2]int) [2]int {
	switch {
	case v[0] < 3:
		return v
	case v[0] == 3 && v[1] == 0:
		return [2]int{3, 3}
	case v[0] == 3 && v[1] == 1:
		return [2]int{4, 3}
	default:
		return [2]int{4, 5}
	}
}

func probeFeatureLevel(f gl.Functions) (featureLevel, [2]int, bool) {
	ver, gles, err := gl.ParseGLVersion(f.GetString(gl.VERSION))
	if err != nil {
		slogger().Debug("unrecognized GL version", "err", err)
		ver, gles = [2]int{}, false
	}
	lvl := featureLevel{exts: make(map[string]bool)}
	for _, e := range gl.Extensions(f, ver[0]) {
		lvl.exts[e] = true
	}
	eq := ver
	if gles {
		eq = desktopVersion(ver)
		lvl.gles, lvl.es = true, ver
	}
	lvl.major, lvl.minor = eq[0], eq[1]
	return lvl, ver, gles
}

func probeDriverInfo(f gl.Functions, lvl featureLevel) DriverInfo {
	info := DriverInfo{
		Vendor:                 f.GetString(gl.VENDOR),
		Renderer:               f.GetString(gl.RENDERER),
		Version:                f.GetString(gl.VERSION),
		ShadingLanguageVersion: f.GetString(gl.SHADING_LANGUAGE_VERSION),
		Extensions:             maps.Keys(lvl.exts),
	}
	slices.Sort(info.Extensions)
	return info
}

func vendorQuirks(vendor string) driver.Quirks {
	var q driver.Quirks
	if strings.Contains(vendor, "NVIDIA") {
		q |= driver.QuirkNVIDIA
	}
	if strings.Contains(vendor, "ATI") || strings.Contains(vendor, "AMD") {
		q |= driver.QuirkAMD
	}
	if strings.Contains(vendor, "Intel") {
		q |= driver.QuirkIntel
	}
	return q
}

// probeCaps fills the capabilities of the context. Missing features
// degrade to conservative defaults; probing never fails.
func probeCaps(f gl.Functions, lvl featureLevel, vendor string) driver.Caps {
	var c driver.Caps

	if lvl.atLeast(2, 0) || lvl.has("ARB_vertex_shader") {
		c.MaxVertexTextureUnits = f.GetInteger(gl.MAX_VERTEX_TEXTURE_IMAGE_UNITS)
	}

	switch {
	case lvl.atLeast(4, 0) || lvl.has("ARB_gpu_shader5"):
		c.MaxShaderModel = 4
	case lvl.atLeast(2, 0) || (lvl.has("ARB_vertex_shader") && lvl.has("ARB_fragment_shader")):
		switch {
		case c.MaxVertexTextureUnits != 0 && lvl.has("EXT_gpu_shader4"):
			c.MaxShaderModel = 4
		case c.MaxVertexTextureUnits != 0:
			c.MaxShaderModel = 3
		default:
			c.MaxShaderModel = 2
		}
	case lvl.has("ARB_vertex_program") && lvl.has("ARB_fragment_program"):
		c.MaxShaderModel = 1
	}

	c.MaxTextureWidth = f.GetInteger(gl.MAX_TEXTURE_SIZE)
	c.MaxTextureHeight = c.MaxTextureWidth
	if !lvl.gles || lvl.esAtLeast(3, 0) || lvl.has("OES_texture_3D") {
		c.MaxTextureDepth = f.GetInteger(gl.MAX_3D_TEXTURE_SIZE)
	}
	c.MaxTextureCubeSize = f.GetInteger(gl.MAX_CUBE_MAP_TEXTURE_SIZE)
	c.MaxTextureArrayLength = 1
	c.MaxPixelTextureUnits = f.GetInteger(gl.MAX_TEXTURE_IMAGE_UNITS)

	if lvl.has("ARB_geometry_shader4", "EXT_geometry_shader4") {
		c.MaxGeometryTextureUnits = f.GetInteger(gl.MAX_GEOMETRY_TEXTURE_IMAGE_UNITS)
	}
	c.MaxTextureAnisotropy = 1
	if lvl.has("EXT_texture_filter_anisotropic") {
		c.MaxTextureAnisotropy = f.GetInteger(gl.MAX_TEXTURE_MAX_ANISOTROPY_EXT)
	}
	c.MaxSimultaneousRTs = 1
	if lvl.atLeast(2, 0) || lvl.has("ARB_draw_buffers") {
		c.MaxSimultaneousRTs = f.GetInteger(gl.MAX_DRAW_BUFFERS)
	}
	c.MaxVertexStreams = f.GetInteger(gl.MAX_VERTEX_ATTRIBS)
	c.MaxSamples = 1
	if lvl.atLeast(3, 0) || lvl.has("EXT_framebuffer_multisample") {
		c.MaxSamples = f.GetInteger(gl.MAX_SAMPLES)
	}

	c.Features = driver.FeatureAlphaToCoverage
	if !lvl.gles {
		c.Features |= driver.FeatureLogicOp
	}
	if lvl.atLeast(3, 3) || lvl.has("ARB_instanced_arrays") {
		c.Features |= driver.FeatureHWInstancing
	}
	if lvl.atLeast(3, 1) || lvl.has("ARB_draw_instanced") {
		c.Features |= driver.FeatureInstanceID
	}
	if lvl.atLeast(3, 0) || lvl.has("EXT_transform_feedback") {
		c.Features |= driver.FeatureStreamOutput
	}
	// ES 3.0 restarts at the fixed maximum index of the index type.
	if lvl.gles {
		if lvl.esAtLeast(3, 0) {
			c.Features |= driver.FeaturePrimitiveRestart
		}
	} else if lvl.atLeast(3, 1) || lvl.has("NV_primitive_restart") {
		c.Features |= driver.FeaturePrimitiveRestart
	}
	if c.MaxShaderModel >= 3 {
		c.Features |= driver.FeatureStandardDerivatives
	}
	if lvl.has("ARB_geometry_shader4", "EXT_geometry_shader4", "NV_geometry_shader4") {
		c.Features |= driver.FeatureGeometryShader
	}
	if lvl.gles {
		if lvl.has("EXT_sRGB_write_control") {
			c.Features |= driver.FeatureFramebufferSRGB
		}
	} else if lvl.atLeast(3, 0) || lvl.has("ARB_framebuffer_sRGB") {
		c.Features |= driver.FeatureFramebufferSRGB
	}
	if lvl.gles {
		if lvl.esAtLeast(3, 0) || lvl.has("EXT_map_buffer_range") {
			c.Features |= driver.FeatureMapBuffer
		}
	} else if lvl.atLeast(3, 0) || lvl.has("ARB_map_buffer_range") {
		c.Features |= driver.FeatureMapBuffer
	}

	c.Quirks = vendorQuirks(vendor)
	c.VertexFormatSet = vertexFormats(lvl)
	c.TextureFormatSet = textureFormats(lvl, c.Quirks)
	c.RenderTargetFormatSet = renderTargetFormats(lvl)
	return c
}

func vertexFormats(lvl featureLevel) driver.FormatSet {
	s := driver.NewFormatSet(
		driver.FormatA8,
		driver.FormatR8, driver.FormatGR8, driver.FormatBGR8, driver.FormatARGB8, driver.FormatABGR8,
		driver.FormatR8UI, driver.FormatGR8UI, driver.FormatBGR8UI, driver.FormatABGR8UI,
		driver.FormatSignedR8, driver.FormatSignedGR8, driver.FormatSignedBGR8, driver.FormatSignedABGR8,
		driver.FormatR8I, driver.FormatGR8I, driver.FormatBGR8I, driver.FormatABGR8I,
		driver.FormatA2BGR10,
		driver.FormatR16, driver.FormatGR16, driver.FormatBGR16, driver.FormatABGR16,
		driver.FormatR16UI, driver.FormatGR16UI, driver.FormatBGR16UI, driver.FormatABGR16UI,
		driver.FormatSignedR16, driver.FormatSignedGR16, driver.FormatSignedBGR16, driver.FormatSignedABGR16,
		driver.FormatR16I, driver.FormatGR16I, driver.FormatBGR16I, driver.FormatABGR16I,
		driver.FormatR32UI, driver.FormatGR32UI, driver.FormatBGR32UI, driver.FormatABGR32UI,
		driver.FormatR32I, driver.FormatGR32I, driver.FormatBGR32I, driver.FormatABGR32I,
		driver.FormatR32F, driver.FormatGR32F, driver.FormatBGR32F, driver.FormatABGR32F,
	)
	if lvl.atLeast(3, 3) || lvl.has("ARB_vertex_type_2_10_10_10_rev") {
		s.Add(driver.FormatSignedA2BGR10)
	}
	if lvl.atLeast(3, 0) || lvl.has("ARB_texture_rg") {
		s.Add(driver.FormatR16F, driver.FormatGR16F, driver.FormatBGR16F, driver.FormatABGR16F)
	}
	if lvl.atLeast(3, 0) || lvl.has("EXT_packed_float") {
		s.Add(driver.FormatB10G11R11F)
	}
	return s
}

func textureFormats(lvl featureLevel, quirks driver.Quirks) driver.FormatSet {
	s := driver.NewFormatSet(
		driver.FormatA8, driver.FormatARGB4, driver.FormatR8, driver.FormatSignedR8,
		driver.FormatBGR8, driver.FormatARGB8, driver.FormatABGR8,
		driver.FormatA2BGR10, driver.FormatSignedA2BGR10,
		driver.FormatR16, driver.FormatSignedR16,
		driver.FormatBGR16, driver.FormatSignedBGR16, driver.FormatABGR16, driver.FormatSignedABGR16,
		driver.FormatR16F, driver.FormatGR16F, driver.FormatBGR16F, driver.FormatABGR16F,
		driver.FormatR32F, driver.FormatGR32F, driver.FormatBGR32F, driver.FormatABGR32F,
	)
	if lvl.atLeast(3, 0) || lvl.has("ARB_texture_rg") {
		s.Add(driver.FormatGR8, driver.FormatSignedGR8, driver.FormatGR16, driver.FormatSignedGR16)
	}
	if lvl.has("NV_texture_shader") {
		s.Add(driver.FormatSignedBGR8, driver.FormatSignedABGR8)
	}
	if lvl.atLeast(3, 0) || lvl.has("EXT_texture_integer") {
		s.Add(
			driver.FormatR8UI, driver.FormatR8I, driver.FormatGR8UI, driver.FormatGR8I,
			driver.FormatBGR8UI, driver.FormatBGR8I, driver.FormatABGR8UI, driver.FormatABGR8I,
			driver.FormatR16UI, driver.FormatR16I, driver.FormatGR16UI, driver.FormatGR16I,
			driver.FormatBGR16UI, driver.FormatBGR16I, driver.FormatABGR16UI, driver.FormatABGR16I,
			driver.FormatR32UI, driver.FormatR32I, driver.FormatGR32UI, driver.FormatGR32I,
			driver.FormatBGR32UI, driver.FormatBGR32I, driver.FormatABGR32UI, driver.FormatABGR32I,
		)
	}
	if lvl.atLeast(3, 0) || lvl.has("EXT_packed_float") {
		s.Add(driver.FormatB10G11R11F)
	}
	s3tc := lvl.has("EXT_texture_compression_s3tc")
	latc := lvl.has("EXT_texture_compression_latc")
	if s3tc {
		s.Add(driver.FormatBC1, driver.FormatBC2, driver.FormatBC3)
	}
	if latc {
		s.Add(driver.FormatBC4, driver.FormatBC5, driver.FormatSignedBC4, driver.FormatSignedBC5)
	}
	if lvl.has("ARB_texture_compression_bptc") {
		s.Add(driver.FormatBC6, driver.FormatBC7)
	}
	// Intel drivers mishandle depth textures.
	if !quirks.Has(driver.QuirkIntel) {
		s.Add(driver.FormatD16, driver.FormatD32F)
		if lvl.has("EXT_packed_depth_stencil") {
			s.Add(driver.FormatD24S8)
		}
	}
	if lvl.has("EXT_texture_sRGB") {
		s.Add(driver.FormatARGB8SRGB, driver.FormatABGR8SRGB)
		if s3tc {
			s.Add(driver.FormatBC1SRGB, driver.FormatBC2SRGB, driver.FormatBC3SRGB)
		}
		if latc {
			s.Add(driver.FormatBC4SRGB, driver.FormatBC5SRGB)
		}
	}
	return s
}

func renderTargetFormats(lvl featureLevel) driver.FormatSet {
	s := driver.NewFormatSet(
		driver.FormatARGB8, driver.FormatABGR8,
		driver.FormatA2BGR10, driver.FormatSignedA2BGR10,
		driver.FormatABGR16, driver.FormatSignedABGR16,
		driver.FormatD16, driver.FormatD32F,
	)
	if lvl.has("NV_texture_shader") {
		s.Add(driver.FormatSignedABGR8)
	}
	if lvl.atLeast(3, 0) || lvl.has("ARB_texture_rg") {
		s.Add(
			driver.FormatABGR8UI, driver.FormatABGR8I,
			driver.FormatR16, driver.FormatSignedR16, driver.FormatGR16, driver.FormatSignedGR16,
		)
	}
	if lvl.atLeast(3, 0) || lvl.has("EXT_texture_integer") {
		s.Add(
			driver.FormatR16UI, driver.FormatR16I, driver.FormatGR16UI, driver.FormatGR16I,
			driver.FormatABGR16UI, driver.FormatABGR16I,
			driver.FormatR32UI, driver.FormatR32I, driver.FormatGR32UI, driver.FormatGR32I,
			driver.FormatABGR32UI, driver.FormatABGR32I,
		)
	}
	if lvl.atLeast(3, 0) || (lvl.has("ARB_half_float_pixel") && lvl.has("ARB_texture_rg")) {
		s.Add(driver.FormatR16F, driver.FormatGR16F, driver.FormatR32F, driver.FormatGR32F)
	}
	if lvl.atLeast(3, 0) || lvl.has("ARB_half_float_pixel") {
		s.Add(driver.FormatABGR16F)
	}
	if lvl.atLeast(3, 0) || lvl.has("EXT_packed_float") {
		s.Add(driver.FormatB10G11R11F)
	}
	if lvl.atLeast(3, 0) || lvl.has("ARB_texture_float") {
		s.Add(driver.FormatABGR32F)
	}
	if lvl.has("EXT_packed_depth_stencil") {
		s.Add(driver.FormatD24S8)
	}
	if lvl.has("EXT_texture_sRGB") && lvl.has("EXT_framebuffer_sRGB") {
		s.Add(driver.FormatARGB8SRGB, driver.FormatABGR8SRGB)
	}
	return s
}
