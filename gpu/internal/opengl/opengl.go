// SPDX-License-Identifier: Unlicense OR MIT

// Package opengl implements a render backend over an OpenGL or
// OpenGL ES context. The backend caches the context state it changes
// and issues a driver call only when a value differs from the cached
// one.
//
// A Backend is not safe for concurrent use. All methods must be
// called from the goroutine that owns the context.
package opengl

import (
	"errors"
	"fmt"

	"rendercore.org/gpu/gl"
	"rendercore.org/gpu/internal/driver"
)

// Backend drives one GL context.
type Backend struct {
	funcs gl.Functions

	glstate glState
	cfg     Config

	glver [2]int
	gles  bool
	lvl   featureLevel
	caps  driver.Caps
	info  DriverInfo

	// so is the active stream output binding, or nil.
	so       *streamOutput
	curFB    driver.FrameBuffer
	counters Counters
}

// Config tunes a Backend.
type Config struct {
	// DisableInstancing forces instanced draws through the emulated
	// path even if the context supports instanced arrays.
	DisableInstancing bool
	// MaxEmulatedInstances limits the number of instances drawn by
	// the emulated path. Zero means no limit.
	MaxEmulatedInstances int
}

// ErrEmulatedInstanceLimit is returned by Submit when an emulated
// instanced draw exceeds Config.MaxEmulatedInstances.
var ErrEmulatedInstanceLimit = errors.New("opengl: too many instances for emulated instancing")

// NewBackend probes the context current on f and returns a backend
// for it.
func NewBackend(f gl.Functions, cfg Config) (*Backend, error) {
	if f == nil {
		return nil, errors.New("opengl: no GL functions")
	}
	if cfg.MaxEmulatedInstances < 0 {
		return nil, fmt.Errorf("opengl: negative emulated instance limit %d", cfg.MaxEmulatedInstances)
	}
	lvl, ver, gles := probeFeatureLevel(f)
	info := probeDriverInfo(f, lvl)
	b := &Backend{
		funcs:   f,
		glstate: newGLState(),
		cfg:     cfg,
		glver:   ver,
		gles:    gles,
		lvl:     lvl,
		info:    info,
		caps:    probeCaps(f, lvl, info.Vendor),
	}
	log := slogger()
	log.Info("opengl backend created",
		"vendor", info.Vendor,
		"renderer", info.Renderer,
		"version", info.Version,
		"gles", gles,
	)
	log.Debug("opengl capabilities",
		"level", fmt.Sprintf("%d.%d", lvl.major, lvl.minor),
		"shaderModel", b.caps.MaxShaderModel,
		"features", b.caps.Features.Names(),
		"maxSamples", b.caps.MaxSamples,
		"maxVertexStreams", b.caps.MaxVertexStreams,
		"extensions", len(info.Extensions),
	)
	b.initState()
	return b, nil
}

// initState puts the context in the state the backend expects.
func (b *Backend) initState() {
	feats := b.caps.Features
	switch {
	case feats.Has(driver.FeaturePrimitiveRestart) && b.gles:
		b.funcs.Enable(gl.PRIMITIVE_RESTART_FIXED_INDEX)
	case feats.Has(driver.FeaturePrimitiveRestart):
		b.funcs.Enable(gl.PRIMITIVE_RESTART)
	default:
		slogger().Warn("primitive restart not supported")
	}
	b.glstate.activeTexture(b.funcs, gl.TEXTURE0)
	b.glstate.setFramebufferSRGB(b.funcs, false, feats.Has(driver.FeatureFramebufferSRGB))
	if !b.hwInstancing() {
		slogger().Warn("hardware instancing unavailable, instanced draws are emulated")
	}
}

func (b *Backend) Caps() driver.Caps {
	return b.caps
}

// DriverInfo returns the identification strings of the context.
func (b *Backend) DriverInfo() DriverInfo {
	info := b.info
	info.Extensions = append([]string(nil), b.info.Extensions...)
	return info
}

// Version returns the OpenGL version of the context and whether it
// is OpenGL ES.
func (b *Backend) Version() ([2]int, bool) {
	return b.glver, b.gles
}

// restartIndexSettable reports whether the restart index is
// programmable. ES contexts use the fixed index of the index type.
func (b *Backend) restartIndexSettable() bool {
	return b.caps.Features.Has(driver.FeaturePrimitiveRestart) && !b.gles
}

func (b *Backend) hwInstancing() bool {
	return b.caps.Features.Has(driver.FeatureHWInstancing) && !b.cfg.DisableInstancing
}

// Invalidate forgets all cached state. Call it after the context
// state was changed behind the backend's back, or after the context
// was lost.
func (b *Backend) Invalidate() {
	b.glstate = newGLState()
}

// Release tears down the stream output binding and forgets all
// cached state. The context itself is owned by the caller.
func (b *Backend) Release() {
	b.so = nil
	b.curFB = nil
	b.Invalidate()
}

func (b *Backend) BindBuffer(target gl.Enum, buf gl.Buffer) {
	b.glstate.bindBuffer(b.funcs, target, buf)
}

// DeleteBuffer deletes buf and drops every binding that refers to
// it, including a stream output binding capturing into it.
func (b *Backend) DeleteBuffer(buf gl.Buffer) {
	b.glstate.deleteBuffer(b.funcs, buf)
	if b.so != nil && b.so.captures(buf) {
		slogger().Debug("stream output buffer deleted, unbinding", "buffer", buf.V)
		b.so = nil
	}
}

func (b *Backend) ActiveTexture(unit gl.Enum) {
	b.glstate.activeTexture(b.funcs, unit)
}

func (b *Backend) BindTexture(unit int, target gl.Enum, t gl.Texture) {
	b.glstate.bindTexture(b.funcs, unit, target, t)
}

func (b *Backend) DeleteTexture(t gl.Texture) {
	b.glstate.deleteTexture(b.funcs, t)
}

func (b *Backend) UseProgram(p gl.Program) {
	b.glstate.useProgram(b.funcs, p)
}

// DeleteProgram deletes p along with its cached uniform values.
func (b *Backend) DeleteProgram(p gl.Program) {
	b.glstate.deleteProgram(b.funcs, p)
}

// BindFramebuffer binds fbo. Set force to rebind a framebuffer that
// may have been rebound outside the backend.
func (b *Backend) BindFramebuffer(fbo gl.Framebuffer, force bool) {
	b.glstate.bindFramebuffer(b.funcs, fbo, force)
}

func (b *Backend) DeleteFramebuffer(fbo gl.Framebuffer) {
	b.glstate.deleteFramebuffer(b.funcs, fbo)
	if b.curFB != nil && b.curFB.Handle().Equal(fbo) {
		b.curFB = nil
	}
}

// BindFrameBuffer makes fb the render target and applies its
// viewport.
func (b *Backend) BindFrameBuffer(fb driver.FrameBuffer) {
	b.glstate.bindFramebuffer(b.funcs, fb.Handle(), false)
	vp := fb.Viewport()
	b.glstate.setViewport(b.funcs, vp.Left, vp.Top, vp.Width, vp.Height)
	b.curFB = fb
}

// CurFrameBuffer returns the render target last bound with
// BindFrameBuffer, or nil.
func (b *Backend) CurFrameBuffer() driver.FrameBuffer {
	return b.curFB
}

func (b *Backend) Viewport(x, y, width, height int) {
	b.glstate.setViewport(b.funcs, x, y, width, height)
}

func (b *Backend) ClearColor(r, g, bl, a float32) {
	b.glstate.setClearColor(b.funcs, r, g, bl, a)
}

func (b *Backend) ClearDepth(d float32) {
	b.glstate.setClearDepth(b.funcs, d)
}

func (b *Backend) ClearStencil(s int) {
	b.glstate.setClearStencil(b.funcs, s)
}

// EnableFramebufferSRGB toggles sRGB encoding of framebuffer writes.
// It does nothing if the context lacks sRGB framebuffers.
func (b *Backend) EnableFramebufferSRGB(enable bool) {
	b.glstate.setFramebufferSRGB(b.funcs, enable, b.caps.Features.Has(driver.FeatureFramebufferSRGB))
}

// The uniform setters write to the current program. Vector forms
// take count consecutive vectors for consecutive locations.

func (b *Backend) Uniform1i(loc gl.Uniform, v int32) {
	b.glstate.uniformi(b.funcs, loc, 1, []int32{v})
}

func (b *Backend) Uniform1f(loc gl.Uniform, v float32) {
	b.glstate.uniformf(b.funcs, loc, 1, []float32{v})
}

func (b *Backend) Uniform1iv(loc gl.Uniform, v []int32) { b.glstate.uniformi(b.funcs, loc, 1, v) }
func (b *Backend) Uniform2iv(loc gl.Uniform, v []int32) { b.glstate.uniformi(b.funcs, loc, 2, v) }
func (b *Backend) Uniform3iv(loc gl.Uniform, v []int32) { b.glstate.uniformi(b.funcs, loc, 3, v) }
func (b *Backend) Uniform4iv(loc gl.Uniform, v []int32) { b.glstate.uniformi(b.funcs, loc, 4, v) }

func (b *Backend) Uniform1fv(loc gl.Uniform, v []float32) { b.glstate.uniformf(b.funcs, loc, 1, v) }
func (b *Backend) Uniform2fv(loc gl.Uniform, v []float32) { b.glstate.uniformf(b.funcs, loc, 2, v) }
func (b *Backend) Uniform3fv(loc gl.Uniform, v []float32) { b.glstate.uniformf(b.funcs, loc, 3, v) }
func (b *Backend) Uniform4fv(loc gl.Uniform, v []float32) { b.glstate.uniformf(b.funcs, loc, 4, v) }

func (b *Backend) UniformMatrix4fv(loc gl.Uniform, transpose bool, v []float32) {
	b.glstate.uniformMatrix4f(b.funcs, loc, transpose, v)
}

func glErr(f gl.Functions) error {
	if st := f.GetError(); st != gl.NO_ERROR {
		return fmt.Errorf("glGetError: %#x", st)
	}
	return nil
}
