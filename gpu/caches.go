// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
)

// BufferCache keeps buffers alive across frames. Buffers that are
// neither fetched nor stored during a frame are released when the
// frame ends.
type BufferCache[K comparable] struct {
	res    map[K]Buffer
	newRes map[K]Buffer
}

func NewBufferCache[K comparable]() *BufferCache[K] {
	return &BufferCache[K]{
		res:    make(map[K]Buffer),
		newRes: make(map[K]Buffer),
	}
}

// Get returns the buffer stored under key and keeps it alive for
// the current frame.
func (r *BufferCache[K]) Get(key K) (Buffer, bool) {
	v, exists := r.res[key]
	if exists {
		r.newRes[key] = v
	}
	return v, exists
}

// Put stores buf under key. It panics if key was already stored or
// fetched in the current frame. A different buffer previously stored
// under key is released.
func (r *BufferCache[K]) Put(key K, buf Buffer) {
	if _, exists := r.newRes[key]; exists {
		panic(fmt.Errorf("key exists, %v", key))
	}
	if old, exists := r.res[key]; exists && old != buf {
		old.Release()
	}
	r.res[key] = buf
	r.newRes[key] = buf
}

// Frame releases the buffers unused since the previous call.
func (r *BufferCache[K]) Frame() {
	for k, v := range r.res {
		if _, exists := r.newRes[k]; !exists {
			delete(r.res, k)
			v.Release()
		}
	}
	for k, v := range r.newRes {
		delete(r.newRes, k)
		r.res[k] = v
	}
}

// Release releases every cached buffer.
func (r *BufferCache[K]) Release() {
	for _, v := range r.res {
		v.Release()
	}
	r.newRes = make(map[K]Buffer)
	r.res = make(map[K]Buffer)
}

// Len returns the number of cached buffers.
func (r *BufferCache[K]) Len() int {
	return len(r.res)
}
