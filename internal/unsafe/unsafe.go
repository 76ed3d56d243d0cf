// SPDX-License-Identifier: Unlicense OR MIT

package unsafe

import (
	"unsafe"
)

// BytesView returns a byte slice view of a slice.
func BytesView[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	sz := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*sz)
}
