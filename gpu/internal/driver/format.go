// SPDX-License-Identifier: Unlicense OR MIT

package driver

import "fmt"

// ElementFormat describes the layout of a vertex element, texel or
// index. Channel letters are listed from the most significant bits.
type ElementFormat uint8

const (
	FormatUnknown ElementFormat = iota

	FormatA8
	FormatARGB4
	FormatR8
	FormatSignedR8
	FormatGR8
	FormatSignedGR8
	FormatBGR8
	FormatSignedBGR8
	FormatARGB8
	FormatABGR8
	FormatSignedABGR8
	FormatA2BGR10
	FormatSignedA2BGR10

	FormatR8UI
	FormatR8I
	FormatGR8UI
	FormatGR8I
	FormatBGR8UI
	FormatBGR8I
	FormatABGR8UI
	FormatABGR8I

	FormatR16
	FormatSignedR16
	FormatGR16
	FormatSignedGR16
	FormatBGR16
	FormatSignedBGR16
	FormatABGR16
	FormatSignedABGR16

	FormatR16UI
	FormatR16I
	FormatGR16UI
	FormatGR16I
	FormatBGR16UI
	FormatBGR16I
	FormatABGR16UI
	FormatABGR16I

	FormatR32UI
	FormatR32I
	FormatGR32UI
	FormatGR32I
	FormatBGR32UI
	FormatBGR32I
	FormatABGR32UI
	FormatABGR32I

	FormatR16F
	FormatGR16F
	FormatBGR16F
	FormatABGR16F
	FormatB10G11R11F
	FormatR32F
	FormatGR32F
	FormatBGR32F
	FormatABGR32F

	FormatBC1
	FormatBC2
	FormatBC3
	FormatBC4
	FormatBC5
	FormatSignedBC4
	FormatSignedBC5
	FormatBC6
	FormatBC7
	FormatBC1SRGB
	FormatBC2SRGB
	FormatBC3SRGB
	FormatBC4SRGB
	FormatBC5SRGB

	FormatD16
	FormatD24S8
	FormatD32F

	FormatARGB8SRGB
	FormatABGR8SRGB

	formatCount
)

type formatKind uint8

const (
	kindUnorm formatKind = iota
	kindSnorm
	kindUint
	kindSint
	kindFloat
	kindCompressed
	kindDepth
)

type formatInfo struct {
	name       string
	components int
	// bytes is the size of one element; 0 for block compressed formats.
	bytes int
	kind  formatKind
	srgb  bool
}

var formats = [formatCount]formatInfo{
	FormatUnknown: {name: "Unknown"},

	FormatA8:            {"A8", 1, 1, kindUnorm, false},
	FormatARGB4:         {"ARGB4", 4, 2, kindUnorm, false},
	FormatR8:            {"R8", 1, 1, kindUnorm, false},
	FormatSignedR8:      {"SignedR8", 1, 1, kindSnorm, false},
	FormatGR8:           {"GR8", 2, 2, kindUnorm, false},
	FormatSignedGR8:     {"SignedGR8", 2, 2, kindSnorm, false},
	FormatBGR8:          {"BGR8", 3, 3, kindUnorm, false},
	FormatSignedBGR8:    {"SignedBGR8", 3, 3, kindSnorm, false},
	FormatARGB8:         {"ARGB8", 4, 4, kindUnorm, false},
	FormatABGR8:         {"ABGR8", 4, 4, kindUnorm, false},
	FormatSignedABGR8:   {"SignedABGR8", 4, 4, kindSnorm, false},
	FormatA2BGR10:       {"A2BGR10", 4, 4, kindUnorm, false},
	FormatSignedA2BGR10: {"SignedA2BGR10", 4, 4, kindSnorm, false},

	FormatR8UI:    {"R8UI", 1, 1, kindUint, false},
	FormatR8I:     {"R8I", 1, 1, kindSint, false},
	FormatGR8UI:   {"GR8UI", 2, 2, kindUint, false},
	FormatGR8I:    {"GR8I", 2, 2, kindSint, false},
	FormatBGR8UI:  {"BGR8UI", 3, 3, kindUint, false},
	FormatBGR8I:   {"BGR8I", 3, 3, kindSint, false},
	FormatABGR8UI: {"ABGR8UI", 4, 4, kindUint, false},
	FormatABGR8I:  {"ABGR8I", 4, 4, kindSint, false},

	FormatR16:          {"R16", 1, 2, kindUnorm, false},
	FormatSignedR16:    {"SignedR16", 1, 2, kindSnorm, false},
	FormatGR16:         {"GR16", 2, 4, kindUnorm, false},
	FormatSignedGR16:   {"SignedGR16", 2, 4, kindSnorm, false},
	FormatBGR16:        {"BGR16", 3, 6, kindUnorm, false},
	FormatSignedBGR16:  {"SignedBGR16", 3, 6, kindSnorm, false},
	FormatABGR16:       {"ABGR16", 4, 8, kindUnorm, false},
	FormatSignedABGR16: {"SignedABGR16", 4, 8, kindSnorm, false},

	FormatR16UI:    {"R16UI", 1, 2, kindUint, false},
	FormatR16I:     {"R16I", 1, 2, kindSint, false},
	FormatGR16UI:   {"GR16UI", 2, 4, kindUint, false},
	FormatGR16I:    {"GR16I", 2, 4, kindSint, false},
	FormatBGR16UI:  {"BGR16UI", 3, 6, kindUint, false},
	FormatBGR16I:   {"BGR16I", 3, 6, kindSint, false},
	FormatABGR16UI: {"ABGR16UI", 4, 8, kindUint, false},
	FormatABGR16I:  {"ABGR16I", 4, 8, kindSint, false},

	FormatR32UI:    {"R32UI", 1, 4, kindUint, false},
	FormatR32I:     {"R32I", 1, 4, kindSint, false},
	FormatGR32UI:   {"GR32UI", 2, 8, kindUint, false},
	FormatGR32I:    {"GR32I", 2, 8, kindSint, false},
	FormatBGR32UI:  {"BGR32UI", 3, 12, kindUint, false},
	FormatBGR32I:   {"BGR32I", 3, 12, kindSint, false},
	FormatABGR32UI: {"ABGR32UI", 4, 16, kindUint, false},
	FormatABGR32I:  {"ABGR32I", 4, 16, kindSint, false},

	FormatR16F:       {"R16F", 1, 2, kindFloat, false},
	FormatGR16F:      {"GR16F", 2, 4, kindFloat, false},
	FormatBGR16F:     {"BGR16F", 3, 6, kindFloat, false},
	FormatABGR16F:    {"ABGR16F", 4, 8, kindFloat, false},
	FormatB10G11R11F: {"B10G11R11F", 3, 4, kindFloat, false},
	FormatR32F:       {"R32F", 1, 4, kindFloat, false},
	FormatGR32F:      {"GR32F", 2, 8, kindFloat, false},
	FormatBGR32F:     {"BGR32F", 3, 12, kindFloat, false},
	FormatABGR32F:    {"ABGR32F", 4, 16, kindFloat, false},

	FormatBC1:       {"BC1", 4, 0, kindCompressed, false},
	FormatBC2:       {"BC2", 4, 0, kindCompressed, false},
	FormatBC3:       {"BC3", 4, 0, kindCompressed, false},
	FormatBC4:       {"BC4", 1, 0, kindCompressed, false},
	FormatBC5:       {"BC5", 2, 0, kindCompressed, false},
	FormatSignedBC4: {"SignedBC4", 1, 0, kindCompressed, false},
	FormatSignedBC5: {"SignedBC5", 2, 0, kindCompressed, false},
	FormatBC6:       {"BC6", 3, 0, kindCompressed, false},
	FormatBC7:       {"BC7", 4, 0, kindCompressed, false},
	FormatBC1SRGB:   {"BC1SRGB", 4, 0, kindCompressed, true},
	FormatBC2SRGB:   {"BC2SRGB", 4, 0, kindCompressed, true},
	FormatBC3SRGB:   {"BC3SRGB", 4, 0, kindCompressed, true},
	FormatBC4SRGB:   {"BC4SRGB", 1, 0, kindCompressed, true},
	FormatBC5SRGB:   {"BC5SRGB", 2, 0, kindCompressed, true},

	FormatD16:   {"D16", 1, 2, kindDepth, false},
	FormatD24S8: {"D24S8", 2, 4, kindDepth, false},
	FormatD32F:  {"D32F", 1, 4, kindDepth, false},

	FormatARGB8SRGB: {"ARGB8SRGB", 4, 4, kindUnorm, true},
	FormatABGR8SRGB: {"ABGR8SRGB", 4, 4, kindUnorm, true},
}

func (f ElementFormat) info() formatInfo {
	if f >= formatCount {
		return formats[FormatUnknown]
	}
	return formats[f]
}

func (f ElementFormat) String() string {
	if f >= formatCount {
		return fmt.Sprintf("ElementFormat(%d)", uint8(f))
	}
	return formats[f].name
}

// NumComponents returns the number of channels in f.
func (f ElementFormat) NumComponents() int {
	return f.info().components
}

// Size returns the size in bytes of one element of f, or 0 for
// unknown and block compressed formats.
func (f ElementFormat) Size() int {
	return f.info().bytes
}

// ComponentSize returns the size in bytes of each channel, or 0 if
// the channels are packed below byte granularity.
func (f ElementFormat) ComponentSize() int {
	inf := f.info()
	if inf.components == 0 || inf.bytes%inf.components != 0 {
		return 0
	}
	switch f {
	case FormatA2BGR10, FormatSignedA2BGR10, FormatB10G11R11F, FormatD24S8:
		return 0
	}
	return inf.bytes / inf.components
}

func (f ElementFormat) IsFloat() bool {
	return f.info().kind == kindFloat || f == FormatD32F
}

// IsNormalized reports whether integer channels are read as values
// in [0, 1] or [-1, 1].
func (f ElementFormat) IsNormalized() bool {
	k := f.info().kind
	return k == kindUnorm || k == kindSnorm
}

// IsSigned reports whether the channels carry a sign.
func (f ElementFormat) IsSigned() bool {
	switch f.info().kind {
	case kindSnorm, kindSint, kindFloat:
		return true
	}
	return f == FormatSignedBC4 || f == FormatSignedBC5
}

// IsInteger reports whether the channels are unnormalized integers.
func (f ElementFormat) IsInteger() bool {
	k := f.info().kind
	return k == kindUint || k == kindSint
}

func (f ElementFormat) IsCompressed() bool {
	return f.info().kind == kindCompressed
}

func (f ElementFormat) IsDepth() bool {
	return f.info().kind == kindDepth
}

func (f ElementFormat) IsSRGB() bool {
	return f.info().srgb
}
