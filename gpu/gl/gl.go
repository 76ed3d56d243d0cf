// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ARRAY_BUFFER                      = 0x8892
	BYTE                              = 0x1400
	COLOR_BUFFER_BIT                  = 0x4000
	DEPTH_BUFFER_BIT                  = 0x100
	DYNAMIC_DRAW                      = 0x88E8
	ELEMENT_ARRAY_BUFFER              = 0x8893
	EXTENSIONS                        = 0x1f03
	FALSE                             = 0
	FLOAT                             = 0x1406
	FRAMEBUFFER                       = 0x8d40
	FRAMEBUFFER_SRGB                  = 0x8db9
	HALF_FLOAT                        = 0x140b
	INT                               = 0x1404
	INT_2_10_10_10_REV                = 0x8D9F
	LINES                             = 0x1
	LINES_ADJACENCY                   = 0xA
	LINE_STRIP                        = 0x3
	LINE_STRIP_ADJACENCY              = 0xB
	MAP_READ_BIT                      = 0x0001
	MAP_WRITE_BIT                     = 0x0002
	MAX_3D_TEXTURE_SIZE               = 0x8073
	MAX_CUBE_MAP_TEXTURE_SIZE         = 0x851C
	MAX_DRAW_BUFFERS                  = 0x8824
	MAX_GEOMETRY_TEXTURE_IMAGE_UNITS  = 0x8C29
	MAX_SAMPLES                       = 0x8D57
	MAX_TEXTURE_IMAGE_UNITS           = 0x8872
	MAX_TEXTURE_MAX_ANISOTROPY_EXT    = 0x84FF
	MAX_TEXTURE_SIZE                  = 0xd33
	MAX_VERTEX_ATTRIBS                = 0x8869
	MAX_VERTEX_TEXTURE_IMAGE_UNITS    = 0x8B4C
	NO_ERROR                          = 0x0
	NUM_EXTENSIONS                    = 0x821D
	POINTS                            = 0x0
	PRIMITIVE_RESTART                 = 0x8F9D
	PRIMITIVE_RESTART_FIXED_INDEX     = 0x8D69
	RENDERER                          = 0x1F01
	SEPARATE_ATTRIBS                  = 0x8C8D
	SHADING_LANGUAGE_VERSION          = 0x8B8C
	SHORT                             = 0x1402
	STATIC_DRAW                       = 0x88e4
	STENCIL_BUFFER_BIT                = 0x00000400
	TEXTURE_2D                        = 0xde1
	TEXTURE0                          = 0x84c0
	TRANSFORM_FEEDBACK_BUFFER         = 0x8C8E
	TRIANGLES                         = 0x4
	TRIANGLES_ADJACENCY               = 0xC
	TRIANGLE_STRIP                    = 0x5
	TRIANGLE_STRIP_ADJACENCY          = 0xD
	TRUE                              = 1
	UNIFORM_BUFFER                    = 0x8A11
	UNSIGNED_BYTE                     = 0x1401
	UNSIGNED_INT                      = 0x1405
	UNSIGNED_INT_10F_11F_11F_REV      = 0x8C3B
	UNSIGNED_INT_2_10_10_10_REV       = 0x8368
	UNSIGNED_SHORT                    = 0x1403
	VENDOR                            = 0x1F00
	VERSION                           = 0x1f02
)
