// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"fmt"
	"strings"
)

// ParseGLVersion extracts the major and minor version from a
// GL_VERSION string, and whether the context is OpenGL ES.
func ParseGLVersion(glVer string) (version [2]int, gles bool, err error) {
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &version[0], &version[1]); err == nil {
		return version, true, nil
	} else if _, err := fmt.Sscanf(glVer, "WebGL %d.%d", &version[0], &version[1]); err == nil {
		// WebGL major version v corresponds to OpenGL ES version v + 1
		version[0]++
		return version, true, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &version[0], &version[1]); err == nil {
		return version, false, nil
	}
	return version, false, fmt.Errorf("failed to parse OpenGL version (%s)", glVer)
}

// Extensions lists the extensions exposed by the current context.
// Core contexts (3.0 and up) enumerate them one by one; older
// contexts report a single space separated string.
func Extensions(f Functions, major int) []string {
	var exts []string
	if major >= 3 {
		n := f.GetInteger(NUM_EXTENSIONS)
		for i := 0; i < n; i++ {
			if e := f.GetStringi(EXTENSIONS, i); e != "" {
				exts = append(exts, e)
			}
		}
		if len(exts) > 0 {
			return exts
		}
	}
	return strings.Fields(f.GetString(EXTENSIONS))
}
