// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"log/slog"

	"rendercore.org/gpu/internal/opengl"
)

// SetLogger sets the logger used by the backends. Backends log
// nothing until a logger is set; a nil logger disables logging again.
func SetLogger(l *slog.Logger) {
	opengl.SetLogger(l)
}
