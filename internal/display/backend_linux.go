//go:build linux

package display

// DefaultBackend returns the display backend for this platform
func DefaultBackend() Backend {
	return newXrandrBackend()
}
