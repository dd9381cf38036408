//go:build !windows

package overlay

// applyAlwaysOnTop is only implemented on Windows; other window managers
// ignore the request.
func (overlay *Window) applyAlwaysOnTop(bool) {}
