//go:build windows

package overlay

import (
	"syscall"

	"fyne.io/fyne/v2/driver"
)

const (
	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoActivate = 0x0010
)

var (
	user32DLL        = syscall.NewLazyDLL("user32.dll")
	procSetWindowPos = user32DLL.NewProc("SetWindowPos")

	hwndTopMost   = ^uintptr(0)     // HWND_TOPMOST (-1)
	hwndNoTopMost = ^uintptr(0) - 1 // HWND_NOTOPMOST (-2)
)

func (overlay *Window) applyAlwaysOnTop(enabled bool) {
	nativeWindow, ok := overlay.window.(driver.NativeWindow)
	if !ok {
		return
	}

	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		default:
			return
		}
		if hwnd == 0 {
			return
		}

		insertAfter := hwndNoTopMost
		if enabled {
			insertAfter = hwndTopMost
		}
		procSetWindowPos.Call(hwnd, insertAfter, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
	})
}
