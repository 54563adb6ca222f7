//go:build windows

package notify

import (
	"syscall"
	"unsafe"

	"codeberg.org/telvik/displayctl/internal/errors"
)

const mbIconInformation = 0x00000040

var (
	user32         = syscall.NewLazyDLL("user32.dll")
	procMessageBox = user32.NewProc("MessageBoxW")
)

// osNotify blocks until the user dismisses the message box.
func osNotify(title, body string) error {
	errFactory := errors.New()

	titlePtr, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return errFactory.Wrap(errors.ErrNotifyFailed, err)
	}

	bodyPtr, err := syscall.UTF16PtrFromString(body)
	if err != nil {
		return errFactory.Wrap(errors.ErrNotifyFailed, err)
	}

	ret, _, callErr := procMessageBox.Call(0,
		uintptr(unsafe.Pointer(bodyPtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		mbIconInformation)
	if ret == 0 {
		return errFactory.Wrap(errors.ErrNotifyFailed, callErr)
	}

	return nil
}
