//go:build windows

package input

import (
	"syscall"
	"time"
	"unsafe"

	"codeberg.org/telvik/displayctl/internal/errors"
)

var (
	user32               = syscall.NewLazyDLL("user32.dll")
	kernel32             = syscall.NewLazyDLL("kernel32.dll")
	procGetLastInputInfo = user32.NewProc("GetLastInputInfo")
	procGetTickCount     = kernel32.NewProc("GetTickCount")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

// sampleIdleTime reads milliseconds since the last input event by
// comparing GetLastInputInfo against the current tick count. Both
// counters wrap at 49.7 days; unsigned subtraction keeps the
// difference correct across the wrap.
func sampleIdleTime() (time.Duration, error) {
	errFactory := errors.New()

	var info lastInputInfo
	info.cbSize = uint32(unsafe.Sizeof(info))

	ret, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return 0, errFactory.Wrap(ErrProbeUnavailable, err)
	}

	ticks, _, _ := procGetTickCount.Call()

	return time.Duration(uint32(ticks)-info.dwTime) * time.Millisecond, nil
}
