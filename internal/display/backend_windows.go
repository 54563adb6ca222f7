//go:build windows

package display

import (
	"syscall"
	"unsafe"

	"codeberg.org/telvik/displayctl/internal/errors"
)

const (
	enumCurrentSettings  = 0xFFFFFFFF
	dmPelsWidth          = 0x00080000
	dmPelsHeight         = 0x00100000
	dmDisplayFrequency   = 0x00400000
	dispChangeSuccessful = 0
)

var (
	user32                    = syscall.NewLazyDLL("user32.dll")
	procEnumDisplaySettings   = user32.NewProc("EnumDisplaySettingsW")
	procChangeDisplaySettings = user32.NewProc("ChangeDisplaySettingsW")
)

// devMode mirrors the DEVMODEW layout for display devices
type devMode struct {
	DeviceName       [32]uint16
	SpecVersion      uint16
	DriverVersion    uint16
	Size             uint16
	DriverExtra      uint16
	Fields           uint32
	PositionX        int32
	PositionY        int32
	Orientation      uint32
	FixedOutput      uint32
	Color            int16
	Duplex           int16
	YResolution      int16
	TTOption         int16
	Collate          int16
	FormName         [32]uint16
	LogPixels        uint16
	BitsPerPel       uint32
	PelsWidth        uint32
	PelsHeight       uint32
	DisplayFlags     uint32
	DisplayFrequency uint32
	ICMMethod        uint32
	ICMIntent        uint32
	MediaType        uint32
	DitherType       uint32
	Reserved1        uint32
	Reserved2        uint32
	PanningWidth     uint32
	PanningHeight    uint32
}

type win32Backend struct{}

// DefaultBackend returns the display backend for this platform
func DefaultBackend() Backend {
	return &win32Backend{}
}

func (*win32Backend) Name() string {
	return "user32"
}

func (*win32Backend) Available() error {
	errFactory := errors.New()

	if err := procEnumDisplaySettings.Find(); err != nil {
		return errFactory.Wrap(ErrBackendUnavailable, err)
	}

	return nil
}

func (*win32Backend) CurrentMode() (Mode, error) {
	errFactory := errors.New()

	var dm devMode
	dm.Size = uint16(unsafe.Sizeof(dm))

	// A NULL device name targets the primary display
	ret, _, _ := procEnumDisplaySettings.Call(0, uintptr(enumCurrentSettings), uintptr(unsafe.Pointer(&dm)))
	if ret == 0 {
		return Mode{}, errFactory.WithMessage(ErrBackendUnavailable, "EnumDisplaySettingsW failed")
	}

	return Mode{
		Width:       int(dm.PelsWidth),
		Height:      int(dm.PelsHeight),
		RefreshRate: int(dm.DisplayFrequency),
	}, nil
}

func (*win32Backend) ApplyMode(mode Mode) error {
	errFactory := errors.New()

	var dm devMode
	dm.Size = uint16(unsafe.Sizeof(dm))
	dm.PelsWidth = uint32(mode.Width)
	dm.PelsHeight = uint32(mode.Height)
	dm.DisplayFrequency = uint32(mode.RefreshRate)
	dm.Fields = dmPelsWidth | dmPelsHeight | dmDisplayFrequency

	ret, _, _ := procChangeDisplaySettings.Call(uintptr(unsafe.Pointer(&dm)), 0)
	if ret != dispChangeSuccessful {
		return errFactory.WithData(ErrApplyFailed, struct {
			Mode string
			Code int32
		}{mode.String(), int32(uint32(ret))})
	}

	return nil
}
