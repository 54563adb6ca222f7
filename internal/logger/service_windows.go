//go:build windows

package logger

func ownsProcessGroup() bool {
	return false
}
