//go:build !windows

package logger

import "syscall"

func ownsProcessGroup() bool {
	return syscall.Getpgrp() == syscall.Getpid()
}
