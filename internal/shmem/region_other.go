//go:build !linux

package shmem

import "fmt"

// ErrUnsupportedPlatform is returned by every platform hook on a non-Linux
// build. The wire protocol and in-memory data model are portable; only the
// POSIX shared-memory mapping itself is Linux-specific, the same split
// terminal draws between platform.go and its OS-specific files.
var ErrUnsupportedPlatform = fmt.Errorf("shmem: shared memory regions are only supported on linux")

func platformCreate(name string, size int) ([]byte, error) {
	return nil, ErrUnsupportedPlatform
}

func platformOpen(name string, size int, allowReadOnly bool) ([]byte, error) {
	return nil, ErrUnsupportedPlatform
}

func platformClose(data []byte) error {
	return ErrUnsupportedPlatform
}

func platformDestroy(name string, data []byte) error {
	return ErrUnsupportedPlatform
}
