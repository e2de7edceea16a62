//go:build linux

package shmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// shmDir is where Linux exposes POSIX shared-memory objects as ordinary
// files; shm_open(3) is itself implemented this way in glibc, so opening
// paths under here directly gives the same named-region semantics without
// needing a cgo binding.
const shmDir = "/dev/shm/"

func shmPath(name string) string {
	return shmDir + name
}

func platformCreate(name string, size int) ([]byte, error) {
	fd, err := unix.Open(shmPath(name), unix.O_CREAT|unix.O_RDWR, 0666)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", name, err)
	}
	defer unix.Close(fd)

	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		return nil, fmt.Errorf("ftruncate %q to %d: %w", name, size, err)
	}

	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %q: %w", name, err)
	}
	return data, nil
}

func platformOpen(name string, size int, allowReadOnly bool) ([]byte, error) {
	fd, rdwr, err := openExisting(name, allowReadOnly)
	if err != nil {
		return nil, err
	}
	defer unix.Close(fd)

	if size == 0 {
		var st unix.Stat_t
		if err := unix.Fstat(fd, &st); err != nil {
			return nil, fmt.Errorf("fstat %q: %w", name, err)
		}
		size = int(st.Size)
	}

	prot := unix.PROT_READ
	if rdwr {
		prot |= unix.PROT_WRITE
	}

	data, err := unix.Mmap(fd, 0, size, prot, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %q: %w", name, err)
	}
	return data, nil
}

// openExisting opens name read-write, falling back to read-only — when the
// caller permits it — if the kernel refuses read-write access (e.g. the
// region was created 0444 by an arbiter running as a different user). It
// reports which mode succeeded so the caller can request the matching mmap
// protection.
func openExisting(name string, allowReadOnly bool) (fd int, rdwr bool, err error) {
	fd, err = unix.Open(shmPath(name), unix.O_RDWR, 0)
	if err == nil {
		return fd, true, nil
	}
	if !allowReadOnly {
		return -1, false, fmt.Errorf("open %q: %w", name, err)
	}
	fd, err = unix.Open(shmPath(name), unix.O_RDONLY, 0)
	if err != nil {
		return -1, false, fmt.Errorf("open %q: %w", name, err)
	}
	return fd, false, nil
}

func platformClose(data []byte) error {
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}

func platformDestroy(name string, data []byte) error {
	if err := platformClose(data); err != nil {
		return err
	}
	if err := unix.Unlink(shmPath(name)); err != nil {
		return fmt.Errorf("unlink %q: %w", name, err)
	}
	return nil
}
