//go:build unix

package mmapio

import (
	"os"

	"golang.org/x/sys/unix"
)

func osPageGranularity() int64 {
	return int64(os.Getpagesize())
}

// mapRegion maps length bytes of f starting at offset. The offset is rounded
// down to the page granularity for the kernel; the returned region exposes
// both the full mapping and the window the caller asked for.
func mapRegion(f *os.File, offset, length int64, writable bool) (region, error) {
	aligned := AlignDown(offset)
	pad := offset - aligned
	toMap := pad + length

	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}

	full, err := unix.Mmap(int(f.Fd()), aligned, int(toMap), prot, unix.MAP_SHARED)
	if err != nil {
		return region{}, os.NewSyscallError("mmap", err)
	}

	return region{
		full: full,
		data: full[pad : pad+length : pad+length],
	}, nil
}

func unmapRegion(r region) error {
	if err := unix.Munmap(r.full); err != nil {
		return os.NewSyscallError("munmap", err)
	}
	return nil
}

// flushRegion blocks until the kernel has written the dirty pages back to
// the file.
func flushRegion(r region, f *os.File) error {
	if err := unix.Msync(r.full, unix.MS_SYNC); err != nil {
		return os.NewSyscallError("msync", err)
	}
	return nil
}

func osAdvise(full []byte, pattern AccessPattern) error {
	var advice int
	switch pattern {
	case AccessSequential:
		advice = unix.MADV_SEQUENTIAL
	case AccessRandom:
		advice = unix.MADV_RANDOM
	case AccessWillNeed:
		advice = unix.MADV_WILLNEED
	case AccessDontNeed:
		advice = unix.MADV_DONTNEED
	default:
		advice = unix.MADV_NORMAL
	}
	if err := unix.Madvise(full, advice); err != nil {
		return os.NewSyscallError("madvise", err)
	}
	return nil
}
