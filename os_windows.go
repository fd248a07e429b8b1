//go:build windows

package mmapio

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32       = windows.NewLazySystemDLL("kernel32.dll")
	procGetSystemInfo = modkernel32.NewProc("GetSystemInfo")
)

type systemInfo struct {
	oemID                     uint32
	pageSize                  uint32
	minimumApplicationAddress uintptr
	maximumApplicationAddress uintptr
	activeProcessorMask       uintptr
	numberOfProcessors        uint32
	processorType             uint32
	allocationGranularity     uint32
	processorLevel            uint16
	processorRevision         uint16
}

// osPageGranularity returns the allocation granularity, not the hardware
// page size: MapViewOfFile offsets must be aligned to the former.
func osPageGranularity() int64 {
	var si systemInfo
	_, _, _ = procGetSystemInfo.Call(uintptr(unsafe.Pointer(&si)))
	return int64(si.allocationGranularity)
}

// mapRegion maps length bytes of f starting at offset. A file-mapping object
// sized offset+length backs the view; its handle travels with the region so
// unmapRegion can close it.
func mapRegion(f *os.File, offset, length int64, writable bool) (region, error) {
	aligned := AlignDown(offset)
	pad := offset - aligned
	toMap := pad + length

	prot := uint32(windows.PAGE_READONLY)
	access := uint32(windows.FILE_MAP_READ)
	if writable {
		prot = windows.PAGE_READWRITE
		access = windows.FILE_MAP_WRITE
	}

	maxSize := uint64(offset + length)
	handle, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil,
		prot, uint32(maxSize>>32), uint32(maxSize), nil)
	if err != nil {
		return region{}, os.NewSyscallError("CreateFileMapping", err)
	}

	addr, err := windows.MapViewOfFile(handle, access,
		uint32(uint64(aligned)>>32), uint32(uint64(aligned)), uintptr(toMap))
	if err != nil {
		windows.CloseHandle(handle)
		return region{}, os.NewSyscallError("MapViewOfFile", err)
	}

	full := unsafe.Slice((*byte)(unsafe.Pointer(addr)), toMap)
	return region{
		full:   full,
		data:   full[pad : pad+length : pad+length],
		handle: uintptr(handle),
	}, nil
}

func unmapRegion(r region) error {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(r.full)))
	err := windows.UnmapViewOfFile(addr)
	if r.handle != 0 {
		if cerr := windows.CloseHandle(windows.Handle(r.handle)); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		return os.NewSyscallError("UnmapViewOfFile", err)
	}
	return nil
}

// flushRegion flushes the view to the system cache and then forces the file
// buffers to disk. FlushViewOfFile alone does not guarantee durability.
func flushRegion(r region, f *os.File) error {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(r.full)))
	if err := windows.FlushViewOfFile(addr, uintptr(len(r.full))); err != nil {
		return os.NewSyscallError("FlushViewOfFile", err)
	}
	if err := windows.FlushFileBuffers(windows.Handle(f.Fd())); err != nil {
		return os.NewSyscallError("FlushFileBuffers", err)
	}
	return nil
}

// Windows has no madvise equivalent; the cache manager applies its own
// readahead heuristics.
func osAdvise(full []byte, pattern AccessPattern) error {
	return nil
}
