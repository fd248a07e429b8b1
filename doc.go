// Package mmapio provides cross-platform memory-mapped file I/O.
//
// # Overview
//
// A mapping exposes a contiguous byte range of one file as ordinary process
// memory, without copying data through kernel buffers. Offsets do not need
// to be page-aligned: the package rounds the mapping down to the OS
// granularity internally and hands back a slice that starts exactly at the
// requested byte.
//
// # Usage
//
//	src, err := mmapio.OpenSource("data.bin")
//	if err != nil { ... }
//	defer src.Close()
//
//	// Zero-copy access to the file contents.
//	data := src.Bytes()
//
//	// Map a sub-range at an arbitrary offset.
//	src, err = mmapio.OpenSourceAt("data.bin", 1000, 4096)
//
//	// Read-write mapping with an explicit flush.
//	sink, err := mmapio.OpenSink("data.bin")
//	copy(sink.Bytes(), "hello")
//	err = sink.Sync()
//
// # Access Modes
//
// Source is read-only and Sink is read-write; the split is the type-level
// access mode. Only Sink has Sync and WriteAt. There is no write-only mode:
// writable mappings require read access on every supported OS.
//
// # Ownership
//
// A mapping created from a path owns its file handle and closes it on
// Unmap. A mapping created from an *os.File does not: the caller keeps the
// handle open for the lifetime of the mapping and closes it afterwards.
// Source and Sink have exclusive ownership; Share wraps either in a
// reference-counted handle for multiple owners.
//
// # Platform Support
//
// The package provides a unified API across platforms:
//
//   - Unix (Linux, macOS, BSD): mmap(2), munmap(2), msync(2), madvise(2)
//   - Windows: CreateFileMapping/MapViewOfFile/FlushViewOfFile; offsets are
//     aligned to the allocation granularity (64 KiB), not the page size
//
// # Thread Safety
//
// Individual Source and Sink values are not safe for concurrent mutation.
// Independent read-only mappings of the same file may be read from any
// number of goroutines. The Shared reference count is atomic; everything
// else is the caller's responsibility.
package mmapio
