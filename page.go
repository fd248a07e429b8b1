package mmapio

import "sync"

// pageGranularity caches the OS value for the life of the process.
// Concurrent first calls are safe and agree on the same value.
var pageGranularity = sync.OnceValue(osPageGranularity)

// PageGranularity returns the alignment granularity the OS requires for
// mapping offsets: the page size on Unix, the allocation granularity
// (typically 64 KiB, not the hardware page size) on Windows.
func PageGranularity() int64 {
	return pageGranularity()
}

// AlignDown rounds offset down to the nearest multiple of PageGranularity.
// The offset must be non-negative.
func AlignDown(offset int64) int64 {
	return offset - offset%PageGranularity()
}
