package mmapio

import "os"

// Sink is a read-write file mapping. The zero value is an unmapped Sink
// ready for Map or MapFile.
//
// Writes through Bytes become visible to every other mapping of the same
// file region; Sync blocks until the OS has accepted them for the backing
// file. A Sink must not be copied after Map; share it through a pointer or
// wrap it with Share.
type Sink struct {
	mapping
}

// OpenSink maps the entire file at path read-write.
func OpenSink(path string, opts ...Option) (*Sink, error) {
	return OpenSinkAt(path, 0, MapEntireFile, opts...)
}

// OpenSinkAt maps length bytes of the file at path read-write, starting at
// offset. The offset does not need to be page-aligned. Passing
// MapEntireFile as the length maps from offset to the end of the file.
func OpenSinkAt(path string, offset, length int64, opts ...Option) (*Sink, error) {
	s := &Sink{}
	s.applyOptions(opts)
	if err := s.Map(path, offset, length); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSink maps length bytes of f read-write, starting at offset. The caller
// keeps ownership of f and must keep it open for the lifetime of the
// mapping; Unmap will not close it.
func NewSink(f *os.File, offset, length int64, opts ...Option) (*Sink, error) {
	s := &Sink{}
	s.applyOptions(opts)
	if err := s.MapFile(f, offset, length); err != nil {
		return nil, err
	}
	return s, nil
}

// Map opens path read-write and maps length bytes starting at offset,
// replacing any mapping the Sink already holds. The file handle is owned by
// the Sink and closed on Unmap. On failure the previous mapping, if any, is
// left fully intact.
func (s *Sink) Map(path string, offset, length int64) error {
	return s.mapPath(path, offset, length, true)
}

// MapFile is Map for an already open file. The file must be open for
// writing. The handle is not owned: the caller must close it, and only
// after unmapping.
func (s *Sink) MapFile(f *os.File, offset, length int64) error {
	return s.mapHandle(f, offset, length, true, false)
}

// Sync flushes modified pages to the backing file and blocks until the OS
// confirms the write at the cache level: msync(MS_SYNC) on Unix,
// FlushViewOfFile plus FlushFileBuffers on Windows. It returns ErrNotMapped
// when no mapping is established.
func (s *Sink) Sync() error {
	return s.sync()
}

// WriteAt implements io.WriterAt over the mapped range. Writes never grow
// the mapping; a write reaching past the end is truncated and reports
// ErrOutOfRange.
func (s *Sink) WriteAt(p []byte, off int64) (int, error) {
	if s.file == nil {
		return 0, ErrNotMapped
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= s.Len() {
		return 0, ErrOutOfRange
	}
	n := copy(s.reg.data[off:], p)
	if n < len(p) {
		return n, ErrOutOfRange
	}
	return n, nil
}

// Close flushes modified pages and then unmaps. The sync is best effort:
// unmapping proceeds even if it fails, and the first error is returned.
func (s *Sink) Close() error {
	var firstErr error
	if s.reg.full != nil {
		if err := s.sync(); err != nil {
			firstErr = err
		}
	}
	if err := s.Unmap(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Swap exchanges the mappings of two Sinks in O(1) with no system calls.
func (s *Sink) Swap(other *Sink) {
	s.mapping.swap(&other.mapping)
}

// Equal reports whether both Sinks expose the same address and length.
// This is identity comparison: distinct mappings of identical content are
// not equal.
func (s *Sink) Equal(other *Sink) bool {
	return s.mapping.equal(&other.mapping)
}
