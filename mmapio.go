package mmapio

import (
	"io"
	"log/slog"
	"os"
	"unsafe"
)

// region describes one live OS mapping. full spans the whole mapping,
// starting at the page-aligned offset; data is the window the caller asked
// for. len(full)-len(data) is the alignment padding in front of data.
type region struct {
	full []byte
	data []byte
	// File-mapping object handle from CreateFileMapping. Used on Windows
	// only, zero elsewhere.
	handle uintptr
}

// mapping is the exclusive-ownership core shared by Source and Sink.
//
// The zero value is unmapped. A mapping holds at most one region at a time;
// file == nil means no mapping is established and all other fields are zero.
type mapping struct {
	reg      region
	file     *os.File
	ownsFile bool
	writable bool

	logger    *slog.Logger
	advice    AccessPattern
	hasAdvice bool
}

func (m *mapping) applyOptions(opts []Option) {
	var c config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	m.logger = c.logger
	m.advice = c.advice
	m.hasAdvice = c.hasAdvice
}

// mapPath opens path and delegates to mapHandle. The freshly opened file is
// owned by the mapping and closed again if the mapping step fails, leaving
// any prior mapping untouched.
func (m *mapping) mapPath(path string, offset, length int64, writable bool) error {
	if path == "" {
		return ErrEmptyPath
	}

	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return err
	}

	if err := m.mapHandle(f, offset, length, writable, true); err != nil {
		f.Close()
		return err
	}
	return nil
}

// mapHandle establishes a mapping over f. It validates everything and builds
// the new region before releasing any previous one, so a failed call never
// destroys a working mapping.
func (m *mapping) mapHandle(f *os.File, offset, length int64, writable, owned bool) error {
	if f == nil {
		return ErrInvalidHandle
	}
	if offset < 0 {
		return ErrInvalidOffset
	}
	if length < 0 {
		return ErrInvalidLength
	}

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	size := fi.Size()

	if offset > size || length > size-offset {
		return ErrOutOfRange
	}
	if length == MapEntireFile {
		length = size - offset
	}

	var r region
	if length > 0 {
		r, err = mapRegion(f, offset, length, writable)
		if err != nil {
			return err
		}
	}

	// The new region is live; only now is the previous one torn down.
	if err := m.release(); err != nil && m.logger != nil {
		m.logger.Warn("releasing previous mapping failed", "error", err)
	}

	m.reg = r
	m.file = f
	m.ownsFile = owned
	m.writable = writable

	if m.hasAdvice && m.reg.full != nil {
		if err := osAdvise(m.reg.full, m.advice); err != nil && m.logger != nil {
			m.logger.Warn("madvise failed", "error", err)
		}
	}
	if m.logger != nil {
		m.logger.Debug("mapped",
			"name", f.Name(),
			"offset", offset,
			"len", length,
			"mapped_len", len(m.reg.full),
			"writable", writable,
		)
	}
	return nil
}

// release unmaps the current region, closes the file if it is owned, and
// zeroes all state. It reports the first failure but always resets.
func (m *mapping) release() error {
	if m.file == nil {
		return nil
	}

	var firstErr error
	if m.reg.full != nil {
		if err := unmapRegion(m.reg); err != nil {
			firstErr = err
		}
	}
	if m.ownsFile {
		if err := m.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if m.logger != nil {
		m.logger.Debug("unmapped", "len", len(m.reg.data))
	}

	m.reg = region{}
	m.file = nil
	m.ownsFile = false
	m.writable = false
	return firstErr
}

// Unmap releases the mapping and, if the file was opened from a path, closes
// it. Calling Unmap on an unmapped object is a no-op.
func (m *mapping) Unmap() error {
	return m.release()
}

// sync flushes modified pages of the full region to the backing file.
func (m *mapping) sync() error {
	if m.file == nil {
		return ErrNotMapped
	}
	if m.reg.full == nil {
		return nil
	}
	if err := flushRegion(m.reg, m.file); err != nil {
		return err
	}
	if m.logger != nil {
		m.logger.Debug("synced", "mapped_len", len(m.reg.full))
	}
	return nil
}

// IsOpen reports whether the object holds a file handle, which is the case
// exactly when a mapping (possibly empty) is established.
func (m *mapping) IsOpen() bool {
	return m.file != nil
}

// IsMapped reports whether an OS-level memory region is mapped. It is false
// for a zero-length mapping, which holds a file handle but no region.
func (m *mapping) IsMapped() bool {
	return m.reg.full != nil
}

// Empty reports whether the mapped length is zero.
func (m *mapping) Empty() bool {
	return len(m.reg.data) == 0
}

// Len returns the number of bytes the caller requested.
func (m *mapping) Len() int64 {
	return int64(len(m.reg.data))
}

// MappedLen returns the number of bytes the OS actually mapped, which is
// Len plus the alignment padding in front of the requested offset.
func (m *mapping) MappedLen() int64 {
	return int64(len(m.reg.full))
}

// MappingOffset returns the distance between the start of the OS mapping
// and the first requested byte.
func (m *mapping) MappingOffset() int64 {
	return m.MappedLen() - m.Len()
}

// Bytes returns the mapped byte range, starting at the requested offset.
// It returns nil when nothing is mapped. The slice is valid only until the
// next Map, Unmap or Close call.
func (m *mapping) Bytes() []byte {
	return m.reg.data
}

// At returns the i-th byte of the mapped range. Like slice indexing it
// performs no bounds recovery: out-of-range indices panic.
func (m *mapping) At(i int64) byte {
	return m.reg.data[i]
}

// Region returns a zero-copy sub-view of the mapped range.
func (m *mapping) Region(offset, length int64) ([]byte, error) {
	if m.file == nil {
		return nil, ErrNotMapped
	}
	if offset < 0 || length < 0 || offset > m.Len() || length > m.Len()-offset {
		return nil, ErrOutOfRange
	}
	return m.reg.data[offset : offset+length : offset+length], nil
}

// File returns the file handle backing the mapping, or nil when unmapped.
// Ownership stays with the mapping if it opened the file itself.
func (m *mapping) File() *os.File {
	return m.file
}

// ReadAt implements io.ReaderAt over the mapped range.
func (m *mapping) ReadAt(p []byte, off int64) (int, error) {
	if m.file == nil {
		return 0, ErrNotMapped
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= m.Len() {
		return 0, io.EOF
	}
	n := copy(p, m.reg.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Advise hints the kernel about the expected access pattern. A no-op on
// Windows.
func (m *mapping) Advise(pattern AccessPattern) error {
	if m.file == nil {
		return ErrNotMapped
	}
	if m.reg.full == nil {
		return nil
	}
	return osAdvise(m.reg.full, pattern)
}

// swap exchanges all state with other without any system calls.
func (m *mapping) swap(other *mapping) {
	*m, *other = *other, *m
}

// equal reports identity, not content: two mappings are equal when they
// expose the same address and length.
func (m *mapping) equal(other *mapping) bool {
	return unsafe.SliceData(m.reg.data) == unsafe.SliceData(other.reg.data) &&
		len(m.reg.data) == len(other.reg.data)
}
