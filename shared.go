package mmapio

import (
	"os"
	"sync/atomic"
)

// Mapper is the surface common to *Source and *Sink that Shared delegates
// to.
type Mapper interface {
	Map(path string, offset, length int64) error
	MapFile(f *os.File, offset, length int64) error
	Unmap() error
	Close() error
	IsOpen() bool
	IsMapped() bool
	Empty() bool
	Len() int64
	MappedLen() int64
	MappingOffset() int64
	Bytes() []byte
	ReadAt(p []byte, off int64) (int, error)
}

type sharedCell[M Mapper] struct {
	m    M
	refs atomic.Int64
}

// Shared is a reference-counted handle to one Source or Sink. Clones share
// the same underlying mapping; the mapping is closed exactly when the last
// clone is closed. The reference count itself is atomic, but concurrent
// mutation of the underlying mapping is the caller's responsibility.
type Shared[M Mapper] struct {
	cell *sharedCell[M]
}

// Share wraps m in a reference-counted handle and takes ownership of it:
// after the call the mapping must only be used through the wrapper and its
// clones.
func Share[M Mapper](m M) *Shared[M] {
	c := &sharedCell[M]{m: m}
	c.refs.Store(1)
	return &Shared[M]{cell: c}
}

// Clone returns a new handle to the same underlying mapping and increments
// the reference count. Cloning a released handle yields another released
// handle.
func (s *Shared[M]) Clone() *Shared[M] {
	if s == nil || s.cell == nil {
		return &Shared[M]{}
	}
	s.cell.refs.Add(1)
	return &Shared[M]{cell: s.cell}
}

// Close releases this handle's reference. The underlying mapping is closed
// when the count reaches zero. Closing the same handle again is a no-op.
func (s *Shared[M]) Close() error {
	if s == nil || s.cell == nil {
		return nil
	}
	c := s.cell
	s.cell = nil
	if c.refs.Add(-1) == 0 {
		return c.m.Close()
	}
	return nil
}

// Get returns the underlying mapping, or false after release. The mapping
// stays owned by the shared cell.
func (s *Shared[M]) Get() (M, bool) {
	if s == nil || s.cell == nil {
		var zero M
		return zero, false
	}
	return s.cell.m, true
}

// Map remaps the one underlying mapping IN PLACE. Every clone of this
// handle observes the new region and loses the old one; there is no
// copy-on-write detach. Callers who want an independent mapping must create
// a fresh Source or Sink instead.
func (s *Shared[M]) Map(path string, offset, length int64) error {
	if s == nil || s.cell == nil {
		return ErrReleased
	}
	return s.cell.m.Map(path, offset, length)
}

// MapFile is Map for an already open file, with the same in-place sharing
// behavior.
func (s *Shared[M]) MapFile(f *os.File, offset, length int64) error {
	if s == nil || s.cell == nil {
		return ErrReleased
	}
	return s.cell.m.MapFile(f, offset, length)
}

// Unmap unmaps the underlying mapping for every clone. A released handle is
// a no-op.
func (s *Shared[M]) Unmap() error {
	if s == nil || s.cell == nil {
		return nil
	}
	return s.cell.m.Unmap()
}

// IsOpen reports whether the underlying mapping is open. Released handles
// report false.
func (s *Shared[M]) IsOpen() bool {
	if s == nil || s.cell == nil {
		return false
	}
	return s.cell.m.IsOpen()
}

// IsMapped reports whether an OS-level region is mapped. Released handles
// report false.
func (s *Shared[M]) IsMapped() bool {
	if s == nil || s.cell == nil {
		return false
	}
	return s.cell.m.IsMapped()
}

// Empty reports whether the mapped length is zero. Released handles report
// true.
func (s *Shared[M]) Empty() bool {
	if s == nil || s.cell == nil {
		return true
	}
	return s.cell.m.Empty()
}

// Len returns the mapped length, or 0 after release.
func (s *Shared[M]) Len() int64 {
	if s == nil || s.cell == nil {
		return 0
	}
	return s.cell.m.Len()
}

// MappedLen returns the full OS-mapped length, or 0 after release.
func (s *Shared[M]) MappedLen() int64 {
	if s == nil || s.cell == nil {
		return 0
	}
	return s.cell.m.MappedLen()
}

// Bytes returns the mapped byte range, or nil after release.
func (s *Shared[M]) Bytes() []byte {
	if s == nil || s.cell == nil {
		return nil
	}
	return s.cell.m.Bytes()
}

// ReadAt implements io.ReaderAt. A released handle returns ErrReleased.
func (s *Shared[M]) ReadAt(p []byte, off int64) (int, error) {
	if s == nil || s.cell == nil {
		return 0, ErrReleased
	}
	return s.cell.m.ReadAt(p, off)
}

// Equal reports whether two handles reference the same underlying cell.
// Content and even mapped addresses are irrelevant.
func (s *Shared[M]) Equal(other *Shared[M]) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.cell == other.cell
}
