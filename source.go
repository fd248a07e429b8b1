package mmapio

import "os"

// Source is a read-only file mapping. The zero value is an unmapped Source
// ready for Map or MapFile.
//
// Writing through the slice returned by Bytes faults: the pages are mapped
// with read protection only. A Source must not be copied after Map; share it
// through a pointer or wrap it with Share.
type Source struct {
	mapping
}

// OpenSource maps the entire file at path read-only.
func OpenSource(path string, opts ...Option) (*Source, error) {
	return OpenSourceAt(path, 0, MapEntireFile, opts...)
}

// OpenSourceAt maps length bytes of the file at path read-only, starting at
// offset. The offset does not need to be page-aligned. Passing
// MapEntireFile as the length maps from offset to the end of the file.
func OpenSourceAt(path string, offset, length int64, opts ...Option) (*Source, error) {
	s := &Source{}
	s.applyOptions(opts)
	if err := s.Map(path, offset, length); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSource maps length bytes of f read-only, starting at offset. The caller
// keeps ownership of f and must keep it open for the lifetime of the
// mapping; Unmap will not close it.
func NewSource(f *os.File, offset, length int64, opts ...Option) (*Source, error) {
	s := &Source{}
	s.applyOptions(opts)
	if err := s.MapFile(f, offset, length); err != nil {
		return nil, err
	}
	return s, nil
}

// Map opens path read-only and maps length bytes starting at offset,
// replacing any mapping the Source already holds. The file handle is owned
// by the Source and closed on Unmap. On failure the previous mapping, if
// any, is left fully intact.
func (s *Source) Map(path string, offset, length int64) error {
	return s.mapPath(path, offset, length, false)
}

// MapFile is Map for an already open file. The handle is not owned: the
// caller must close it, and only after unmapping.
func (s *Source) MapFile(f *os.File, offset, length int64) error {
	return s.mapHandle(f, offset, length, false, false)
}

// Close unmaps the Source. Equivalent to Unmap.
func (s *Source) Close() error {
	return s.Unmap()
}

// Swap exchanges the mappings of two Sources in O(1) with no system calls.
func (s *Source) Swap(other *Source) {
	s.mapping.swap(&other.mapping)
}

// Equal reports whether both Sources expose the same address and length.
// This is identity comparison: distinct mappings of identical content are
// not equal.
func (s *Source) Equal(other *Source) bool {
	return s.mapping.equal(&other.mapping)
}
