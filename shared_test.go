package mmapio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShare_CloneAndRelease(t *testing.T) {
	path, content := writeTempFile(t, 1024)

	src, err := OpenSource(path)
	require.NoError(t, err)

	shared := Share(src)
	clone := shared.Clone()

	assert.Equal(t, shared.Len(), clone.Len())
	assert.Equal(t, content, shared.Bytes())
	assert.Equal(t, content, clone.Bytes())
	assert.True(t, shared.Equal(clone))

	// Dropping one owner leaves the other fully functional.
	require.NoError(t, shared.Close())
	assert.True(t, clone.IsOpen())
	assert.Equal(t, content, clone.Bytes())

	buf := make([]byte, 8)
	n, err := clone.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	// Dropping the last owner releases the mapping itself.
	require.NoError(t, clone.Close())
	assert.False(t, src.IsOpen())
}

func TestShare_ReleasedHandle(t *testing.T) {
	path, _ := writeTempFile(t, 256)

	src, err := OpenSource(path)
	require.NoError(t, err)

	shared := Share(src)
	require.NoError(t, shared.Close())

	// Queries degrade to zero values rather than failing.
	assert.False(t, shared.IsOpen())
	assert.False(t, shared.IsMapped())
	assert.True(t, shared.Empty())
	assert.Zero(t, shared.Len())
	assert.Zero(t, shared.MappedLen())
	assert.Nil(t, shared.Bytes())

	_, err = shared.ReadAt(make([]byte, 4), 0)
	assert.ErrorIs(t, err, ErrReleased)
	assert.ErrorIs(t, shared.Map(path, 0, MapEntireFile), ErrReleased)

	// Closing again and cloning a released handle are harmless.
	require.NoError(t, shared.Close())
	released := shared.Clone()
	assert.Nil(t, released.Bytes())

	_, ok := shared.Get()
	assert.False(t, ok)
}

func TestShare_DoubleCloseSingleRelease(t *testing.T) {
	path, _ := writeTempFile(t, 256)

	src, err := OpenSource(path)
	require.NoError(t, err)

	shared := Share(src)
	clone := shared.Clone()

	// A wrapper's second Close must not steal the clone's reference.
	require.NoError(t, shared.Close())
	require.NoError(t, shared.Close())
	assert.True(t, clone.IsOpen())

	require.NoError(t, clone.Close())
	assert.False(t, src.IsOpen())
}

func TestShare_MapRemapsInPlace(t *testing.T) {
	pathA, _ := writeTempFile(t, 256)
	pathB := filepath.Join(t.TempDir(), "b.bin")
	require.NoError(t, os.WriteFile(pathB, fillPattern(512), 0o644))

	src, err := OpenSource(pathA)
	require.NoError(t, err)

	shared := Share(src)
	defer shared.Close()
	clone := shared.Clone()
	defer clone.Close()

	// Remapping through one handle mutates the shared mapping: every clone
	// observes the new region.
	require.NoError(t, shared.Map(pathB, 0, MapEntireFile))
	assert.Equal(t, int64(512), clone.Len())
	assert.Equal(t, int64(512), shared.Len())
}

func TestShare_Sink(t *testing.T) {
	path, _ := writeTempFile(t, 512)

	sink, err := OpenSink(path)
	require.NoError(t, err)

	shared := Share(sink)
	clone := shared.Clone()

	// Mode-specific operations stay reachable through Get.
	underlying, ok := clone.Get()
	require.True(t, ok)
	copy(underlying.Bytes(), "via shared sink")
	require.NoError(t, underlying.Sync())

	require.NoError(t, shared.Close())
	require.NoError(t, clone.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("via shared sink"), got[:15])
}

func TestShare_Equal(t *testing.T) {
	path, _ := writeTempFile(t, 128)

	srcA, err := OpenSource(path)
	require.NoError(t, err)
	srcB, err := OpenSource(path)
	require.NoError(t, err)

	sharedA := Share(srcA)
	defer sharedA.Close()
	sharedB := Share(srcB)
	defer sharedB.Close()

	cloneA := sharedA.Clone()
	defer cloneA.Close()

	// Reference identity, not content: same file, different cells.
	assert.True(t, sharedA.Equal(cloneA))
	assert.False(t, sharedA.Equal(sharedB))
}
