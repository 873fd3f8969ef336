package release

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent_NoPointer(t *testing.T) {
	g := NewRegistry(t.TempDir())
	_, ok := g.Current()
	assert.False(t, ok)
}

func TestCurrent_DanglingPointerIsNotCurrent(t *testing.T) {
	dir := t.TempDir()
	g := NewRegistry(dir)

	rel := makeRelease(t, dir, 1)
	_, err := g.Activate(rel)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(rel.Path))

	_, ok := g.Current()
	assert.False(t, ok)

	_, ok = g.CurrentVersion()
	assert.False(t, ok)
}

func TestActivate_FirstActivationHasNoPrevious(t *testing.T) {
	dir := t.TempDir()
	g := NewRegistry(dir)

	rel := makeRelease(t, dir, 1)
	previous, err := g.Activate(rel)
	require.NoError(t, err)
	assert.Nil(t, previous)

	current, ok := g.Current()
	require.True(t, ok)
	assert.Equal(t, 1, current.Version)
}

func TestActivate_ReturnsPrevious(t *testing.T) {
	dir := t.TempDir()
	g := NewRegistry(dir)

	v1 := makeRelease(t, dir, 1)
	v2 := makeRelease(t, dir, 2)

	_, err := g.Activate(v1)
	require.NoError(t, err)

	previous, err := g.Activate(v2)
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, 1, previous.Version)

	version, ok := g.CurrentVersion()
	require.True(t, ok)
	assert.Equal(t, 2, version)
}

func TestActivate_AlreadyCurrentReturnsItself(t *testing.T) {
	dir := t.TempDir()
	g := NewRegistry(dir)

	rel := makeRelease(t, dir, 3)
	_, err := g.Activate(rel)
	require.NoError(t, err)

	previous, err := g.Activate(rel)
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, 3, previous.Version)

	version, ok := g.CurrentVersion()
	require.True(t, ok)
	assert.Equal(t, 3, version)
}

func TestRevert_RepointsBack(t *testing.T) {
	dir := t.TempDir()
	g := NewRegistry(dir)

	v1 := makeRelease(t, dir, 1)
	v2 := makeRelease(t, dir, 2)

	_, err := g.Activate(v1)
	require.NoError(t, err)
	_, err = g.Activate(v2)
	require.NoError(t, err)

	require.NoError(t, g.Revert(v1))

	version, ok := g.CurrentVersion()
	require.True(t, ok)
	assert.Equal(t, 1, version)
}

// A reader of the current pointer must never observe a missing link while
// activations are in flight.
func TestActivate_AtomicUnderConcurrentReads(t *testing.T) {
	dir := t.TempDir()
	g := NewRegistry(dir)

	v1 := makeRelease(t, dir, 1)
	v2 := makeRelease(t, dir, 2)

	_, err := g.Activate(v1)
	require.NoError(t, err)

	link := filepath.Join(dir, "current")
	stop := make(chan struct{})
	var wg sync.WaitGroup
	var readerErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if _, err := os.Readlink(link); err != nil {
				readerErr = err
				return
			}
		}
	}()

	for i := 0; i < 500; i++ {
		target := v1
		if i%2 == 0 {
			target = v2
		}
		_, err := g.Activate(target)
		require.NoError(t, err)
	}

	close(stop)
	wg.Wait()
	assert.NoError(t, readerErr, "reader observed a missing current pointer during activation")
}
