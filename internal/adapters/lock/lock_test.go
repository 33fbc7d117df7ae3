//go:build unix

package lock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_SecondHolderIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.lock")

	first, err := Acquire(path)
	require.NoError(t, err)

	_, err = Acquire(path)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Release())

	again, err := Acquire(path)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}

func TestRelease_IsIdempotent(t *testing.T) {
	l, err := Acquire(filepath.Join(t.TempDir(), "x", "tracker.lock"))
	require.NoError(t, err)

	assert.NoError(t, l.Release())
	assert.NoError(t, l.Release())

	var nilLock *DeviceLock
	assert.NoError(t, nilLock.Release())
}
