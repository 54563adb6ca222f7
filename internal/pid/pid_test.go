package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/telvik/displayctl/internal/errors"
)

func lockPath(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "displayctl.pid")
}

func TestAcquireWritesOwnPID(t *testing.T) {
	path := lockPath(t)

	require.NoError(t, Acquire(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))
}

func TestAcquireDetectsLiveHolder(t *testing.T) {
	path := lockPath(t)

	require.NoError(t, Acquire(path))

	err := Acquire(path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAlreadyRunning))
}

func TestAcquireReclaimsStalePID(t *testing.T) {
	path := lockPath(t)

	// PIDs on Linux top out well below this value.
	require.NoError(t, os.WriteFile(path, []byte("999999999"), 0o600))

	require.NoError(t, Acquire(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))
}

func TestAcquireReclaimsMalformedFile(t *testing.T) {
	path := lockPath(t)

	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0o600))

	require.NoError(t, Acquire(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))
}

func TestReleaseRemovesOwnLock(t *testing.T) {
	path := lockPath(t)

	require.NoError(t, Acquire(path))
	require.NoError(t, Release(path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	path := lockPath(t)

	require.NoError(t, os.WriteFile(path, []byte("4242"), 0o600))

	require.NoError(t, Release(path))

	_, err := os.Stat(path)
	assert.NoError(t, err, "a lockfile held by another process must survive release")
}

func TestReleaseWithoutLock(t *testing.T) {
	path := lockPath(t)

	require.NoError(t, Release(path))
	require.NoError(t, Release(path))
}
