package fetch

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialPoolRotate(t *testing.T) {
	pool := NewCredentialPool("k1", "", " k2 ", "k3")
	require.Equal(t, 3, pool.Len())

	cur, err := pool.Current()
	require.NoError(t, err)
	assert.Equal(t, Credential{Slot: 0, Key: "k1"}, cur)

	for _, exp := range []Credential{{1, "k2"}, {2, "k3"}, {0, "k1"}} {
		act, err := pool.Rotate()
		require.NoError(t, err)
		assert.Equal(t, exp, act)
	}
}

func TestCredentialPoolEmpty(t *testing.T) {
	pool := NewCredentialPool("", "  ")

	_, err := pool.Rotate()
	assert.True(t, errors.Is(err, ErrNoCredentials))
	_, err = pool.Current()
	assert.True(t, errors.Is(err, ErrNoCredentials))
	_, err = pool.Advance(0)
	assert.True(t, errors.Is(err, ErrNoCredentials))
}

func TestCredentialPoolAdvance(t *testing.T) {
	t.Run("stale slot", func(t *testing.T) {
		pool := NewCredentialPool("k1", "k2", "k3")
		_, err := pool.Advance(0)
		require.NoError(t, err)

		act, err := pool.Advance(0)
		require.NoError(t, err)
		assert.Equal(t, Credential{Slot: 1, Key: "k2"}, act)
	})

	t.Run("concurrent rotations off the same slot", func(t *testing.T) {
		pool := NewCredentialPool("k1", "k2", "k3")
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				pool.Advance(0)
			}()
		}
		wg.Wait()

		cur, err := pool.Current()
		require.NoError(t, err)
		assert.Equal(t, 1, cur.Slot)
	})
}
