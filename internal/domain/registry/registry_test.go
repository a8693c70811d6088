package registry

import (
	"sync"
	"testing"

	domainerrors "passport/internal/domain/errors"
	"passport/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_FirstRegistrationWins(t *testing.T) {
	reg := New[string, int]("number")

	assert.True(t, reg.Register("a", 1))
	assert.False(t, reg.Register("a", 2))

	got, err := reg.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestRegistry_LookupMissIsConfigurationError(t *testing.T) {
	reg := New[string, int]("number")

	_, err := reg.Lookup("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrConfigurationMissing))
	assert.Contains(t, err.Error(), "missing")
}

func TestRegistry_Require(t *testing.T) {
	reg := New[string, int]("number")
	reg.Register("a", 1)

	assert.NoError(t, reg.Require("a"))

	err := reg.Require("a", "b", "c")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrConfigurationMissing))
	assert.Contains(t, err.Error(), "b")
	assert.Contains(t, err.Error(), "c")
}

func TestRegistry_ConcurrentRegisterKeepsSingleWinner(t *testing.T) {
	reg := New[string, int]("number")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []int
	)
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if reg.Register("k", i) {
				mu.Lock()
				winners = append(winners, i)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, winners, 1)
	got, err := reg.Lookup("k")
	require.NoError(t, err)
	assert.Equal(t, winners[0], got)
	assert.Equal(t, []string{"k"}, reg.Keys())
}
