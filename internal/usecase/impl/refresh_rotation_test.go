package impl

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"passport/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRefreshToken(t *testing.T, stores *testStores, token string) {
	t.Helper()

	require.NoError(t, stores.refresh.Save(context.Background(), &entity.RefreshTokenRecord{
		Token:     token,
		Subject:   "user-1",
		Scheme:    entity.SchemePassword,
		Type:      entity.TokenTypeJWT,
		ExpiresAt: time.Now().Add(time.Hour),
	}))
}

func TestRefreshRotation_SingleUse(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores(t, nil)
	rotation := NewRefreshRotation(stores.refresh, newDiscardLogger())
	seedRefreshToken(t, stores, "tokenX")

	mint := func(_ context.Context, record *entity.RefreshTokenRecord) (string, error) {
		assert.Equal(t, "user-1", record.Subject)

		return "AT1", nil
	}

	access, err := rotation.RefreshOf(ctx, "tokenX", mint)
	require.NoError(t, err)
	assert.Equal(t, "AT1", access)

	access, err = rotation.RefreshOf(ctx, "tokenX", mint)
	require.NoError(t, err)
	assert.Empty(t, access)
}

func TestRefreshRotation_UnknownAndEmpty(t *testing.T) {
	ctx := context.Background()
	rotation := NewRefreshRotation(newTestStores(t, nil).refresh, newDiscardLogger())

	called := false
	mint := func(context.Context, *entity.RefreshTokenRecord) (string, error) {
		called = true

		return "AT", nil
	}

	for _, token := range []string{"", "never-issued"} {
		access, err := rotation.RefreshOf(ctx, token, mint)
		require.NoError(t, err)
		assert.Empty(t, access)
	}
	assert.False(t, called)
}

func TestRefreshRotation_Expired(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores(t, nil)
	rotation := NewRefreshRotation(stores.refresh, newDiscardLogger())
	seedRefreshToken(t, stores, "tokenX")
	rotation.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	access, err := rotation.RefreshOf(ctx, "tokenX", func(context.Context, *entity.RefreshTokenRecord) (string, error) {
		return "AT", nil
	})
	require.NoError(t, err)
	assert.Empty(t, access)
}

func TestRefreshRotation_FailedMintKeepsToken(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores(t, nil)
	rotation := NewRefreshRotation(stores.refresh, newDiscardLogger())
	seedRefreshToken(t, stores, "tokenX")

	access, err := rotation.RefreshOf(ctx, "tokenX", func(context.Context, *entity.RefreshTokenRecord) (string, error) {
		return "", nil
	})
	require.NoError(t, err)
	assert.Empty(t, access)

	access, err = rotation.RefreshOf(ctx, "tokenX", func(context.Context, *entity.RefreshTokenRecord) (string, error) {
		return "", errors.New("signing key unavailable")
	})
	require.NoError(t, err)
	assert.Empty(t, access)

	access, err = rotation.RefreshOf(ctx, "tokenX", func(context.Context, *entity.RefreshTokenRecord) (string, error) {
		return "AT2", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "AT2", access)
}

func TestRefreshRotation_ConcurrentAtMostOnce(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores(t, nil)
	rotation := NewRefreshRotation(stores.refresh, newDiscardLogger())
	seedRefreshToken(t, stores, "tokenX")

	var (
		wg      sync.WaitGroup
		granted atomic.Int32
		start   = make(chan struct{})
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			access, err := rotation.RefreshOf(ctx, "tokenX", func(context.Context, *entity.RefreshTokenRecord) (string, error) {
				return "AT", nil
			})
			if err == nil && access != "" {
				granted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), granted.Load())
}
