package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/oshokin/admin-client/internal/request"
	"github.com/oshokin/admin-client/internal/session"
	mock_session "github.com/oshokin/admin-client/internal/session/mocks"
	http_transport "github.com/oshokin/admin-client/internal/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	_ request.SessionHandler     = (*session.Store)(nil)
	_ http_transport.TokenSource = (*session.Store)(nil)
)

// TestStore_Token tests reading and replacing the token.
func TestStore_Token(t *testing.T) {
	t.Parallel()

	store := session.NewStore("initial", nil, nil)
	assert.Equal(t, "initial", store.Token())

	store.SetToken("next")
	assert.Equal(t, "next", store.Token())
}

// TestStore_ResetToken tests that the token is cleared in memory and in storage.
func TestStore_ResetToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		persistErr error
	}{
		{name: "persisted"},
		{name: "persist fails", persistErr: errors.New("read-only file system")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			persister := mock_session.NewMockPersister(ctrl)
			persister.EXPECT().PersistToken(gomock.Any(), "").Return(tt.persistErr).Times(1)

			store := session.NewStore("T", persister, nil)

			err := store.ResetToken(context.Background())
			if tt.persistErr != nil {
				require.ErrorIs(t, err, tt.persistErr)
			} else {
				require.NoError(t, err)
			}

			assert.Empty(t, store.Token())
		})
	}
}

// TestStore_Reload tests that the persisted token replaces the in-memory one.
func TestStore_Reload(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	loader := mock_session.NewMockLoader(ctrl)

	gomock.InOrder(
		loader.EXPECT().LoadToken(gomock.Any()).Return("from-disk", nil),
		loader.EXPECT().LoadToken(gomock.Any()).Return("", errors.New("broken")),
	)

	store := session.NewStore("stale", nil, loader)

	require.NoError(t, store.Reload(context.Background()))
	assert.Equal(t, "from-disk", store.Token())

	require.Error(t, store.Reload(context.Background()))
	assert.Equal(t, "from-disk", store.Token())
}

// TestStore_ConcurrentAccess tests that readers and writers can run concurrently.
func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := session.NewStore("", nil, nil)

	var wg sync.WaitGroup

	for i := range 10 {
		wg.Add(2)

		go func() {
			defer wg.Done()

			store.SetToken(string(rune('a' + i)))
		}()

		go func() {
			defer wg.Done()

			_ = store.Token()
		}()
	}

	wg.Wait()

	assert.Len(t, store.Token(), 1)
}
