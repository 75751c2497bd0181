package request_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oshokin/admin-client/internal/config"
	"github.com/oshokin/admin-client/internal/request"
	mock_request "github.com/oshokin/admin-client/internal/request/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

// TestDispatcher_Close_NoGoroutineLeak tests that Close joins a pending forced-logout flow.
//
//nolint:paralleltest // Goroutine accounting needs the process to itself.
func TestDispatcher_Close_NoGoroutineLeak(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"code": request.CodeTokenExpired}) //nolint:errcheck,errchkjson // Test handler.
	}))
	defer backend.Close()

	ctrl := gomock.NewController(t)
	notifier := mock_request.NewMockNotifier(ctrl)
	session := mock_request.NewMockSessionHandler(ctrl)

	dispatcher, err := request.NewDispatcher(&config.Config{BaseAPI: backend.URL}, staticTokens("T"), notifier, session)
	require.NoError(t, err)

	confirmed := make(chan struct{})

	notifier.EXPECT().Message(gomock.Any(), gomock.Any()).Times(1)
	notifier.EXPECT().Confirm(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, request.ConfirmDialog) (bool, error) {
			<-confirmed

			return false, nil
		}).Times(1)

	_, err = dispatcher.Get(context.Background(), "/user/info")
	require.Error(t, err)

	close(confirmed)
	dispatcher.Close()

	http.DefaultTransport.(*http.Transport).CloseIdleConnections()
}
