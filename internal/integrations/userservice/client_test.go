package userservice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, logger.NewWithWriter(io.Discard, "debug"))
}

func TestClient_Exists(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/1":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":1,"role":"trainer","is_active":true}`)
		case "/internal/users/2":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":2,"role":"client","is_active":false}`)
		case "/internal/users/3":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	ctx := context.Background()

	ok, err := client.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.Exists(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok, "inactive user")

	ok, err = client.Exists(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = client.Exists(ctx, 4)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":7,"role":"client","is_active":true}`)
	})

	user, err := client.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "client", user.Role)
}
