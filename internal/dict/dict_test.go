package dict

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientVerdicts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cat":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`[{"word":"cat"}]`))
		case "/zzz":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	res, err := c.Check(context.Background(), "cat")
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res, err = c.Check(context.Background(), "zzz")
	require.NoError(t, err, "a confirmed non-word is not a failure")
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Reason)

	_, err = c.Check(context.Background(), "boom")
	assert.Error(t, err, "5xx means unavailable, not invalid")
}

func TestClientRetriesTransportFaultOnce(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	res, err := c.Check(context.Background(), "cat")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClientTimeoutIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond)
	_, err := c.Check(context.Background(), "cat")
	assert.Error(t, err)
}

func TestLocalValidator(t *testing.T) {
	l := NewLocal(func(w string) bool { return w == "cat" })

	res, err := l.Check(context.Background(), "cat")
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res, err = l.Check(context.Background(), "zzz")
	require.NoError(t, err)
	assert.False(t, res.Valid)
}
