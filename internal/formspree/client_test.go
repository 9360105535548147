package formspree

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/primowater/deliveryform/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.FormEndpointConfig{URL: srv.URL, Timeout: 2 * time.Second}, zap.NewNop()), srv
}

func TestSubmitSendsFormEncodedFields(t *testing.T) {
	var got url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		got = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"next":"/thanks"}`))
	})

	fields := url.Values{}
	fields.Set("costco", "123456789012")
	fields.Set("waterType", "Purified Water")
	fields.Set("waterQuantity", "2")

	require.NoError(t, client.Submit(context.Background(), fields))
	assert.Equal(t, "123456789012", got.Get("costco"))
	assert.Equal(t, "Purified Water", got.Get("waterType"))
	assert.Equal(t, "2", got.Get("waterQuantity"))
}

func TestSubmitAcceptsAnySuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	assert.NoError(t, client.Submit(context.Background(), url.Values{}))
}

func TestSubmitReportsEndpointErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"field":"email","message":"should be an email"}]}`))
	})

	err := client.Submit(context.Background(), url.Values{})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Equal(t, "should be an email", statusErr.Message)
}

func TestSubmitNonJSONErrorBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	err := client.Submit(context.Background(), url.Values{})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Empty(t, statusErr.Message)
	assert.Contains(t, statusErr.Error(), "bad gateway")
}

func TestSubmitTransportError(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	err := client.Submit(context.Background(), url.Values{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEndpointUnavailable)
}

func TestSubmitCircuitOpensOnServerErrors(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 5; i++ {
		require.Error(t, client.Submit(context.Background(), url.Values{}))
	}

	err := client.Submit(context.Background(), url.Values{})
	assert.ErrorIs(t, err, ErrEndpointUnavailable)
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestSubmitClientErrorsDoNotTripCircuit(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	})

	for i := 0; i < 8; i++ {
		err := client.Submit(context.Background(), url.Values{})
		assert.NotErrorIs(t, err, ErrEndpointUnavailable)
	}
	assert.Equal(t, int32(8), atomic.LoadInt32(&calls))
}

func TestSubmitHonorsContext(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.Submit(ctx, url.Values{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
