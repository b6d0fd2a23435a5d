package hyperliquid

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestUserFills(t *testing.T) {
	var gotReq infoRequest

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_, _ = w.Write([]byte(`[
			{"time": 1704067200000, "coin": "ETH", "dir": "Close Long", "px": "2301.5", "sz": "0.5", "closedPnl": "100.25", "fee": "1.15", "startPosition": "0.5"},
			{"time": 1704153600000, "coin": "BTC", "dir": "Open Long", "px": "42000", "sz": "0.1", "closedPnl": "0.0", "fee": "2.1", "startPosition": "0.0"}
		]`))
	})

	client := New(server.URL, 0, zap.NewNop())
	fills, err := client.UserFills(context.Background(), "0xabc")
	require.NoError(t, err)

	assert.Equal(t, "userFills", gotReq.Type)
	assert.Equal(t, "0xabc", gotReq.User)
	assert.Zero(t, gotReq.StartTime)

	require.Len(t, fills, 2)
	assert.Equal(t, "ETH", fills[0].Coin)
	assert.Equal(t, "Close Long", fills[0].Dir)
	assert.Equal(t, "100.25", fills[0].ClosedPnL)
	assert.Equal(t, int64(1704153600000), fills[1].Time)
}

func TestUserFunding(t *testing.T) {
	var gotReq infoRequest

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`[{"time": 1704067200000, "coin": "ETH", "usdc": "-0.42"}]`))
	})

	client := New(server.URL, 0, zap.NewNop())
	funding, err := client.UserFunding(context.Background(), "0xabc", 1700000000000)
	require.NoError(t, err)

	assert.Equal(t, "userFunding", gotReq.Type)
	assert.Equal(t, int64(1700000000000), gotReq.StartTime)

	require.Len(t, funding, 1)
	assert.Equal(t, "-0.42", funding[0].USDC)
}

func TestNon200StatusIsFetchError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := New(server.URL, 0, zap.NewNop())
	_, err := client.UserFills(context.Background(), "0xabc")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "userFills", fetchErr.Query)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.Status)
}

func TestTransportFailureIsFetchError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	client := New(server.URL, 0, zap.NewNop())
	_, err := client.UserFunding(context.Background(), "0xabc", 0)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.Status)
	assert.Error(t, fetchErr.Unwrap())
}

func TestMalformedResponseIsFetchError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	})

	client := New(server.URL, 0, zap.NewNop())
	_, err := client.UserFills(context.Background(), "0xabc")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
}
