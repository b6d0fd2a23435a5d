package tracker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hyperfolio/internal/hyperliquid"
	"hyperfolio/internal/logger"
)

const testAddress = "0x1234567890abcdef1234567890abcdef12345678"

type stubClient struct {
	fills      []hyperliquid.RawFill
	funding    []hyperliquid.RawFunding
	fillsErr   error
	fundingErr error

	fillsCalls   int
	fundingCalls int
	gotStartTime int64
}

func (c *stubClient) UserFills(ctx context.Context, address string) ([]hyperliquid.RawFill, error) {
	c.fillsCalls++
	return c.fills, c.fillsErr
}

func (c *stubClient) UserFunding(ctx context.Context, address string, startTime int64) ([]hyperliquid.RawFunding, error) {
	c.fundingCalls++
	c.gotStartTime = startTime
	return c.funding, c.fundingErr
}

func TestLoadRejectsShortAddressWithoutFetching(t *testing.T) {
	client := &stubClient{}
	service := New(client, 180, zap.NewNop())

	_, err := service.Load(context.Background(), "0xshort")
	require.ErrorIs(t, err, ErrInvalidAddress)
	assert.Zero(t, client.fillsCalls)
	assert.Zero(t, client.fundingCalls)
}

func TestLoadFailsWhenFundingFetchFails(t *testing.T) {
	// Scenario D: only the funding call fails, yet the whole load reports a
	// fetch error and the successful fills result is discarded.
	fetchErr := &hyperliquid.FetchError{Query: "userFunding", Status: 500}
	client := &stubClient{
		fills:      []hyperliquid.RawFill{{Time: 1704067200000, Coin: "ETH", ClosedPnL: "1", Fee: "0.1"}},
		fundingErr: fetchErr,
	}
	service := New(client, 180, zap.NewNop())

	snapshot, err := service.Load(context.Background(), testAddress)
	require.Nil(t, snapshot)

	var got *hyperliquid.FetchError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, "userFunding", got.Query)
}

func TestLoadFailsWhenFillsFetchFails(t *testing.T) {
	client := &stubClient{
		fillsErr: &hyperliquid.FetchError{Query: "userFills", Status: 503},
		funding:  []hyperliquid.RawFunding{{Time: 1704067200000, Coin: "ETH", USDC: "5"}},
	}
	service := New(client, 180, zap.NewNop())

	_, err := service.Load(context.Background(), testAddress)
	var got *hyperliquid.FetchError
	require.True(t, errors.As(err, &got))
}

func TestLoadEmptyFillsIsNoData(t *testing.T) {
	client := &stubClient{
		funding: []hyperliquid.RawFunding{{Time: 1704067200000, Coin: "ETH", USDC: "5"}},
	}
	service := New(client, 180, zap.NewNop())

	_, err := service.Load(context.Background(), testAddress)
	require.ErrorIs(t, err, ErrNoData)
}

func TestLoadBuildsSnapshot(t *testing.T) {
	client := &stubClient{
		fills: []hyperliquid.RawFill{
			{Time: 1704067200000, Coin: "ETH", Dir: "Close Long", Px: "2300", Sz: "1", ClosedPnL: "100", Fee: "1"},
			{Time: 1704153600000, Coin: "ETH", Dir: "Close Short", Px: "2250", Sz: "1", ClosedPnL: "-50", Fee: "1"},
		},
		funding: []hyperliquid.RawFunding{
			{Time: 1704067200000, Coin: "ETH", USDC: "5"},
		},
	}
	service := New(client, 180, zap.NewNop())

	snapshot, err := service.Load(context.Background(), testAddress)
	require.NoError(t, err)

	assert.Equal(t, testAddress, snapshot.Address)
	assert.NotEmpty(t, snapshot.LoadID)
	assert.Len(t, snapshot.Fills, 2)
	assert.Len(t, snapshot.Funding, 1)

	require.Len(t, snapshot.Daily, 2)
	assert.Equal(t, "104", snapshot.Daily[0].CumulativeNet.String())
	assert.Equal(t, "53", snapshot.Daily[1].CumulativeNet.String())

	assert.Equal(t, "53", snapshot.Metrics.NetPnL.String())
	assert.InDelta(t, 50.0, snapshot.Metrics.WinRate, 1e-9)
	assert.Equal(t, 1, client.fillsCalls)
	assert.Equal(t, 1, client.fundingCalls)
}

func TestLoadLogsCarryLoadID(t *testing.T) {
	buffer := logger.NewLogBuffer(16)
	cfg := logger.DefaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "test.log")
	log, err := logger.New(cfg, buffer)
	require.NoError(t, err)

	client := &stubClient{
		fills: []hyperliquid.RawFill{{Time: 1704067200000, Coin: "ETH", ClosedPnL: "1", Fee: "0"}},
	}
	service := New(client, 180, log)

	snapshot, err := service.Load(context.Background(), testAddress)
	require.NoError(t, err)

	recent := buffer.Recent(0)
	require.NotEmpty(t, recent)
	for _, entry := range recent {
		assert.Equal(t, snapshot.LoadID, entry.Fields["load_id"])
		assert.Equal(t, testAddress, entry.Fields["address"])
	}
}

func TestLoadFundingWindowLowerBound(t *testing.T) {
	client := &stubClient{
		fills: []hyperliquid.RawFill{{Time: 1704067200000, Coin: "ETH", ClosedPnL: "1", Fee: "0"}},
	}
	service := New(client, 30, zap.NewNop())

	_, err := service.Load(context.Background(), testAddress)
	require.NoError(t, err)

	// The lower bound is now minus the configured window, in ms epoch.
	// Allow generous slack; only the window size matters.
	wantApprox := service.now().Add(-30 * 24 * time.Hour).UnixMilli()
	assert.InDelta(t, float64(wantApprox), float64(client.gotStartTime), 5000)
}
