// Package tracker orchestrates one portfolio load: validate the address,
// fetch both event streams, and derive aggregates and metrics into an
// immutable Snapshot. Each load fully replaces whatever was shown before.
package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hyperfolio/internal/hyperliquid"
	"hyperfolio/internal/logger"
	"hyperfolio/internal/portfolio"
)

// minAddressLength is a loose proxy for "looks like a hex address"; no
// checksum validation is attempted.
const minAddressLength = 42

var (
	// ErrInvalidAddress is returned before any network call is made.
	ErrInvalidAddress = errors.New("address must be at least 42 characters")

	// ErrNoData means the fills fetch succeeded but returned zero records.
	// Distinct from a fetch failure: the address simply has no history.
	ErrNoData = errors.New("no fills found for address")
)

// InfoClient is the read-only ledger query surface the service depends on.
type InfoClient interface {
	UserFills(ctx context.Context, address string) ([]hyperliquid.RawFill, error)
	UserFunding(ctx context.Context, address string, startTime int64) ([]hyperliquid.RawFunding, error)
}

// Snapshot is the immutable result of one load action. It carries everything
// the presentation layer needs; no ambient session state survives outside it.
type Snapshot struct {
	Address  string
	LoadID   string
	LoadedAt time.Time
	Fills    []portfolio.Fill
	Funding  []portfolio.FundingPayment
	Daily    []portfolio.DailyAggregate
	Metrics  portfolio.Metrics
}

// Service loads and derives portfolio snapshots.
type Service struct {
	client        InfoClient
	fundingWindow time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// New creates a tracker service. fundingWindowDays bounds the funding query
// lower bound relative to now.
func New(client InfoClient, fundingWindowDays int, log *zap.Logger) *Service {
	return &Service{
		client:        client,
		fundingWindow: time.Duration(fundingWindowDays) * 24 * time.Hour,
		logger:        log.Named("tracker"),
		now:           time.Now,
	}
}

// Load fetches both streams for the address and derives a fresh snapshot.
//
// The two queries run concurrently behind a single result: if either fails,
// the whole load fails and the sibling result is discarded. There is no
// partial fills-only or funding-only degradation.
func (s *Service) Load(ctx context.Context, address string) (*Snapshot, error) {
	if len(address) < minAddressLength {
		return nil, ErrInvalidAddress
	}

	loadID := uuid.New().String()
	log := logger.WithLoad(s.logger, address, loadID)
	start := s.now()
	startTime := start.Add(-s.fundingWindow).UnixMilli()

	var (
		rawFills   []hyperliquid.RawFill
		rawFunding []hyperliquid.RawFunding
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rawFills, err = s.client.UserFills(gctx, address)
		return err
	})
	g.Go(func() error {
		var err error
		rawFunding, err = s.client.UserFunding(gctx, address, startTime)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("Load failed", zap.Error(err))
		return nil, err
	}

	if len(rawFills) == 0 {
		log.Info("No fills for address")
		return nil, ErrNoData
	}

	fills, funding := portfolio.Normalize(rawFills, rawFunding)
	snapshot := &Snapshot{
		Address:  address,
		LoadID:   loadID,
		LoadedAt: start,
		Fills:    fills,
		Funding:  funding,
		Daily:    portfolio.Aggregate(fills, funding),
		Metrics:  portfolio.Summarize(fills, funding),
	}

	log.Info("Snapshot loaded",
		zap.Int("fills", len(fills)),
		zap.Int("funding_payments", len(funding)),
		zap.Int("trading_days", len(snapshot.Daily)),
		zap.String("net_pnl", snapshot.Metrics.NetPnL.StringFixed(2)),
		zap.Duration("took", s.now().Sub(start)))

	return snapshot, nil
}
