package portfolio

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hyperfolio/internal/hyperliquid"
)

// Normalize converts both raw streams into their canonical forms.
//
// When raw fills are empty or absent the funding stream is discarded as well
// and both results are empty: no fills is treated as "no data at all"
// upstream, even if funding records exist for the address.
func Normalize(rawFills []hyperliquid.RawFill, rawFunding []hyperliquid.RawFunding) ([]Fill, []FundingPayment) {
	if len(rawFills) == 0 {
		return []Fill{}, []FundingPayment{}
	}
	return NormalizeFills(rawFills), NormalizeFunding(rawFunding)
}

// NormalizeFills converts raw fills into typed Fills with a derived calendar
// date. Output order follows the input; the aggregator sorts by date.
func NormalizeFills(raw []hyperliquid.RawFill) []Fill {
	fills := make([]Fill, 0, len(raw))
	for _, r := range raw {
		ts := fromMillis(r.Time)
		fills = append(fills, Fill{
			Time:      ts,
			Date:      DateOf(ts),
			Coin:      r.Coin,
			Direction: r.Dir,
			Price:     coerceDecimal(r.Px),
			Size:      coerceDecimal(r.Sz),
			ClosedPnL: coerceDecimal(r.ClosedPnL),
			Fee:       coerceDecimal(r.Fee),
		})
	}
	return fills
}

// NormalizeFunding converts raw funding settlements. An empty input yields an
// empty (non-nil) slice so downstream joins see zero contributions.
func NormalizeFunding(raw []hyperliquid.RawFunding) []FundingPayment {
	payments := make([]FundingPayment, 0, len(raw))
	for _, r := range raw {
		ts := fromMillis(r.Time)
		payments = append(payments, FundingPayment{
			Time:   ts,
			Date:   DateOf(ts),
			Coin:   r.Coin,
			Amount: coerceDecimal(r.USDC),
		})
	}
	return payments
}

// coerceDecimal parses a numeric string leniently: missing or malformed
// values become nil rather than an error, so one bad field never corrupts
// the rest of its row.
func coerceDecimal(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
