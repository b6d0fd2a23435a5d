// Package portfolio turns raw Hyperliquid event streams into daily PnL
// aggregates and summary statistics. All derived values are rebuilt from
// scratch on every load; nothing here is mutated after construction.
package portfolio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fill is a normalized trade execution. Numeric fields are nil when the raw
// value was missing or failed lenient coercion; sums skip nil values.
type Fill struct {
	Time      time.Time
	Date      time.Time // UTC midnight of Time
	Coin      string
	Direction string
	Price     *decimal.Decimal
	Size      *decimal.Decimal
	ClosedPnL *decimal.Decimal // zero when the fill did not close a position
	Fee       *decimal.Decimal // non-negative = fee paid
}

// FundingPayment is a normalized funding settlement. Amount is signed:
// positive means the account received funding, negative means it paid.
type FundingPayment struct {
	Time   time.Time
	Date   time.Time
	Coin   string
	Amount *decimal.Decimal
}

// DailyAggregate is one row per calendar date present in either stream.
// Dates absent from one stream contribute zero for that stream's sums.
type DailyAggregate struct {
	Date          time.Time
	ClosedPnLSum  decimal.Decimal
	FeeSum        decimal.Decimal
	FundingSum    decimal.Decimal
	DailyNet      decimal.Decimal // ClosedPnLSum - FeeSum + FundingSum
	CumulativeNet decimal.Decimal // prefix sum of DailyNet, ascending by date
}

// Metrics holds scalar portfolio statistics over the full loaded window.
type Metrics struct {
	NetPnL         decimal.Decimal
	TotalClosedPnL decimal.Decimal
	TotalFees      decimal.Decimal
	TotalFunding   decimal.Decimal
	WinRate        float64 // percent, 0 when no closing fills
	TradeCount     int
	ClosingTrades  int // fills with ClosedPnL != 0
	Wins           int // closing fills with ClosedPnL > 0
}

// DateOf truncates an instant to its UTC calendar day. UTC is the fixed
// reference timezone for the whole run so that grouping stays consistent.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
