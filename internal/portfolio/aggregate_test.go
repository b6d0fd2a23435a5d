package portfolio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func fill(date time.Time, closedPnl, fee string) Fill {
	return Fill{Time: date, Date: date, Coin: "ETH", ClosedPnL: dec(closedPnl), Fee: dec(fee)}
}

func payment(date time.Time, amount string) FundingPayment {
	return FundingPayment{Time: date, Date: date, Coin: "ETH", Amount: dec(amount)}
}

func TestAggregateScenario(t *testing.T) {
	// Two trading days, funding only on the first.
	fills := []Fill{
		fill(day(2024, 1, 1), "100", "1"),
		fill(day(2024, 1, 2), "-50", "1"),
	}
	funding := []FundingPayment{
		payment(day(2024, 1, 1), "5"),
	}

	daily := Aggregate(fills, funding)
	require.Len(t, daily, 2)

	assert.Equal(t, day(2024, 1, 1), daily[0].Date)
	assert.Equal(t, "104", daily[0].DailyNet.String()) // 100 - 1 + 5
	assert.Equal(t, "104", daily[0].CumulativeNet.String())

	assert.Equal(t, day(2024, 1, 2), daily[1].Date)
	assert.Equal(t, "-51", daily[1].DailyNet.String()) // -50 - 1 + 0
	assert.Equal(t, "53", daily[1].CumulativeNet.String())
}

func TestAggregateDatesAreUnionWithoutDuplicates(t *testing.T) {
	fills := []Fill{
		fill(day(2024, 3, 1), "10", "0.5"),
		fill(day(2024, 3, 1), "20", "0.5"),
		fill(day(2024, 3, 5), "-5", "0.1"),
	}
	funding := []FundingPayment{
		payment(day(2024, 3, 1), "1"),
		payment(day(2024, 3, 3), "-2"), // funding-only day
	}

	daily := Aggregate(fills, funding)
	require.Len(t, daily, 3)

	got := make([]time.Time, 0, len(daily))
	for _, d := range daily {
		got = append(got, d.Date)
	}
	assert.Equal(t, []time.Time{day(2024, 3, 1), day(2024, 3, 3), day(2024, 3, 5)}, got)
}

func TestAggregateZeroFillJoin(t *testing.T) {
	fills := []Fill{fill(day(2024, 3, 5), "-5", "0.1")}
	funding := []FundingPayment{payment(day(2024, 3, 3), "-2")}

	daily := Aggregate(fills, funding)
	require.Len(t, daily, 2)

	// Funding-only day: fill sums are exactly zero.
	assert.True(t, daily[0].ClosedPnLSum.IsZero())
	assert.True(t, daily[0].FeeSum.IsZero())
	assert.Equal(t, "-2", daily[0].FundingSum.String())

	// Fills-only day: funding sum is exactly zero.
	assert.True(t, daily[1].FundingSum.IsZero())
	assert.Equal(t, "-5", daily[1].ClosedPnLSum.String())
}

func TestAggregateCumulativeIsPrefixSum(t *testing.T) {
	fills := []Fill{
		fill(day(2024, 1, 1), "10", "1"),
		fill(day(2024, 1, 3), "-4", "1"),
		fill(day(2024, 1, 7), "2.5", "0.5"),
	}
	funding := []FundingPayment{
		payment(day(2024, 1, 3), "0.25"),
		payment(day(2024, 1, 9), "-1"),
	}

	daily := Aggregate(fills, funding)
	require.NotEmpty(t, daily)

	running := decimal.Zero
	for i, d := range daily {
		running = running.Add(d.DailyNet)
		assert.True(t, d.CumulativeNet.Equal(running), "row %d: cumulative %s != prefix sum %s", i, d.CumulativeNet, running)
		if i > 0 {
			assert.True(t, daily[i-1].Date.Before(d.Date))
		}
	}
}

func TestAggregateSkipsNilValues(t *testing.T) {
	fills := []Fill{
		{Date: day(2024, 2, 1), ClosedPnL: dec("7"), Fee: nil},
		{Date: day(2024, 2, 1), ClosedPnL: nil, Fee: dec("0.5")},
	}
	funding := []FundingPayment{
		{Date: day(2024, 2, 1), Amount: nil},
	}

	daily := Aggregate(fills, funding)
	require.Len(t, daily, 1)

	// Nil values aggregate as if zero.
	assert.Equal(t, "7", daily[0].ClosedPnLSum.String())
	assert.Equal(t, "0.5", daily[0].FeeSum.String())
	assert.True(t, daily[0].FundingSum.IsZero())
	assert.Equal(t, "6.5", daily[0].DailyNet.String())
}

func TestAggregateEmptyInputs(t *testing.T) {
	daily := Aggregate(nil, nil)
	assert.Empty(t, daily)
}
