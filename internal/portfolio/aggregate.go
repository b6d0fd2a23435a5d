package portfolio

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate groups both streams by calendar date, outer-joins them with
// explicit zero fill, and computes the daily and running cumulative net.
//
// The result holds exactly one row per date seen in either stream, sorted
// ascending. The calendar is sparse: days without events are absent rather
// than represented as zero rows.
func Aggregate(fills []Fill, funding []FundingPayment) []DailyAggregate {
	type daySums struct {
		closedPnl decimal.Decimal
		fee       decimal.Decimal
		funding   decimal.Decimal
	}

	byDate := make(map[time.Time]*daySums)
	day := func(date time.Time) *daySums {
		if s, ok := byDate[date]; ok {
			return s
		}
		s := &daySums{}
		byDate[date] = s
		return s
	}

	for _, f := range fills {
		s := day(f.Date)
		if f.ClosedPnL != nil {
			s.closedPnl = s.closedPnl.Add(*f.ClosedPnL)
		}
		if f.Fee != nil {
			s.fee = s.fee.Add(*f.Fee)
		}
	}
	for _, p := range funding {
		s := day(p.Date)
		if p.Amount != nil {
			s.funding = s.funding.Add(*p.Amount)
		}
	}

	dates := make([]time.Time, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	daily := make([]DailyAggregate, 0, len(dates))
	running := decimal.Zero
	for _, date := range dates {
		s := byDate[date]
		net := s.closedPnl.Sub(s.fee).Add(s.funding)
		running = running.Add(net)
		daily = append(daily, DailyAggregate{
			Date:          date,
			ClosedPnLSum:  s.closedPnl,
			FeeSum:        s.fee,
			FundingSum:    s.funding,
			DailyNet:      net,
			CumulativeNet: running,
		})
	}

	return daily
}
