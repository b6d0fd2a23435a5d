package portfolio

import "github.com/shopspring/decimal"

// Summarize computes scalar portfolio statistics over all normalized events.
//
// The win rate only counts closing fills, i.e. fills with a nonzero realized
// PnL; fills that merely open or add to a position are excluded from the
// denominator. With no closing fills the win rate is 0 by convention.
func Summarize(fills []Fill, funding []FundingPayment) Metrics {
	m := Metrics{TradeCount: len(fills)}

	for _, f := range fills {
		if f.ClosedPnL != nil {
			m.TotalClosedPnL = m.TotalClosedPnL.Add(*f.ClosedPnL)
			if !f.ClosedPnL.IsZero() {
				m.ClosingTrades++
				if f.ClosedPnL.IsPositive() {
					m.Wins++
				}
			}
		}
		if f.Fee != nil {
			m.TotalFees = m.TotalFees.Add(*f.Fee)
		}
	}

	for _, p := range funding {
		if p.Amount != nil {
			m.TotalFunding = m.TotalFunding.Add(*p.Amount)
		}
	}

	m.NetPnL = m.TotalClosedPnL.Sub(m.TotalFees).Add(m.TotalFunding)

	if m.ClosingTrades > 0 {
		m.WinRate = float64(m.Wins) / float64(m.ClosingTrades) * 100
	}

	return m
}

// ZeroIfNil is a small helper for display and export paths that want a value
// even when coercion failed.
func ZeroIfNil(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
