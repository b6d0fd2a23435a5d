package component

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"hyperfolio/internal/portfolio"
	"hyperfolio/internal/ui/style"
)

// StatBar renders the summary metric cards shown above the dashboard tabs:
// net PnL, win rate, trading fees, and net funding.
type StatBar struct {
	metrics portfolio.Metrics
	width   int

	labelStyle lipgloss.Style
	cardStyle  lipgloss.Style
}

// NewStatBar creates the metric card row.
func NewStatBar() *StatBar {
	palette := style.DefaultPalette()

	return &StatBar{
		labelStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		cardStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 2),
	}
}

// SetMetrics sets the metrics to display.
func (s *StatBar) SetMetrics(metrics portfolio.Metrics) *StatBar {
	s.metrics = metrics
	return s
}

// SetWidth sets the available width.
func (s *StatBar) SetWidth(width int) *StatBar {
	s.width = width
	return s
}

// View renders the metric cards side by side.
func (s *StatBar) View() string {
	palette := style.DefaultPalette()

	valueStyle := func(d decimal.Decimal) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(palette.PnLColor(d.Sign()))
	}

	cards := []string{
		s.card("Net PnL", valueStyle(s.metrics.NetPnL).Render(dollars(s.metrics.NetPnL))),
		s.card("Win Rate", lipgloss.NewStyle().Bold(true).Foreground(palette.Primary).
			Render(fmt.Sprintf("%.1f%%", s.metrics.WinRate))),
		s.card("Trading Fees", lipgloss.NewStyle().Bold(true).Foreground(palette.Warning).
			Render(dollars(s.metrics.TotalFees))),
		s.card("Net Funding", valueStyle(s.metrics.TotalFunding).Render(dollars(s.metrics.TotalFunding))),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (s *StatBar) card(label, value string) string {
	return s.cardStyle.Render(s.labelStyle.Render(label) + "\n" + value)
}

func dollars(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
