package screen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"hyperfolio/internal/export"
	"hyperfolio/internal/portfolio"
	"hyperfolio/internal/tracker"
	"hyperfolio/internal/ui"
	"hyperfolio/internal/ui/component"
	"hyperfolio/internal/ui/router"
	"hyperfolio/internal/ui/style"
)

// DashboardTab identifies the active dashboard view.
type DashboardTab int

const (
	TabPerformance DashboardTab = iota
	TabDaily
	TabTrades
	tabCount
)

func (t DashboardTab) String() string {
	switch t {
	case TabPerformance:
		return "Performance"
	case TabDaily:
		return "Daily PnL"
	case TabTrades:
		return "Trade Log"
	default:
		return "unknown"
	}
}

// DashboardScreen shows the loaded snapshot across three tabs: cumulative
// performance, the daily breakdown, and the raw trade log.
type DashboardScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	services *ui.Services
	snapshot *tracker.Snapshot

	activeTab   DashboardTab
	dailyAsc    bool
	statusLine  string
	statusIsErr bool
	reloading   bool

	statBar     *component.StatBar
	lineChart   *component.LineChart
	barChart    *component.BarChart
	dailyTable  *component.Table
	tradesTable *component.Table
	helpBar     *component.HelpBar

	titleStyle       lipgloss.Style
	tabStyle         lipgloss.Style
	activeTabStyle   lipgloss.Style
	statusStyle      lipgloss.Style
	statusErrorStyle lipgloss.Style
	finalLabelStyle  lipgloss.Style
}

// NewDashboardScreen creates the dashboard for a loaded snapshot.
func NewDashboardScreen(services *ui.Services, snapshot *tracker.Snapshot) *DashboardScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	s := &DashboardScreen{
		keyMap:   keyMap,
		services: services,
		snapshot: snapshot,

		statBar:   component.NewStatBar(),
		lineChart: component.NewLineChart(80, 12),
		barChart:  component.NewBarChart(80, 9),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0),

		tabStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Padding(0, 2),

		activeTabStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Bold(true).
			Padding(0, 2),

		statusStyle: lipgloss.NewStyle().
			Foreground(palette.Success),

		statusErrorStyle: lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true),

		finalLabelStyle: lipgloss.NewStyle().
			Bold(true),
	}

	s.initializeTables()
	s.helpBar = component.NewHelpBar().
		SetKeyBindings(keyMap.ContextualHelp(ui.RouteDashboard))

	s.refreshFromSnapshot()
	return s
}

func (s *DashboardScreen) initializeTables() {
	s.dailyTable = component.NewTable().
		AddColumn("Date", 12, lipgloss.Left).
		AddColumn("Closed PnL", 14, lipgloss.Right).
		AddColumn("Fees", 12, lipgloss.Right).
		AddColumn("Funding", 12, lipgloss.Right).
		AddColumn("Daily Net", 14, lipgloss.Right).
		AddColumn("Cumulative", 14, lipgloss.Right).
		SetZebra(true)

	s.tradesTable = component.NewTable().
		AddColumn("Time", 17, lipgloss.Left).
		AddColumn("Coin", 8, lipgloss.Left).
		AddColumn("Direction", 12, lipgloss.Left).
		AddColumn("Price", 12, lipgloss.Right).
		AddColumn("Size", 12, lipgloss.Right).
		AddColumn("Closed PnL", 14, lipgloss.Right).
		AddColumn("Fee", 10, lipgloss.Right).
		SetZebra(true)
}

// Init initializes the screen.
func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

// Update handles screen updates.
func (s *DashboardScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit

		case key.Matches(msg, s.keyMap.Back):
			cmds = append(cmds, func() tea.Msg {
				return ui.RouterMsg{To: ui.RouteAddress}
			})

		case key.Matches(msg, s.keyMap.Logs):
			cmds = append(cmds, func() tea.Msg {
				return ui.RouterMsg{To: ui.RouteLogs}
			})

		case key.Matches(msg, s.keyMap.NextTab):
			s.activeTab = (s.activeTab + 1) % tabCount

		case key.Matches(msg, s.keyMap.PrevTab):
			s.activeTab = (s.activeTab + tabCount - 1) % tabCount

		case key.Matches(msg, s.keyMap.Up):
			s.activeTable().MoveUp()

		case key.Matches(msg, s.keyMap.Down):
			s.activeTable().MoveDown()

		case key.Matches(msg, s.keyMap.SortOrder):
			if s.activeTab == TabDaily {
				s.dailyAsc = !s.dailyAsc
				s.rebuildDailyTable()
			}

		case key.Matches(msg, s.keyMap.Export):
			cmds = append(cmds, s.exportSnapshot())

		case key.Matches(msg, s.keyMap.Reload):
			if !s.reloading {
				s.reloading = true
				s.setStatus("Reloading…", false)
				cmds = append(cmds, s.reload())
			}
		}

	case ui.SnapshotMsg:
		s.reloading = false
		s.snapshot = msg.Snapshot
		s.refreshFromSnapshot()
		s.setStatus("Reloaded at "+msg.Snapshot.LoadedAt.Format("15:04:05"), false)

	case ui.NoDataMsg:
		s.reloading = false
		s.setStatus("No data found for "+shortAddress(msg.Address)+".", true)

	case ui.LoadFailedMsg:
		s.reloading = false
		s.setStatus(describeLoadError(msg.Err), true)

	case ui.ExportedMsg:
		s.setStatus("Exported: "+strings.Join(msg.Paths, ", "), false)

	case ui.ErrorMsg:
		s.setStatus(msg.Error.Error(), true)
	}

	return s, tea.Batch(cmds...)
}

// activeTable returns the table the up/down keys act on.
func (s *DashboardScreen) activeTable() *component.Table {
	if s.activeTab == TabTrades {
		return s.tradesTable
	}
	return s.dailyTable
}

// reload refetches the snapshot for the same address.
func (s *DashboardScreen) reload() tea.Cmd {
	address := s.snapshot.Address
	return func() tea.Msg {
		snapshot, err := s.services.Tracker.Load(s.services.Ctx, address)
		switch {
		case errors.Is(err, tracker.ErrNoData):
			return ui.NoDataMsg{Address: address}
		case err != nil:
			return ui.LoadFailedMsg{Err: err}
		default:
			return ui.SnapshotMsg{Snapshot: snapshot}
		}
	}
}

// exportSnapshot writes the snapshot to the configured export directory.
func (s *DashboardScreen) exportSnapshot() tea.Cmd {
	snapshot := s.snapshot
	options := export.Options{
		Format:    export.FormatCSV,
		OutputDir: s.services.Config.ExportDir,
	}
	return func() tea.Msg {
		paths, err := s.services.Exporter.Export(snapshot, options)
		if err != nil {
			return ui.ErrorMsg{Error: err, Title: "Export failed"}
		}
		return ui.ExportedMsg{Paths: paths}
	}
}

func (s *DashboardScreen) setStatus(message string, isErr bool) {
	s.statusLine = message
	s.statusIsErr = isErr
}

// refreshFromSnapshot rebuilds every component from the current snapshot.
func (s *DashboardScreen) refreshFromSnapshot() {
	s.statBar.SetMetrics(s.snapshot.Metrics)

	cumulative := make([]float64, len(s.snapshot.Daily))
	daily := make([]float64, len(s.snapshot.Daily))
	for i, d := range s.snapshot.Daily {
		cumulative[i] = d.CumulativeNet.InexactFloat64()
		daily[i] = d.DailyNet.InexactFloat64()
	}
	s.lineChart.SetData(cumulative)
	s.barChart.SetData(daily)

	s.rebuildDailyTable()
	s.rebuildTradesTable()
}

func (s *DashboardScreen) rebuildDailyTable() {
	palette := style.DefaultPalette()

	daily := s.snapshot.Daily
	rows := make([]component.TableRow, 0, len(daily))
	for i := range daily {
		d := daily[i]
		if !s.dailyAsc {
			d = daily[len(daily)-1-i]
		}

		netStyle := pnlCellStyle(palette, d.DailyNet)
		cumStyle := pnlCellStyle(palette, d.CumulativeNet)
		rows = append(rows, component.TableRow{
			Cells: []string{
				d.Date.Format("2006-01-02"),
				d.ClosedPnLSum.StringFixed(2),
				d.FeeSum.StringFixed(2),
				d.FundingSum.StringFixed(2),
				d.DailyNet.StringFixed(2),
				d.CumulativeNet.StringFixed(2),
			},
			CellStyles: []*lipgloss.Style{nil, nil, nil, nil, netStyle, cumStyle},
		})
	}
	s.dailyTable.SetRows(rows)
}

func (s *DashboardScreen) rebuildTradesTable() {
	palette := style.DefaultPalette()

	fills := s.snapshot.Fills
	rows := make([]component.TableRow, 0, len(fills))
	// Most recent trades first.
	for i := len(fills) - 1; i >= 0; i-- {
		f := fills[i]
		pnl := portfolio.ZeroIfNil(f.ClosedPnL)
		rows = append(rows, component.TableRow{
			Cells: []string{
				f.Time.UTC().Format("01-02 15:04:05"),
				f.Coin,
				f.Direction,
				formatOptional(f.Price),
				formatOptional(f.Size),
				pnl.StringFixed(2),
				formatOptional(f.Fee),
			},
			CellStyles: []*lipgloss.Style{nil, nil, nil, nil, nil, pnlCellStyle(palette, pnl), nil},
		})
	}
	s.tradesTable.SetRows(rows)
}

// View renders the dashboard.
func (s *DashboardScreen) View() string {
	if s.width == 0 || s.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	title := fmt.Sprintf("Portfolio  %s", shortAddress(s.snapshot.Address))
	content.WriteString(s.titleStyle.Render(title))
	content.WriteString("\n")
	content.WriteString(s.statBar.SetWidth(s.width).View())
	content.WriteString("\n\n")
	content.WriteString(s.renderTabs())
	content.WriteString("\n\n")

	switch s.activeTab {
	case TabPerformance:
		content.WriteString(s.renderPerformance())
	case TabDaily:
		content.WriteString(s.renderDaily())
	case TabTrades:
		content.WriteString(s.tradesTable.View())
	}

	if s.statusLine != "" {
		content.WriteString("\n")
		if s.statusIsErr {
			content.WriteString(s.statusErrorStyle.Render(s.statusLine))
		} else {
			content.WriteString(s.statusStyle.Render(s.statusLine))
		}
	}

	content.WriteString("\n")
	content.WriteString(s.helpBar.SetWidth(s.width).View())

	return content.String()
}

func (s *DashboardScreen) renderTabs() string {
	tabs := make([]string, 0, int(tabCount))
	for tab := TabPerformance; tab < tabCount; tab++ {
		if tab == s.activeTab {
			tabs = append(tabs, s.activeTabStyle.Render(tab.String()))
		} else {
			tabs = append(tabs, s.tabStyle.Render(tab.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (s *DashboardScreen) renderPerformance() string {
	palette := style.DefaultPalette()

	subtitle := lipgloss.NewStyle().Foreground(palette.TextMuted).
		Render("Account Growth (cumulative net PnL)")

	final := s.snapshot.Metrics.NetPnL
	label := s.finalLabelStyle.
		Foreground(palette.PnLColor(final.Sign())).
		Render(fmt.Sprintf("Cumulative net PnL: $%s", final.StringFixed(2)))

	return subtitle + "\n\n" + s.lineChart.View() + "\n\n" + label
}

func (s *DashboardScreen) renderDaily() string {
	order := "newest first"
	if s.dailyAsc {
		order = "oldest first"
	}
	palette := style.DefaultPalette()
	orderLabel := lipgloss.NewStyle().Foreground(palette.TextMuted).
		Render("Sorted " + order + " (o to flip)")

	return s.barChart.View() + "\n\n" + s.dailyTable.View() + "\n" + orderLabel
}

// SetSize sets the screen dimensions.
func (s *DashboardScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)

	chartWidth := width - 4
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := height / 3
	s.lineChart.SetSize(chartWidth, chartHeight)
	s.barChart.SetSize(chartWidth, chartHeight-2)

	tableHeight := height - 16
	s.dailyTable.SetSize(width-4, tableHeight-chartHeight)
	s.tradesTable.SetSize(width-4, tableHeight+4)
}

// pnlCellStyle returns a sign-colored style for a PnL cell.
func pnlCellStyle(palette style.Palette, value decimal.Decimal) *lipgloss.Style {
	cell := lipgloss.NewStyle().
		Foreground(palette.PnLColor(value.Sign())).
		Padding(0, 1)
	return &cell
}

// formatOptional renders a nullable decimal; absent values show as a dash.
func formatOptional(d *decimal.Decimal) string {
	if d == nil {
		return "–"
	}
	return d.String()
}
