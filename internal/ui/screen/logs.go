package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"

	"hyperfolio/internal/logger"
	"hyperfolio/internal/ui"
	"hyperfolio/internal/ui/component"
	"hyperfolio/internal/ui/router"
	"hyperfolio/internal/ui/style"
)

// LogsScreen shows the recent in-memory log entries captured by the logger's
// buffer core. New entries arrive over the bus as they are written.
type LogsScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	services *ui.Services
	entries  []logger.Entry

	table   *component.Table
	helpBar *component.HelpBar

	titleStyle  lipgloss.Style
	statusStyle lipgloss.Style
}

// NewLogsScreen creates the logs screen.
func NewLogsScreen(services *ui.Services) *LogsScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	s := &LogsScreen{
		keyMap:   keyMap,
		services: services,

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0),

		statusStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
	}

	s.table = component.NewTable().
		AddColumn("Time", 10, lipgloss.Left).
		AddColumn("Level", 7, lipgloss.Center).
		AddColumn("Message", 48, lipgloss.Left).
		AddColumn("Fields", 40, lipgloss.Left).
		SetZebra(false)

	s.helpBar = component.NewHelpBar().
		SetKeyBindings(keyMap.ContextualHelp(ui.RouteLogs))

	s.refresh()
	return s
}

// Init initializes the screen.
func (s *LogsScreen) Init() tea.Cmd {
	return nil
}

// Update handles screen updates.
func (s *LogsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit

		case key.Matches(msg, s.keyMap.Back):
			cmds = append(cmds, func() tea.Msg {
				return ui.BackMsg{}
			})

		case key.Matches(msg, s.keyMap.Up):
			s.table.MoveUp()

		case key.Matches(msg, s.keyMap.Down):
			s.table.MoveDown()
		}

	case ui.LogMsg:
		s.refresh()
	}

	return s, tea.Batch(cmds...)
}

// refresh re-reads the buffer and rebuilds the table.
func (s *LogsScreen) refresh() {
	palette := style.DefaultPalette()
	s.entries = s.services.LogBuffer.Recent(0)

	rows := make([]component.TableRow, 0, len(s.entries))
	for _, entry := range s.entries {
		levelStyle := logLevelStyle(palette, entry.Level)
		rows = append(rows, component.TableRow{
			Cells: []string{
				entry.Time.Format("15:04:05"),
				strings.ToUpper(entry.Level.String()),
				entry.Message,
				formatFields(entry.Fields),
			},
			CellStyles: []*lipgloss.Style{nil, levelStyle, nil, nil},
		})
	}
	s.table.SetRows(rows)
}

// View renders the logs screen.
func (s *LogsScreen) View() string {
	if s.width == 0 || s.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	content.WriteString(s.titleStyle.Render("Logs"))
	content.WriteString("\n")
	content.WriteString(s.statusStyle.Render(fmt.Sprintf("%d entries in buffer", len(s.entries))))
	content.WriteString("\n\n")

	if len(s.entries) == 0 {
		content.WriteString(s.statusStyle.Render("Nothing logged yet."))
	} else {
		content.WriteString(s.table.View())
	}

	content.WriteString("\n")
	content.WriteString(s.helpBar.SetWidth(s.width).View())

	return content.String()
}

// SetSize sets the screen dimensions.
func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
	s.table.SetSize(width-4, height-8)
}

func logLevelStyle(palette style.Palette, level zapcore.Level) *lipgloss.Style {
	var cell lipgloss.Style
	switch {
	case level >= zapcore.ErrorLevel:
		cell = lipgloss.NewStyle().Foreground(palette.Error).Bold(true)
	case level == zapcore.WarnLevel:
		cell = lipgloss.NewStyle().Foreground(palette.Warning)
	case level == zapcore.DebugLevel:
		cell = lipgloss.NewStyle().Foreground(palette.TextMuted)
	default:
		cell = lipgloss.NewStyle().Foreground(palette.Text)
	}
	cell = cell.Padding(0, 1)
	return &cell
}

// formatFields flattens structured fields into "k=v" pairs.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for k, v := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, " ")
}
