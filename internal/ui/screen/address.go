package screen

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hyperfolio/internal/hyperliquid"
	"hyperfolio/internal/tracker"
	"hyperfolio/internal/ui"
	"hyperfolio/internal/ui/component"
	"hyperfolio/internal/ui/router"
	"hyperfolio/internal/ui/style"
)

// AddressScreen is the entry screen: a single wallet address prompt that
// kicks off a portfolio load.
type AddressScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	services *ui.Services

	input   textinput.Model
	spinner spinner.Model
	helpBar *component.HelpBar

	loading    bool
	errMessage string
	infoNotice string

	titleStyle     lipgloss.Style
	subtitleStyle  lipgloss.Style
	errorStyle     lipgloss.Style
	noticeStyle    lipgloss.Style
	containerStyle lipgloss.Style
}

// NewAddressScreen creates the address prompt screen.
func NewAddressScreen(services *ui.Services) *AddressScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	input := textinput.New()
	input.Placeholder = "0x…"
	input.CharLimit = 64
	input.Width = 46
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(palette.Primary)

	s := &AddressScreen{
		keyMap:   keyMap,
		services: services,
		input:    input,
		spinner:  spin,

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0).
			Align(lipgloss.Center),

		subtitleStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Align(lipgloss.Center),

		errorStyle: lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true),

		noticeStyle: lipgloss.NewStyle().
			Foreground(palette.Warning),

		containerStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(1, 3).
			Margin(1, 0),
	}

	s.helpBar = component.NewHelpBar().
		SetKeyBindings(keyMap.ContextualHelp(ui.RouteAddress))

	return s
}

// Init initializes the screen.
func (s *AddressScreen) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles screen updates.
func (s *AddressScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit

		case key.Matches(msg, s.keyMap.Logs):
			cmds = append(cmds, func() tea.Msg {
				return ui.RouterMsg{To: ui.RouteLogs}
			})

		case key.Matches(msg, s.keyMap.Enter):
			if !s.loading {
				cmds = append(cmds, s.startLoad())
			}

		default:
			if !s.loading {
				var cmd tea.Cmd
				s.input, cmd = s.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	case spinner.TickMsg:
		if s.loading {
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case ui.LoadFailedMsg:
		s.loading = false
		s.errMessage = describeLoadError(msg.Err)

	case ui.NoDataMsg:
		s.loading = false
		s.infoNotice = "No data found for " + shortAddress(msg.Address) + "."
	}

	return s, tea.Batch(cmds...)
}

// startLoad validates the input and launches the load action. Validation
// failures never leave the screen.
func (s *AddressScreen) startLoad() tea.Cmd {
	address := strings.TrimSpace(s.input.Value())
	s.errMessage = ""
	s.infoNotice = ""

	s.loading = true
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		snapshot, err := s.services.Tracker.Load(s.services.Ctx, address)
		switch {
		case errors.Is(err, tracker.ErrNoData):
			return ui.NoDataMsg{Address: address}
		case err != nil:
			return ui.LoadFailedMsg{Err: err}
		default:
			return ui.SnapshotMsg{Snapshot: snapshot}
		}
	})
}

// View renders the screen.
func (s *AddressScreen) View() string {
	if s.width == 0 || s.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	content.WriteString(s.titleStyle.Width(s.width).Render("Hyperfolio"))
	content.WriteString("\n")
	content.WriteString(s.subtitleStyle.Width(s.width).Render("Hyperliquid portfolio analytics"))
	content.WriteString("\n\n")

	var box strings.Builder
	box.WriteString("Wallet address\n\n")
	box.WriteString(s.input.View())
	if s.loading {
		box.WriteString("\n\n" + s.spinner.View() + " Loading fills and funding…")
	}
	if s.errMessage != "" {
		box.WriteString("\n\n" + s.errorStyle.Render(s.errMessage))
	}
	if s.infoNotice != "" {
		box.WriteString("\n\n" + s.noticeStyle.Render(s.infoNotice))
	}

	content.WriteString(lipgloss.PlaceHorizontal(s.width, lipgloss.Center,
		s.containerStyle.Render(box.String())))
	content.WriteString("\n")
	content.WriteString(s.helpBar.SetWidth(s.width).View())

	return content.String()
}

// SetSize sets the screen dimensions.
func (s *AddressScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
}

// describeLoadError turns a load failure into a one-line message.
func describeLoadError(err error) string {
	var fetchErr *hyperliquid.FetchError
	switch {
	case errors.Is(err, tracker.ErrInvalidAddress):
		return "Address must be at least 42 characters."
	case errors.As(err, &fetchErr):
		return "Error fetching data: " + fetchErr.Error()
	default:
		return "Load failed: " + err.Error()
	}
}

func shortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:8] + "…" + address[len(address)-4:]
}
