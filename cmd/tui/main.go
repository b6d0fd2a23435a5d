package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"hyperfolio/internal/config"
	"hyperfolio/internal/export"
	"hyperfolio/internal/hyperliquid"
	"hyperfolio/internal/logger"
	"hyperfolio/internal/tracker"
	"hyperfolio/internal/ui"
	"hyperfolio/internal/ui/router"
	"hyperfolio/internal/ui/screen"
)

// AppModel is the top-level TUI model: it owns the router and reacts to
// navigation and snapshot messages.
type AppModel struct {
	router   *router.Router
	services *ui.Services
	width    int
	height   int
}

// NewAppModel creates the application model starting on the address prompt.
func NewAppModel(services *ui.Services) *AppModel {
	return &AppModel{
		router:   router.New(screen.NewAddressScreen(services)),
		services: services,
	}
}

// Init initializes the application.
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Init(),
		ui.ListenBus(),
		tea.EnterAltScreen,
	)
}

// Update handles application-level updates.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.router.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if cmd := m.router.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ui.RouterMsg:
		if cmd := m.handleNavigation(msg.To); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ui.BackMsg:
		if cmd := m.router.Back(); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ui.BusDelivery:
		// Unwrap, handle like any other message, re-arm the single listener.
		model, cmd := m.Update(msg.Msg)
		return model, tea.Batch(cmd, ui.ListenBus())

	case ui.SnapshotMsg:
		// A first load replaces the address prompt; a reload is handled by
		// the dashboard already on top of the stack.
		if _, onDashboard := m.router.Top().(*screen.DashboardScreen); onDashboard {
			if cmd := m.router.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else {
			cmds = append(cmds, m.router.Replace(screen.NewDashboardScreen(m.services, msg.Snapshot)))
		}

	default:
		if cmd := m.router.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleNavigation maps a route to a router operation.
func (m *AppModel) handleNavigation(route ui.Route) tea.Cmd {
	switch route {
	case ui.RouteAddress:
		return m.router.Replace(screen.NewAddressScreen(m.services))
	case ui.RouteLogs:
		return m.router.Push(screen.NewLogsScreen(m.services))
	default:
		return nil
	}
}

// View renders the application.
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return m.router.View()
}

func main() {
	configPath := flag.String("config", "", "Path to config file (optional)")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logBuffer := logger.NewLogBuffer(512)
	logBuffer.SetNotify(func(entry logger.Entry) {
		ui.Publish(ui.LogMsg{Entry: entry})
	})
	logCfg := logger.DefaultConfig()
	logCfg.LogFile = cfg.LogFile
	logCfg.Debug = cfg.DebugLogging
	appLogger, err := logger.New(logCfg, logBuffer)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	appLogger.Info("Starting Hyperfolio TUI",
		zap.String("api_url", cfg.APIURL),
		zap.Int("funding_window_days", cfg.FundingWindowDays))

	client := hyperliquid.New(cfg.APIURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, appLogger)
	services := &ui.Services{
		Ctx:       rootCtx,
		Config:    cfg,
		Logger:    appLogger,
		LogBuffer: logBuffer,
		Tracker:   tracker.New(client, cfg.FundingWindowDays, appLogger),
		Exporter:  export.NewSnapshotExporter(appLogger),
	}

	program := tea.NewProgram(
		NewAppModel(services),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		if _, err := program.Run(); err != nil {
			appLogger.Error("TUI application failed", zap.Error(err))
		}
		stop()
	}()

	<-rootCtx.Done()

	appLogger.Info("Shutting down")
	program.Quit()
}
