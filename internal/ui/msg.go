package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"hyperfolio/internal/logger"
	"hyperfolio/internal/tracker"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens.
type RouterMsg struct {
	To Route
}

// BackMsg pops the current screen off the navigation stack.
type BackMsg struct{}

// SnapshotMsg delivers a freshly loaded snapshot to the dashboard.
type SnapshotMsg struct {
	Snapshot *tracker.Snapshot
}

// LoadFailedMsg reports a failed load action.
type LoadFailedMsg struct {
	Err error
}

// NoDataMsg reports a successful fetch that returned no fills. Shown as
// "no data found", not as an error.
type NoDataMsg struct {
	Address string
}

// ExportedMsg reports a completed snapshot export.
type ExportedMsg struct {
	Paths []string
}

// LogMsg pushes a captured log entry into the UI as it is written.
type LogMsg struct {
	Entry logger.Entry
}

// ErrorMsg represents error conditions raised by screens.
type ErrorMsg struct {
	Error error
	Title string
}

// Bus is the global channel backends publish asynchronous messages on.
var Bus = make(chan tea.Msg, 1024)

// Publish puts a message on the bus without blocking; messages are dropped
// when the bus is full.
func Publish(msg tea.Msg) {
	select {
	case Bus <- msg:
	default:
	}
}

// BusDelivery wraps one message taken off the bus. The top-level model
// unwraps it and re-arms ListenBus, so exactly one receiver is ever pending.
type BusDelivery struct {
	Msg tea.Msg
}

// ListenBus returns a tea.Cmd that waits for the next bus message. Arm it
// once at startup and once per BusDelivery received, never per update.
func ListenBus() tea.Cmd {
	return func() tea.Msg {
		return BusDelivery{Msg: <-Bus}
	}
}

// Route represents the screens of the application.
type Route int

const (
	RouteAddress Route = iota
	RouteDashboard
	RouteLogs
)

// String returns the string representation of the route.
func (r Route) String() string {
	switch r {
	case RouteAddress:
		return "address"
	case RouteDashboard:
		return "dashboard"
	case RouteLogs:
		return "logs"
	default:
		return "unknown"
	}
}
