package router

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen represents a screen that can be navigated to.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Router manages navigation between screens using a stack-based approach.
type Router struct {
	stack  []Screen
	width  int
	height int
}

// New creates a new router with the initial screen.
func New(initial Screen) *Router {
	return &Router{stack: []Screen{initial}}
}

// Init initializes the current screen.
func (r *Router) Init() tea.Cmd {
	if len(r.stack) == 0 {
		return nil
	}
	return r.top().Init()
}

// Update forwards a message to the current screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		r.SetSize(size.Width, size.Height)
		return nil
	}

	if len(r.stack) == 0 {
		return nil
	}

	updated, cmd := r.top().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the current screen.
func (r *Router) View() string {
	if len(r.stack) == 0 {
		return ""
	}
	return r.top().View()
}

// SetSize propagates the terminal size to the current screen.
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height
	if len(r.stack) > 0 {
		r.top().SetSize(width, height)
	}
}

// Push adds a new screen on top of the stack and initializes it.
func (r *Router) Push(screen Screen) tea.Cmd {
	screen.SetSize(r.width, r.height)
	r.stack = append(r.stack, screen)
	return screen.Init()
}

// Replace swaps the current screen for a new one.
func (r *Router) Replace(screen Screen) tea.Cmd {
	screen.SetSize(r.width, r.height)
	if len(r.stack) == 0 {
		r.stack = []Screen{screen}
	} else {
		r.stack[len(r.stack)-1] = screen
	}
	return screen.Init()
}

// Back pops the current screen. The bottom screen is never popped.
func (r *Router) Back() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.top().SetSize(r.width, r.height)
	return nil
}

// Depth returns the size of the navigation stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Top returns the currently visible screen, or nil for an empty stack.
func (r *Router) Top() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.top()
}

func (r *Router) top() Screen {
	return r.stack[len(r.stack)-1]
}
