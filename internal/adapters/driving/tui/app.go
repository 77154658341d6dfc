package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/tui/keymap"
	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/tui/messages"
	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/tui/styles"
	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/tui/views/ask"
	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/tui/views/emails"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// askView is the question-and-answer view.
	askView *ask.View

	// emailsView is the indexed email browser.
	emailsView *emails.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		askView:     ask.NewView(s, km, ports.Answer),
		emailsView:  emails.NewView(s, ports.Documents),
		currentView: messages.ViewAsk,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.askView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("inboxqa"),
		a.askView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.askView.SetDimensions(msg.Width, msg.Height)
		a.emailsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Tab toggles between the ask and emails views.
		if keymap.Matches(msg.String(), a.keymap.Emails) {
			if a.currentView == messages.ViewEmails {
				a.currentView = messages.ViewAsk
				return a, nil
			}
			a.currentView = messages.ViewEmails
			return a, a.emailsView.Init()
		}

		switch a.currentView {
		case messages.ViewAsk:
			a.askView, cmd = a.askView.Update(msg)
			a.err = a.askView.Err()
			return a, cmd
		case messages.ViewEmails:
			a.emailsView, cmd = a.emailsView.Update(msg)
			return a, cmd
		}
		return a, nil

	case messages.AnswerCompleted:
		a.askView, cmd = a.askView.Update(msg)
		a.err = a.askView.Err()
		return a, cmd

	case messages.EmailsLoaded:
		a.emailsView, cmd = a.emailsView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewEmails {
			return a, a.emailsView.Init()
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewAsk:
			a.askView, cmd = a.askView.Update(msg)
		case messages.ViewEmails:
			a.emailsView, cmd = a.emailsView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	switch a.currentView {
	case messages.ViewAsk:
		a.askView, cmd = a.askView.Update(msg)
	case messages.ViewEmails:
		a.emailsView, cmd = a.emailsView.Update(msg)
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewEmails:
		return a.emailsView.View()
	default:
		return a.askView.View()
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.askView.SetDimensions(width, height)
	a.emailsView.SetDimensions(width, height)
}
