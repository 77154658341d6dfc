// Package emails provides the indexed email browser view for the TUI.
package emails

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/tui/messages"
	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/tui/styles"
	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
)

// View is the indexed email browser.
type View struct {
	styles *styles.Styles
	store  driven.DocumentStore

	documents    []domain.Document
	selected     int
	scrollOffset int
	showContent  bool
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new emails view.
func NewView(s *styles.Styles, store driven.DocumentStore) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:    s,
		store:     store,
		documents: []domain.Document{},
		width:     80,
		height:    24,
	}
}

// Init loads the indexed emails.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadEmails()
}

// loadEmails returns a command that loads the indexed emails.
func (v *View) loadEmails() tea.Cmd {
	return func() tea.Msg {
		if v.store == nil {
			return messages.EmailsLoaded{Err: fmt.Errorf("document store not available")}
		}

		docs, err := v.store.ListDocuments(context.Background())
		return messages.EmailsLoaded{Documents: docs, Err: err}
	}
}

// Update handles messages for the emails view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.EmailsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.documents = msg.Documents
			v.selected = 0
			v.scrollOffset = 0
			v.err = nil
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if len(v.documents) > 0 {
			v.showContent = !v.showContent
		}
	case "esc":
		if v.showContent {
			v.showContent = false
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewAsk}
		}
	case "r":
		v.loading = true
		return v, v.loadEmails()
	}

	return v, nil
}

// adjustScroll keeps the selection inside the visible window.
func (v *View) adjustScroll() {
	visible := v.visibleRows()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	}
	if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleRows returns how many list rows fit in the current height.
func (v *View) visibleRows() int {
	// Reserve space for header, help line and padding.
	rows := v.height - 6
	if rows < 3 {
		rows = 3
	}
	return rows
}

// View renders the emails view.
func (v *View) View() string {
	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Indexed emails")
	sections = append(sections, header, "")

	switch {
	case v.loading:
		sections = append(sections, v.styles.Muted.Render("Loading..."))

	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))

	case len(v.documents) == 0:
		sections = append(sections, v.styles.Muted.Render("Index is empty. Run 'inboxqa fetch' first."))

	case v.showContent:
		sections = append(sections, v.renderContent())

	default:
		sections = append(sections, v.renderList())
	}

	sections = append(sections, "")
	help := v.styles.Help.Render("↑/↓ navigate · enter open/close · r reload · esc back")
	sections = append(sections, help)

	return strings.Join(sections, "\n")
}

// renderList renders the scrolling email list.
func (v *View) renderList() string {
	visible := v.visibleRows()
	end := v.scrollOffset + visible
	if end > len(v.documents) {
		end = len(v.documents)
	}

	lines := make([]string, 0, visible)
	for i := v.scrollOffset; i < end; i++ {
		doc := v.documents[i]
		subject := doc.Metadata.Subject
		if subject == "" {
			subject = "(no subject)"
		}
		line := fmt.Sprintf("%s  %s", subject, doc.Metadata.From)
		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render("> "+line))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+line))
		}
	}

	counter := v.styles.Muted.Render(
		fmt.Sprintf("%d of %d", v.selected+1, len(v.documents)))
	lines = append(lines, "", counter)

	return strings.Join(lines, "\n")
}

// renderContent renders the selected email's content.
func (v *View) renderContent() string {
	doc := v.documents[v.selected]

	lines := []string{
		v.styles.Subtitle.Render(doc.Metadata.Subject),
		v.styles.Muted.Render("From: " + doc.Metadata.From),
	}
	if doc.Metadata.Received != "" {
		lines = append(lines, v.styles.Muted.Render("Received: "+doc.Metadata.Received))
	}
	lines = append(lines, "",
		v.styles.Border.Width(v.width-4).Render(doc.Content))

	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Documents returns the loaded emails.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// Selected returns the selected email index.
func (v *View) Selected() int {
	return v.selected
}

// SelectedDocument returns the currently selected email, or nil.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected < 0 || v.selected >= len(v.documents) {
		return nil
	}
	return &v.documents[v.selected]
}

// ShowingContent returns whether the content pane is open.
func (v *View) ShowingContent() bool {
	return v.showContent
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
