// Package ask provides the question-and-answer view for the TUI.
package ask

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/tui/components/input"
	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/tui/keymap"
	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/tui/messages"
	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/tui/styles"
	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driving"
)

// View is the question input and answer display.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	input  *input.QuestionInput

	answerService driving.AnswerService
	ctx           context.Context

	width  int
	height int
	ready  bool

	asking     bool
	focusInput bool
	question   string
	answer     string
	sources    []domain.Document
	err        error
}

// NewView creates a new ask view.
func NewView(s *styles.Styles, km *keymap.KeyMap, answerService driving.AnswerService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewQuestionInput(s),
		answerService: answerService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnswerCompleted:
		v.handleAnswerCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.asking = false
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEnter && v.focusInput && !v.asking {
		question := v.input.Value()
		if question == "" {
			return v, nil
		}
		v.asking = true
		v.err = nil
		v.question = question
		v.focusInput = false
		v.input.Blur()
		return v, v.performAsk(question)
	}

	if v.focusInput {
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	if keymap.Matches(msg.String(), v.keymap.NewQuestion) {
		v.Reset()
		return v, nil
	}

	return v, nil
}

// performAsk answers the question and loads the retrieved emails.
func (v *View) performAsk(question string) tea.Cmd {
	return func() tea.Msg {
		if v.answerService == nil {
			return messages.ErrorOccurred{Err: ErrNoAnswerService}
		}

		answer, err := v.answerService.Answer(v.ctx, question)
		if err != nil {
			return messages.AnswerCompleted{Question: question, Err: err}
		}

		// Sources are best-effort; the answer stands on its own.
		sources, err := v.answerService.Retrieve(v.ctx, question)
		if err != nil {
			sources = nil
		}

		return messages.AnswerCompleted{
			Question: question,
			Answer:   answer,
			Sources:  sources,
		}
	}
}

// handleAnswerCompleted processes the answer result.
func (v *View) handleAnswerCompleted(msg messages.AnswerCompleted) {
	v.asking = false
	if msg.Err != nil {
		v.err = msg.Err
		return
	}

	v.err = nil
	v.answer = msg.Answer
	v.sources = msg.Sources
}

// View renders the ask view.
func (v *View) View() string {
	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("inboxqa")
	sections = append(sections, header, "")

	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.asking {
		sections = append(sections, v.styles.Muted.Render("Thinking..."), "")
	}

	if v.answer != "" && !v.asking {
		question := v.styles.Subtitle.Render("Q: " + v.question)
		answer := v.styles.Answer.Width(v.width - 4).Render(v.answer)
		sections = append(sections, question, answer, "")

		if len(v.sources) > 0 {
			sections = append(sections, v.styles.Muted.Render(
				fmt.Sprintf("Based on %d email(s):", len(v.sources))))
			for i, doc := range v.sources {
				line := fmt.Sprintf("  [%d] %s (%s)", i+1,
					doc.Metadata.Subject, doc.Metadata.From)
				sections = append(sections, v.styles.Muted.Render(line))
			}
			sections = append(sections, "")
		}
	}

	help := v.styles.Help.Render("enter ask · n new question · tab emails · ctrl+c quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// Ready returns whether the view has received its dimensions.
func (v *View) Ready() bool {
	return v.ready
}

// Question returns the last asked question.
func (v *View) Question() string {
	return v.question
}

// Answer returns the current answer text.
func (v *View) Answer() string {
	return v.answer
}

// Sources returns the emails the answer was based on.
func (v *View) Sources() []domain.Document {
	return v.sources
}

// Asking returns whether an answer is in flight.
func (v *View) Asking() bool {
	return v.asking
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset clears the view back to input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.question = ""
	v.answer = ""
	v.sources = nil
	v.err = nil
	v.asking = false
}
