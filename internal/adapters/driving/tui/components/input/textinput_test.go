package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionInput(t *testing.T) {
	q := NewQuestionInput(nil)
	require.NotNil(t, q)

	assert.True(t, q.Focused())
	assert.Empty(t, q.Value())
	assert.Equal(t, 50, q.Width())
}

func TestQuestionInput_Typing(t *testing.T) {
	q := NewQuestionInput(nil)

	for _, r := range "hello" {
		q, _ = q.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "hello", q.Value())
}

func TestQuestionInput_SetValueAndReset(t *testing.T) {
	q := NewQuestionInput(nil)

	q.SetValue("a question")
	assert.Equal(t, "a question", q.Value())

	q.Reset()
	assert.Empty(t, q.Value())
}

func TestQuestionInput_FocusBlur(t *testing.T) {
	q := NewQuestionInput(nil)

	q.Blur()
	assert.False(t, q.Focused())

	q.Focus()
	assert.True(t, q.Focused())
}

func TestQuestionInput_SetWidth(t *testing.T) {
	q := NewQuestionInput(nil)

	q.SetWidth(100)
	assert.Equal(t, 100, q.Width())

	// Narrow terminals keep a usable minimum input width
	q.SetWidth(10)
	assert.Equal(t, 10, q.Width())
}

func TestQuestionInput_View(t *testing.T) {
	q := NewQuestionInput(nil)
	q.SetValue("anything")

	view := q.View()
	assert.Contains(t, view, "Ask:")
}
