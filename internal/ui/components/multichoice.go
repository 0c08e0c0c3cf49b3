package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/detective/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. The correct option is not known
// up front: the owner checks the chosen index and calls Reveal.
type MultiChoice struct {
	Question     string
	Options      []string
	Selected     int
	Submitted    bool
	ChosenIndex  int
	CorrectIndex int
	revealed     bool
	width        int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// OptionLabel returns the letter label for option i (A, B, ...).
func OptionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%d", i+1)
}

// Update handles keyboard navigation and selection. Letter keys jump to and
// submit the matching option.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if len(key) == 1 {
			i := int(strings.ToUpper(key)[0]) - 'A'
			if i >= 0 && i < len(m.Options) && i < 26 {
				m.Selected = i
				m.Submitted = true
				m.ChosenIndex = i
			}
		}
	}

	return m, nil
}

// Reveal marks the correct option for rendering. Pass -1 to mark the
// chosen option wrong without disclosing the answer.
func (m *MultiChoice) Reveal(correct int) {
	m.CorrectIndex = correct
	m.revealed = true
}

// Reset clears the submission so the player can choose again.
func (m *MultiChoice) Reset() {
	m.Submitted = false
	m.ChosenIndex = -1
	m.CorrectIndex = -1
	m.revealed = false
}

// SetWidth sets the wrap width for the question and options.
func (m *MultiChoice) SetWidth(w int) {
	m.width = w
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if m.width > 0 {
		questionStyle = questionStyle.Width(m.width)
	}
	b.WriteString(questionStyle.Render(m.Question) + "\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, OptionLabel(i), opt)
		style := lipgloss.NewStyle()
		if m.width > 0 {
			style = style.Width(m.width)
		}

		switch {
		case m.revealed && i == m.CorrectIndex:
			style = style.Foreground(theme.Success).Bold(true)
		case m.Submitted && i == m.ChosenIndex:
			if m.revealed {
				style = style.Foreground(theme.Error).Bold(true)
			} else {
				style = style.Foreground(theme.Accent).Bold(true)
			}
		case m.Submitted:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		default:
			style = style.Foreground(theme.Text)
		}
		b.WriteString(style.Render(line) + "\n")
	}

	return b.String()
}

// IsCorrect returns true if the chosen option was revealed as correct.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.revealed && m.ChosenIndex == m.CorrectIndex
}
