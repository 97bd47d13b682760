package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// errPromptCancelled is returned when the user leaves a prompt with
// esc or ctrl+c. It wraps context.Canceled so main exits with 130.
var errPromptCancelled = fmt.Errorf("prompt cancelled: %w", context.Canceled)

// stdinIsTerminal reports whether prompts can be shown.
func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptModel asks for one line of text.
type promptModel struct {
	label     string
	input     textinput.Model
	value     string
	done      bool
	cancelled bool
	err       string
	validate  func(string) error
}

func newPromptModel(label, placeholder string, validate func(string) error) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = styleIconInfo.Render(iconInfo) + " "
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()
	return promptModel{label: label, input: ti, validate: validate}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			v := strings.TrimSpace(m.input.Value())
			if v == "" {
				v = m.input.Placeholder
			}
			if m.validate != nil {
				if err := m.validate(v); err != nil {
					m.err = err.Error()
					return m, nil
				}
			}
			m.value = v
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = ""
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != "" {
		b.WriteString(StyleWarning.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render("enter confirm  esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// prompt reads one value interactively. An empty answer takes the
// placeholder.
func prompt(in io.Reader, out io.Writer, label, placeholder string, validate func(string) error) (string, error) {
	p := tea.NewProgram(newPromptModel(label, placeholder, validate), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	m := final.(promptModel)
	if m.cancelled {
		return "", errPromptCancelled
	}
	if m.value == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(m.label))
	}
	return m.value, nil
}
