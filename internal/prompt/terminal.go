package prompt

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle     = lipgloss.NewStyle().Bold(true)
	countdownStyle = lipgloss.NewStyle().Faint(true)
)

// Terminal is the interactive Prompter. Each capture runs a small
// bubbletea program; the countdown is driven by one-second ticks
// rather than a busy poll.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal returns a Prompter on stdin/stdout.
func NewTerminal() *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stdout}
}

// NewTerminalWithIO returns a Prompter on explicit streams. Test seam.
func NewTerminalWithIO(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Line implements Prompter.
func (t *Terminal) Line(ctx context.Context, label string, timeout time.Duration) (string, bool, error) {
	input := textinput.New()
	input.Prompt = "> "
	input.Focus()

	model := lineModel{
		input:     input,
		label:     label,
		remaining: int(timeout.Seconds()),
	}

	final, err := t.run(ctx, model)
	if err != nil {
		return "", false, err
	}

	m := final.(lineModel)
	if m.canceled {
		return "", false, ErrCanceled
	}
	if m.timedOut {
		return "", true, nil
	}
	return m.input.Value(), false, nil
}

// Multiline implements Prompter. The capture ends with esc or ctrl+d;
// no timeout applies, matching the original behavior where only the
// initial menu response is deadline-bound.
func (t *Terminal) Multiline(ctx context.Context, label string) (string, error) {
	area := textarea.New()
	area.Placeholder = "..."
	area.Focus()

	model := multilineModel{area: area, label: label}

	final, err := t.run(ctx, model)
	if err != nil {
		return "", err
	}

	m := final.(multilineModel)
	if m.canceled {
		return "", ErrCanceled
	}
	return strings.TrimSpace(m.area.Value()), nil
}

func (t *Terminal) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model,
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithContext(ctx),
	)
	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrCanceled
		}
		return nil, err
	}
	return final, nil
}

// tickMsg advances the countdown once per second.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type lineModel struct {
	input     textinput.Model
	label     string
	remaining int // seconds until auto-record; <= 0 disables the deadline
	timedOut  bool
	canceled  bool
}

func (m lineModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.remaining > 0 {
		cmds = append(cmds, tick())
	}
	return tea.Batch(cmds...)
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		}
	case tickMsg:
		if m.remaining <= 0 {
			return m, nil
		}
		m.remaining--
		if m.remaining == 0 {
			m.timedOut = true
			return m, tea.Quit
		}
		return m, tick()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m lineModel) View() string {
	if m.timedOut || m.canceled {
		return ""
	}
	view := labelStyle.Render(m.label) + "\n" + m.input.View()
	if m.remaining > 0 {
		view += "\n" + countdownStyle.Render(fmt.Sprintf("auto-record in %ds", m.remaining))
	}
	return view + "\n"
}

type multilineModel struct {
	area     textarea.Model
	label    string
	canceled bool
}

func (m multilineModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m multilineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+d":
			return m, tea.Quit
		case "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m multilineModel) View() string {
	return labelStyle.Render(m.label) + "\n" +
		m.area.View() + "\n" +
		countdownStyle.Render("esc or ctrl+d to finish") + "\n"
}
