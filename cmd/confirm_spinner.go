package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmDoneMsg struct {
	err error
}

type confirmSpinnerModel struct {
	spinner spinner.Model
	label   string
	confirm tea.Cmd
	err     error
	done    bool
}

func newConfirmSpinnerModel(label string, confirm tea.Cmd) confirmSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("203"))),
	)

	return confirmSpinnerModel{
		spinner: s,
		label:   label,
		confirm: confirm,
	}
}

func (m confirmSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.confirm)
}

func (m confirmSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case confirmDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m confirmSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runConfirmSpinner(ctx context.Context, output io.Writer, confirm func(context.Context) error) error {
	confirmCmd := func() tea.Msg {
		return confirmDoneMsg{err: confirm(ctx)}
	}

	p := tea.NewProgram(
		newConfirmSpinnerModel("Confirming emergency, locating you...", confirmCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(confirmSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
