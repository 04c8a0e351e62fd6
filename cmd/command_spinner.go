package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/rumble-cli/internal/domain"
)

type commandResultMsg struct {
	robot domain.Robot
	err   error
}

// commandSpinnerModel tracks one in-flight robot command. Its last frame stays on screen as
// the outcome line: the status the server confirmed, or the refusal kind.
type commandSpinnerModel struct {
	spinner spinner.Model
	robotID domain.RobotID
	command string
	send    tea.Cmd
	started time.Time
	now     func() time.Time

	robot   domain.Robot
	err     error
	elapsed time.Duration
	done    bool
}

var (
	commandOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	commandFailedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	commandMetaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func commandSpinnerColor(command string) lipgloss.Color {
	switch domain.Command(command) {
	case domain.CommandStart:
		return lipgloss.Color("42")
	case domain.CommandCharge:
		return lipgloss.Color("33")
	case domain.CommandMaintenance:
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("69")
	}
}

func newCommandSpinnerModel(robotID domain.RobotID, command string, send tea.Cmd, now func() time.Time) commandSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(commandSpinnerColor(command))),
	)

	return commandSpinnerModel{
		spinner: s,
		robotID: robotID,
		command: command,
		send:    send,
		started: now(),
		now:     now,
	}
}

func (m commandSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.send)
}

func (m commandSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case commandResultMsg:
		m.done = true
		m.robot = msg.robot
		m.err = msg.err
		m.elapsed = m.now().Sub(m.started)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m commandSpinnerModel) View() string {
	if !m.done {
		return fmt.Sprintf("%s %s %s %s", m.spinner.View(), m.command, commandMetaStyle.Render("->"), m.robotID)
	}

	took := commandMetaStyle.Render(fmt.Sprintf("(%s)", m.elapsed.Round(time.Millisecond)))
	if m.err != nil {
		return fmt.Sprintf("%s %s refused %s: %s %s\n",
			commandFailedStyle.Render("x"), m.robotID, m.command, domain.KindOf(m.err), took)
	}

	return fmt.Sprintf("%s %s is now %s %s\n",
		commandOKStyle.Render("ok"), m.robotID, m.robot.Status, took)
}

// runCommandSpinner animates on output while send runs and leaves the outcome line behind.
func runCommandSpinner(
	ctx context.Context,
	output io.Writer,
	robotID domain.RobotID,
	command string,
	now func() time.Time,
	send func(context.Context) (domain.Robot, error),
) (domain.Robot, error) {
	sendCmd := func() tea.Msg {
		robot, err := send(ctx)
		return commandResultMsg{robot: robot, err: err}
	}

	p := tea.NewProgram(
		newCommandSpinnerModel(robotID, command, sendCmd, now),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return domain.Robot{}, err
	}

	result, ok := finalModel.(commandSpinnerModel)
	if !ok {
		return domain.Robot{}, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.robot, result.err
}
