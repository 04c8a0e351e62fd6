package dashboard

import (
	"errors"
	"io"

	"github.com/bnema/rumble-cli/internal/application"
	"github.com/bnema/rumble-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	render func(styles) string
	styles styles
	output string
}

func newModel(render func(styles) string) model {
	return model{
		render: render,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.render(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func run(render func(styles) string) (string, error) {
	p := tea.NewProgram(
		newModel(render),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

// Render draws the full dashboard screen for user.
func Render(user *domain.User, dashboard application.Dashboard, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderDashboard(user, dashboard, opts, s)
	})
}

func RenderRobots(robots []domain.Robot, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderRobotList(robots, opts, s)
	})
}

func RenderRobot(robot domain.Robot, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderRobot(robot, opts, s)
	})
}

func RenderStats(stats domain.DashboardStats) (string, error) {
	return run(func(s styles) string {
		return renderStats(stats, s)
	})
}
