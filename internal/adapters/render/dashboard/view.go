package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/rumble-cli/internal/application"
	"github.com/bnema/rumble-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const batteryBarWidth = 20

type RenderOptions struct {
	Now time.Time
	// Selected picks the robot the map centre follows.
	Selected domain.RobotID
}

func renderDashboard(user *domain.User, dashboard application.Dashboard, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render("RUMBLE Dashboard")}
	if user != nil {
		lines = append(lines, s.header.Render(fmt.Sprintf("signed in as %s", userLabel(*user))))
	}

	lines = append(lines, s.section.Render(renderStats(dashboard.Stats, s)))

	lines = append(lines, s.section.Render(s.title.Render(fmt.Sprintf("My robots (%d)", len(dashboard.Owned)))))
	if len(dashboard.Owned) == 0 {
		lines = append(lines, s.empty.Render("No robots assigned to this account."))
	}
	for _, robot := range dashboard.Owned {
		lines = append(lines, s.section.Render(renderRobot(robot, opts, s)))
	}

	if len(dashboard.Shared) > 0 {
		lines = append(lines, s.section.Render(s.title.Render(fmt.Sprintf("Shared with me (%d)", len(dashboard.Shared)))))
		for _, robot := range dashboard.Shared {
			lines = append(lines, s.section.Render(renderRobot(robot, opts, s)))
		}
	}

	all := append(append([]domain.Robot{}, dashboard.Owned...), dashboard.Shared...)
	center := domain.MapCenter(all, opts.Selected)
	lines = append(lines, s.section.Render(s.meta.Render(fmt.Sprintf("map centre: %.6f, %.6f", center.Lat, center.Lng))))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderStats(stats domain.DashboardStats, s styles) string {
	rows := []string{
		statLine("active robots", fmt.Sprintf("%d / %d", stats.ActiveRobots, stats.TotalRobots), s),
		statLine("trash collected", fmt.Sprintf("%.1f kg", stats.TotalTrashCollectedKg), s),
		statLine("average battery", fmt.Sprintf("%.0f%%", stats.AverageBatteryLevel), s),
		statLine("charging", fmt.Sprintf("%d", stats.RobotsCharging), s),
		statLine("in maintenance", fmt.Sprintf("%d", stats.RobotsInMaintenance), s),
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func statLine(label, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(fmt.Sprintf("%-16s", label+":")), " ", s.statValue.Render(value))
}

func renderRobotList(robots []domain.Robot, opts RenderOptions, s styles) string {
	lines := []string{s.header.Render(fmt.Sprintf("robots: %d", len(robots)))}
	if len(robots) == 0 {
		lines = append(lines, s.empty.Render("No robots to show."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, robot := range robots {
		lines = append(lines, s.section.Render(renderRobot(robot, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRobot(robot domain.Robot, opts RenderOptions, s styles) string {
	title := s.robot.Render(fmt.Sprintf("%s (%s)", robotName(robot), robot.ID))
	status := lipgloss.NewStyle().Foreground(statusColor(string(robot.Status))).Render(robot.Status.Label())
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, " ", status)
	if robot.Shared() {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", s.sharedTag.Render("[shared]"))
	}

	parts := []string{
		header,
		batteryLine(robot.BatteryLevel, s),
		s.detail.Render(fmt.Sprintf("location: %s", locationLabel(robot.Location))),
		s.detail.Render(fmt.Sprintf("trash collected: %.1f kg", robot.TrashCollectedKg)),
		s.detail.Render(fmt.Sprintf("last collection: %s", formatPast(robot.LastCollection, opts.Now))),
		s.detail.Render(fmt.Sprintf("next scheduled: %s", formatUpcoming(robot.NextScheduled, opts.Now))),
	}
	if robot.Shared() {
		parts = append(parts, s.meta.Render(fmt.Sprintf("shared by: %s", robot.SharedBy)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func batteryLine(level int, s styles) string {
	band := domain.BatteryBandOf(level)
	color := batteryColor(string(band))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("battery:"),
		" ",
		renderBatteryBar(level, batteryBarWidth, color, s),
		" ",
		lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%3d%% (%s)", level, band)),
	)
}

func renderBatteryBar(level int, width int, color lipgloss.Color, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * float64(clampLevel(level)) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

func robotName(robot domain.Robot) string {
	if name := strings.TrimSpace(robot.Name); name != "" {
		return name
	}
	return "Unnamed robot"
}

func userLabel(user domain.User) string {
	name := strings.TrimSpace(user.Name)
	if name == "" {
		name = user.Username
	}
	if name == "" {
		return user.Email
	}
	return fmt.Sprintf("%s <%s>", name, user.Email)
}

func locationLabel(location *domain.Location) string {
	if location == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.6f, %.6f", location.Lat, location.Lng)
}

func formatTimestamp(at, now time.Time) string {
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := at.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return at.Format("15:04")
	}

	return at.Format("15:04 on 02 Jan")
}

func formatPast(at, now time.Time) string {
	if at.IsZero() {
		return "never"
	}
	if now.IsZero() || at.After(now) {
		return formatTimestamp(at, now)
	}

	return fmt.Sprintf("%s (%s)", formatTimestamp(at, now), relative(now.Sub(at), "ago"))
}

func formatUpcoming(at, now time.Time) string {
	if at.IsZero() {
		return "not scheduled"
	}
	if now.IsZero() {
		return formatTimestamp(at, now)
	}
	if at.Before(now) {
		return fmt.Sprintf("%s (overdue)", formatTimestamp(at, now))
	}

	return fmt.Sprintf("%s (in %s)", formatTimestamp(at, now), relative(at.Sub(now), ""))
}

func relative(d time.Duration, suffix string) string {
	var text string
	switch {
	case d < time.Hour:
		minutes := int(math.Ceil(d.Minutes()))
		text = plural(max(minutes, 1), "minute")
	case d < 24*time.Hour:
		text = plural(int(math.Ceil(d.Hours())), "hour")
	default:
		text = plural(int(math.Ceil(d.Hours()/24)), "day")
	}

	if suffix == "" {
		return text
	}
	return text + " " + suffix
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
