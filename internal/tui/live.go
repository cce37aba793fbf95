// Package tui renders benchmark progress live in the terminal while a
// sweep runs.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/spanbench/internal/bench"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type progressMsg bench.Progress

type doneMsg struct {
	report *bench.Report
	err    error
}

type model struct {
	points   []bench.Progress
	current  bench.Progress
	done     bool
	err      error
	quitting bool
	cancel   context.CancelFunc
	width    int
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.cancel()
			if m.done {
				return m, tea.Quit
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case progressMsg:
		m.current = bench.Progress(msg)
		m.points = append(m.points, bench.Progress(msg))
		return m, nil
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(cyan.Render("spanbench") + dim.Render("  particle layout & dispatch sweep") + "\n\n")

	if m.current.Total > 0 {
		frac := float64(m.current.Done) / float64(m.current.Total)
		barWidth := 40
		filled := int(frac * float64(barWidth))
		bar := green.Render(strings.Repeat("█", filled)) + dim.Render(strings.Repeat("░", barWidth-filled))
		sb.WriteString(fmt.Sprintf("%s %s\n\n", bar,
			white.Render(fmt.Sprintf("%d/%d", m.current.Done, m.current.Total))))
	}

	// last few completed points, newest first
	show := len(m.points)
	if show > 12 {
		show = 12
	}
	sb.WriteString(dim.Render(fmt.Sprintf("%-14s %8s %14s", "METHOD", "N", "NS/OP")) + "\n")
	for i := len(m.points) - 1; i >= len(m.points)-show; i-- {
		p := m.points[i]
		line := fmt.Sprintf("%-14s %8d %14.1f", p.Method, p.N, p.MeanNs)
		if i == len(m.points)-1 {
			sb.WriteString(yellow.Render(line) + "\n")
		} else {
			sb.WriteString(white.Render(line) + "\n")
		}
	}

	sb.WriteString("\n")
	switch {
	case m.err != nil:
		sb.WriteString(yellow.Render(fmt.Sprintf("stopped: %v", m.err)) + "\n")
	case m.done:
		sb.WriteString(green.Render("sweep complete") + "\n")
	case m.quitting:
		sb.WriteString(dim.Render("cancelling...") + "\n")
	default:
		sb.WriteString(dim.Render("q to cancel") + "\n")
	}

	return sb.String()
}

// Run executes the sweep under a live view and returns the (possibly
// partial) report.
func Run(opts bench.Options) (*bench.Report, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := model{cancel: cancel, width: 80}
	p := tea.NewProgram(m)

	runner := bench.NewRunner(opts)
	runner.OnPoint = func(pr bench.Progress) {
		p.Send(progressMsg(pr))
	}

	var report *bench.Report
	var runErr error
	go func() {
		report, runErr = runner.Run(ctx)
		p.Send(doneMsg{report: report, err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		return nil, err
	}

	if runErr != nil && runErr != context.Canceled {
		return report, runErr
	}
	return report, nil
}
