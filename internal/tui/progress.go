// Package tui renders batch progress in the terminal while the dispatcher
// works in the background.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pixi/internal/render"
)

const (
	barWidth         = 40
	historyCapacity  = 120
	histogramBuckets = 16
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	frameStyle  = lipgloss.NewStyle().Padding(1, 2)
)

type TickMsg time.Time

// Model tracks a running batch render: the dispatcher doing the work, the
// session it writes into, and a cancel func wired to the quit keys.
type Model struct {
	session    *render.Session
	dispatcher *render.Dispatcher
	cancel     context.CancelFunc

	title    string
	started  time.Time
	rate     []float64
	lastDone int64
	lastTick time.Time
}

func NewModel(session *render.Session, dispatcher *render.Dispatcher, cancel context.CancelFunc, title string) Model {
	now := time.Now()
	return Model{
		session:    session,
		dispatcher: dispatcher,
		cancel:     cancel,
		title:      title,
		started:    now,
		rate:       make([]float64, 0, historyCapacity),
		lastTick:   now,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/5, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case TickMsg:
		now := time.Time(msg)
		done := m.dispatcher.Done()
		dt := now.Sub(m.lastTick).Seconds()
		if dt > 0 {
			m.rate = append(m.rate, float64(done-m.lastDone)/dt)
			if len(m.rate) > historyCapacity {
				m.rate = m.rate[1:]
			}
		}
		m.lastDone, m.lastTick = done, now

		if m.dispatcher.Finished() {
			return m, tea.Quit
		}
		return m, tea.Tick(time.Second/5, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	done, total := m.dispatcher.Done(), int64(m.dispatcher.Total())
	frac := 0.0
	if total > 0 {
		frac = float64(done) / float64(total)
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	filled := int(frac * barWidth)
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
	s.WriteString(barStyle.Render(bar) + fmt.Sprintf(" %5.1f%%\n\n", frac*100))

	elapsed := time.Since(m.started)
	s.WriteString(labelStyle.Render("Seeds") + valueStyle.Render(fmt.Sprintf("%d / %d", done, total)) + "\n")
	s.WriteString(labelStyle.Render("Elapsed") + valueStyle.Render(elapsed.Truncate(100*time.Millisecond).String()) + "\n")
	if rate := m.currentRate(); rate > 0 {
		s.WriteString(labelStyle.Render("Rate") + valueStyle.Render(fmt.Sprintf("%.0f seeds/s", rate)) + "\n")
		remaining := time.Duration(float64(total-done)/rate) * time.Second
		s.WriteString(labelStyle.Render("ETA") + valueStyle.Render(remaining.Truncate(time.Second).String()) + "\n")
	}
	s.WriteString(labelStyle.Render("Coverage") + valueStyle.Render(fmt.Sprintf("%d px", m.session.Coverage())) + "\n")

	if hist := m.session.Histogram(histogramBuckets); len(hist) > 1 {
		data := make([]float64, len(hist))
		for i, v := range hist {
			data[i] = float64(v)
		}
		chart := asciigraph.Plot(data, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Intensity"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("Q:Cancel"))
	return frameStyle.Render(s.String())
}

func (m Model) currentRate() float64 {
	if len(m.rate) == 0 {
		return 0
	}
	// Average the recent samples so the ETA does not jitter.
	n := len(m.rate)
	if n > 10 {
		n = 10
	}
	sum := 0.0
	for _, r := range m.rate[len(m.rate)-n:] {
		sum += r
	}
	return sum / float64(n)
}

// Run drives the TUI until the render completes or the user cancels.
func Run(session *render.Session, dispatcher *render.Dispatcher, cancel context.CancelFunc, title string) error {
	p := tea.NewProgram(NewModel(session, dispatcher, cancel, title))
	_, err := p.Run()
	return err
}
