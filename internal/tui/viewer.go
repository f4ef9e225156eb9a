package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/akoven/enslab/internal/store"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)
)

type viewState int

const (
	stateList viewState = iota
	stateDetail
)

type model struct {
	st    *store.Store
	runs  []store.RunMeta
	state viewState

	cursor   int
	selected store.RunMeta
	data     store.RunData
	loadErr  error

	width  int
	height int
}

// Run opens the interactive run browser over a store.
func Run(st *store.Store) error {
	runs, err := st.List(context.Background())
	if err != nil {
		return err
	}
	m := model{st: st, runs: runs, width: 80, height: 24}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.state == stateList && m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.state == stateList && m.cursor < len(m.runs)-1 {
			m.cursor++
		}
	case "enter":
		if m.state == stateList && len(m.runs) > 0 {
			m.selected = m.runs[m.cursor]
			m.data, m.loadErr = m.st.LoadData(m.selected.ID)
			m.state = stateDetail
		}
	case "esc":
		if m.state == stateDetail {
			m.state = stateList
		}
	}
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateDetail:
		return m.viewDetail()
	default:
		return m.viewList()
	}
}

func (m model) viewList() string {
	var b strings.Builder
	b.WriteString(cyan.Render("enslab runs"))
	b.WriteString("\n\n")

	if len(m.runs) == 0 {
		b.WriteString(dim.Render("no runs stored yet"))
		b.WriteString("\n")
		return b.String()
	}

	for i, run := range m.runs {
		line := fmt.Sprintf("%-24s %-8s %4d cfg %4d atoms  %9.2f K",
			run.ID, run.Kernel, run.Configs, run.Atoms, run.Summary.MeanEnergy)
		if i == m.cursor {
			b.WriteString(green.Render("> " + line))
		} else {
			b.WriteString(white.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("↑/↓ select · enter view · q quit"))
	return b.String()
}

func (m model) viewDetail() string {
	var b strings.Builder
	b.WriteString(cyan.Render("run " + m.selected.ID))
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(yellow.Render("failed to load results: " + m.loadErr.Error()))
		b.WriteString("\n\n")
		b.WriteString(dim.Render("esc back · q quit"))
		return b.String()
	}

	if len(m.data.Energies) > 1 {
		width := m.width - 12
		if width > 70 {
			width = 70
		}
		if width < 20 {
			width = 20
		}
		plot := asciigraph.Plot(m.data.Energies,
			asciigraph.Height(10),
			asciigraph.Width(width),
			asciigraph.Caption("energy per configuration (K)"))
		b.WriteString(plot)
		b.WriteString("\n\n")
	}

	s := m.selected.Summary
	statLines := []string{
		fmt.Sprintf("kernel          %s", m.selected.Kernel),
		fmt.Sprintf("configurations  %d", s.Configs),
		fmt.Sprintf("atoms           %d", s.Atoms),
		fmt.Sprintf("mean energy     %.3f K", s.MeanEnergy),
		fmt.Sprintf("energy std      %.3f K", s.EnergyStd),
		fmt.Sprintf("weighted energy %.3f K", s.WeightedEnergy),
		fmt.Sprintf("mean |force|    %.3f K/Å", s.MeanForceNorm),
		fmt.Sprintf("max force       %.3f K/Å", s.MaxForce),
	}
	b.WriteString(panel.Render(strings.Join(statLines, "\n")))
	b.WriteString("\n\n")
	b.WriteString(dim.Render("esc back · q quit"))
	return b.String()
}
