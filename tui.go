package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type statusTickMsg struct{}

func statusTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg { return statusTickMsg{} })
}

// pickerModel lists instruments, then the songs of the chosen instrument.
type pickerModel struct {
	ctx      context.Context
	player   *Player
	songsDir string

	instruments []string
	songs       []Song
	instrument  string // empty while choosing an instrument
	cursor      int
	status      Status
	message     string
	err         error
}

func newPickerModel(ctx context.Context, player *Player, songsDir string) pickerModel {
	m := pickerModel{ctx: ctx, player: player, songsDir: songsDir}
	m.instruments, m.err = ListInstruments(songsDir)
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return statusTick()
}

func (m pickerModel) itemCount() int {
	if m.instrument == "" {
		return len(m.instruments)
	}
	return len(m.songs)
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusTickMsg:
		m.status = m.player.Status()
		return m, statusTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			_ = m.player.Stop()
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.itemCount()-1 {
				m.cursor++
			}
		case "esc", "backspace":
			if m.instrument != "" {
				m.instrument = ""
				m.songs = nil
				m.cursor = 0
			}
		case "s":
			if err := m.player.Stop(); err != nil {
				m.message = "nothing is playing"
			} else {
				m.message = "stopping..."
			}
		case "enter":
			m = m.choose()
		}
	}
	return m, nil
}

func (m pickerModel) choose() pickerModel {
	if m.cursor >= m.itemCount() {
		return m
	}
	if m.instrument == "" {
		inst := m.instruments[m.cursor]
		songs, err := ListSongs(m.songsDir, inst)
		if err != nil {
			m.err = err
			return m
		}
		m.instrument, m.songs, m.cursor, m.err = inst, songs, 0, nil
		return m
	}
	song := m.songs[m.cursor]
	if err := m.player.Start(m.ctx, song.Path); err != nil {
		m.message = err.Error()
		return m
	}
	m.message = "playing " + song.Name
	m.status = m.player.Status()
	return m
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if m.instrument == "" {
		b.WriteString(titleStyle.Render("Select instrument"))
	} else {
		b.WriteString(titleStyle.Render("Select song: " + m.instrument))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	items := m.instruments
	if m.instrument != "" {
		items = make([]string, len(m.songs))
		for i, s := range m.songs {
			items[i] = s.Name
		}
	}
	for i, it := range items {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + it))
		} else {
			b.WriteString("  " + it)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(dimStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter:select/play  s:stop  esc:back  q:quit"))
	b.WriteString("\n")
	return b.String()
}

func (m pickerModel) statusLine() string {
	st := m.status
	mode := "serial"
	if st.Simulated {
		mode = "simulation"
	}
	if st.Playing {
		return fmt.Sprintf("PLAY  %s  %d/%d groups (%.0f%%)  [%s]", st.Song, st.Group, st.Groups, st.Progress, mode)
	}
	if st.Last != nil {
		return fmt.Sprintf("IDLE  last: %s %s  [%s]", st.Last.Song, st.Last.Outcome, mode)
	}
	return fmt.Sprintf("IDLE  [%s]", mode)
}

// RunPicker runs the terminal song picker until the user quits.
func RunPicker(ctx context.Context, player *Player, songsDir string) error {
	p := tea.NewProgram(newPickerModel(ctx, player, songsDir), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
