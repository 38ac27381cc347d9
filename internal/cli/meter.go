package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"voice-task-board/pkg/recorder"
)

const meterWidth = 32

// audioRecorder is the part of recorder.Recorder the meter drives.
type audioRecorder interface {
	Start(ctx context.Context) error
	Stop() (recorder.Blob, error)
	Levels() <-chan float64
}

type levelMsg float64

type tickMsg time.Time

type startedMsg struct{ err error }

var (
	meterTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	meterLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	meterMidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	meterHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	meterHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	meterErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// meterModel shows a live level bar while recording.
// Enter or space finishes the recording, esc or ctrl+c cancels it.
type meterModel struct {
	ctx     context.Context
	rec     audioRecorder
	started time.Time
	now     time.Time
	level   float64

	blob      recorder.Blob
	done      bool
	cancelled bool
	err       error
}

func newMeterModel(ctx context.Context, rec audioRecorder) meterModel {
	return meterModel{ctx: ctx, rec: rec}
}

func (m meterModel) Init() tea.Cmd {
	return func() tea.Msg {
		return startedMsg{err: m.rec.Start(m.ctx)}
	}
}

func waitForLevel(levels <-chan float64) tea.Cmd {
	return func() tea.Msg {
		return levelMsg(<-levels)
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m meterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.started = time.Now()
		m.now = m.started
		return m, tea.Batch(waitForLevel(m.rec.Levels()), tick())

	case levelMsg:
		m.level = float64(msg)
		return m, waitForLevel(m.rec.Levels())

	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ":
			if m.started.IsZero() {
				return m, nil
			}
			m.blob, m.err = m.rec.Stop()
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			if !m.started.IsZero() {
				_, _ = m.rec.Stop()
			}
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m meterModel) View() string {
	title := meterTitleStyle.Render(" voicectl ")
	if m.err != nil {
		return fmt.Sprintf("%s\n\n  %s\n", title, meterErrStyle.Render(m.err.Error()))
	}
	if m.done || m.cancelled {
		return ""
	}
	if m.started.IsZero() {
		return fmt.Sprintf("%s\n\n  Opening microphone...\n", title)
	}

	elapsed := m.now.Sub(m.started).Truncate(100 * time.Millisecond)
	help := meterHelpStyle.Render("enter/space: finish | esc: cancel")
	return fmt.Sprintf("%s\n\n  ● REC %5.1fs  %s\n\n  %s\n", title, elapsed.Seconds(), renderBar(m.level, meterWidth), help)
}

// renderBar draws level in [0,1] as a bar of the given width.
func renderBar(level float64, width int) string {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	filled := int(level*float64(width) + 0.5)

	style := meterLowStyle
	switch {
	case level > 0.85:
		style = meterHighStyle
	case level > 0.6:
		style = meterMidStyle
	}
	return style.Render(strings.Repeat("█", filled)) + meterHelpStyle.Render(strings.Repeat("░", width-filled))
}
