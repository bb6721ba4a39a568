package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"pharmlet/internal/config"
	"pharmlet/internal/pool"
	"pharmlet/internal/router"
	"pharmlet/internal/screen"
	"pharmlet/internal/screens/home"
	"pharmlet/internal/screens/quiz"
	"pharmlet/internal/session"
	"pharmlet/internal/store"
	"pharmlet/internal/ui/layout"
)

// Options carries the dependencies the UI runs on.
type Options struct {
	// Repo persists sessions. Nil runs without saving.
	Repo store.SessionRepo

	// Records is the master drug pool for generated quizzes.
	Records []pool.DrugRecord

	// Cfg is the loaded application config.
	Cfg config.Config

	// Start, when set, skips the home screen and opens a quiz directly.
	Start *session.BuildInput
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	startCmd tea.Cmd
	width    int
	height   int
}

// newAppModel creates a new AppModel with the home screen. When
// opts.Start is set, a quiz screen is pushed on top at startup.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Deps{
		Repo:    opts.Repo,
		Records: opts.Records,
		Cfg:     opts.Cfg,
	})
	m := AppModel{
		router: router.New(homeScreen),
	}

	if opts.Start != nil {
		m.startCmd = m.router.Push(quiz.New(*opts.Start))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.startCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	var stats layout.HeaderStats
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatsProvider); ok {
			stats = sp.HeaderStats()
		}
	}

	header := layout.RenderHeader(title, stats, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
