package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"pharmlet/internal/config"
	"pharmlet/internal/pool"
	"pharmlet/internal/router"
	"pharmlet/internal/screen"
	"pharmlet/internal/screens/history"
	"pharmlet/internal/screens/quiz"
	sess "pharmlet/internal/session"
	"pharmlet/internal/store"
	"pharmlet/internal/ui/components"
	"pharmlet/internal/ui/theme"
)

// Deps carries everything the home screen needs to launch quizzes.
type Deps struct {
	Repo    store.SessionRepo
	Records []pool.DrugRecord
	Cfg     config.Config
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu       components.Menu
	queueSize  int
	recentRuns int
	lastKey    *store.SessionKey
	hasResume  bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. Counters are loaded up front so the
// menu can annotate and disable entries.
func New(deps Deps) *HomeScreen {
	ctx := context.Background()

	var (
		queue   []store.ReviewEntry
		recent  []store.HistoryEntry
		lastKey *store.SessionKey
	)
	if deps.Repo != nil {
		queue, _ = deps.Repo.ReviewQueue(ctx, 0)
		recent, _ = deps.Repo.RecentHistory(ctx, store.HistoryCap)
		lastKey, _ = deps.Repo.LastActive(ctx)
	}

	hasResume := false
	if lastKey != nil {
		if live, _ := deps.Repo.LoadLive(ctx, *lastKey); live != nil {
			hasResume = true
		}
	}

	items := []components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd {
			return pushQuiz(sess.BuildInput{
				Key:     sess.Identity{QuizID: "practice", Mode: deps.Cfg.DefaultMode},
				Title:   "Drug Practice",
				Records: deps.Records,
				Limit:   deps.Cfg.QuestionLimit,
				Repo:    deps.Repo,
			})
		}},
	}

	if hasResume {
		items = append(items, components.MenuItem{
			Label:  "RESUME",
			Detail: fmt.Sprintf("%s · %s", lastKey.QuizID, lastKey.Mode),
			Action: func() tea.Cmd {
				return pushQuiz(resumeInput(deps, *lastKey))
			},
		})
	}

	queued := make([]store.PersistedQuestion, 0, len(queue))
	for _, e := range queue {
		queued = append(queued, e.Question)
	}
	items = append(items, components.MenuItem{
		Label:    "REVIEW QUEUE",
		Detail:   fmt.Sprintf("%d queued", len(queued)),
		Disabled: len(queued) == 0,
		Action: func() tea.Cmd {
			return pushQuiz(sess.BuildInput{
				Key:    sess.Identity{QuizID: "review-queue", Mode: "review"},
				Queued: queued,
				Repo:   deps.Repo,
			})
		},
	})

	items = append(items,
		components.MenuItem{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Repo)}
			}
		}},
		components.MenuItem{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	return &HomeScreen{
		menu:       components.NewMenu(items),
		queueSize:  len(queued),
		recentRuns: len(recent),
		lastKey:    lastKey,
		hasResume:  hasResume,
	}
}

// resumeInput rebuilds the session input for the last active key. A
// quiz file under the quiz directory takes precedence over generated
// questions, matching the launch path, so a file-backed save resumes
// against the same question source it was written from.
func resumeInput(deps Deps, key store.SessionKey) sess.BuildInput {
	in := sess.BuildInput{
		Key:     sess.Identity{QuizID: key.QuizID, Mode: key.Mode},
		Records: deps.Records,
		Limit:   deps.Cfg.QuestionLimit,
		Repo:    deps.Repo,
		Resume:  true,
	}
	if file, err := pool.FindQuizFile(deps.Cfg.QuizDir, key.QuizID); err == nil && file != nil {
		in.File = file
	}
	return in
}

func pushQuiz(in sess.BuildInput) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quiz.New(in)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := theme.Title.Render("PHARMLET") + "\n" +
		theme.Subtitle.Render("pharmacology self-quiz")

	stats := fmt.Sprintf("%d completed runs   ·   %d in review queue",
		h.recentRuns, h.queueSize)
	statsCard := components.Card(
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(stats), cw)

	menuCard := components.Card(h.menu.View(), cw)

	content := strings.Join([]string{
		components.Card(title, cw),
		statsCard,
		menuCard,
	}, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
