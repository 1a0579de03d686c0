package tui

import (
	"context"
	"fmt"

	"wrench/internal/kb"

	tea "github.com/charmbracelet/bubbletea"
)

type welcomeModel struct {
	chunks int
	err    error
	ready  bool // true once the load has completed
}

// knowledgeLoadedMsg is sent after the knowledge base finishes loading.
type knowledgeLoadedMsg struct {
	chunks int
	err    error
}

// loadKnowledge opens the knowledge base in the background. Load seeds the
// bundled samples on a fresh install, so this can take a few seconds the
// first time.
func loadKnowledge(knowledge *kb.KnowledgeBase) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := knowledge.Load(ctx); err != nil {
			return knowledgeLoadedMsg{err: err}
		}
		n, err := knowledge.Count(ctx)
		if err != nil {
			return knowledgeLoadedMsg{err: err}
		}
		return knowledgeLoadedMsg{chunks: n}
	}
}

func (m welcomeModel) Update(msg tea.Msg) (welcomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case knowledgeLoadedMsg:
		m.chunks = msg.chunks
		m.err = msg.err
		m.ready = true
	}
	return m, nil
}

func (m welcomeModel) View(width, height int) string {
	s := "\n"
	s += titleStyle.Render("  ◆ Wrench") + "\n"
	s += subtitleStyle.Render("  Car repair assistance powered by RAG") + "\n\n"

	if !m.ready {
		s += dimStyle.Render("  Loading knowledge base...") + "\n"
		return s
	}

	if m.err != nil {
		s += errorStyle.Render("  ✗ Knowledge base unavailable") + "\n"
		s += dimStyle.Render("    "+m.err.Error()) + "\n"
		return s
	}

	s += successStyle.Render(fmt.Sprintf("  ✓ Knowledge base ready (%d chunks)", m.chunks)) + "\n"
	s += "\n"
	s += dimStyle.Render("  Press Enter to start chatting, q to quit") + "\n"
	return s
}
