// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

// Package compose is the interactive editor behind "tootctl post --edit".
package compose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CharLimit is the default post length on Mastodon instances.
const CharLimit = 500

var (
	// ErrAborted is returned when the user leaves the editor without posting.
	ErrAborted = errors.New("compose aborted")
	// ErrEmpty is returned when the user submits an empty post.
	ErrEmpty = errors.New("post is empty")
)

// Compose runs the editor seeded with initial and returns the submitted text.
func Compose(initial string) (string, error) {
	p := tea.NewProgram(newModel(initial))
	m, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run editor: %w", err)
	}
	return m.(model).result()
}

type model struct {
	input     textarea.Model
	submitted bool
	aborted   bool
}

func newModel(initial string) model {
	ta := textarea.New()
	ta.Placeholder = "What's on your mind?"
	ta.CharLimit = CharLimit
	ta.ShowLineNumbers = false
	ta.SetWidth(72)
	ta.SetHeight(8)
	ta.Cursor.SetMode(cursor.CursorBlink)
	ta.SetValue(initial)
	ta.Focus()

	return model{input: ta}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+d":
			m.submitted = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 4 {
			m.input.SetWidth(msg.Width - 2)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#623CE4"))
	helpStyle := lipgloss.NewStyle().Faint(true)

	remaining := CharLimit - len([]rune(m.input.Value()))

	var b strings.Builder
	b.WriteString(headerStyle.Render("New post"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d left  CTRL+D: post  ESC: cancel", remaining)))
	b.WriteString("\n")
	return b.String()
}

// result reports the outcome of a finished editor session.
func (m model) result() (string, error) {
	if m.aborted || !m.submitted {
		return "", ErrAborted
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}
