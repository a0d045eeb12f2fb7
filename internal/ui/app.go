// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the terminal interface for adda.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/adda-tui/internal/auth"
	"github.com/jeranaias/adda-tui/internal/character"
	"github.com/jeranaias/adda-tui/internal/chat"
	"github.com/jeranaias/adda-tui/internal/store"
)

// =============================================================================
// SCREENS
// =============================================================================

// screen identifies which view the app is showing.
type screen int

const (
	screenOnboard screen = iota // first-run name prompt
	screenList                  // chat list
	screenPicker                // pick a character for a new chat
	screenScenario              // pick a scenario for a new group
	screenChat                  // conversation view
)

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root Bubble Tea model.
type App struct {
	screen screen
	theme  *Theme

	width  int
	height int

	// Domain
	store        *store.ChatStore
	orchestrator *chat.Orchestrator
	users        *auth.Manager

	// Chat list state
	listIndex int
	chats     []*store.Chat

	// Picker state
	pickerIndex int
	roster      []*character.Character
	scenarios   []character.Scenario

	// Active chat state
	activeChatID string
	viewport     viewport.Model
	input        textinput.Model
	spinner      spinner.Model
	typing       bool
	statusMsg    string

	// In-flight turn
	events <-chan chat.Event
	cancel context.CancelFunc
}

// NewApp creates the root model.
func NewApp(st *store.ChatStore, orch *chat.Orchestrator, users *auth.Manager) *App {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	first := screenList
	if users.Profile().Name == "" {
		first = screenOnboard
		input.Placeholder = "What should we call you?"
	}

	return &App{
		screen:       first,
		theme:        NewTheme(),
		store:        st,
		orchestrator: orch,
		users:        users,
		roster:       character.All(),
		scenarios:    character.Scenarios,
		input:        input,
		spinner:      sp,
		chats:        st.SortedChats(),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.Width = msg.Width
		a.theme.Height = msg.Height
		a.viewport = viewport.New(msg.Width, max(1, msg.Height-5))
		if a.screen == screenChat {
			a.refreshViewport()
		}
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			a.cancelTurn()
			return a, tea.Quit
		}
		switch a.screen {
		case screenOnboard:
			return a.updateOnboard(msg)
		case screenList:
			return a.updateList(msg)
		case screenPicker, screenScenario:
			return a.updatePicker(msg)
		case screenChat:
			return a.updateChat(msg)
		}

	case turnEventMsg:
		return a.handleTurnEvent(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// updateOnboard handles the first-run name prompt.
func (a *App) updateOnboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		name := strings.TrimSpace(a.input.Value())
		if name != "" {
			a.users.SetName(name)
			a.users.CompleteOnboarding()
			a.input.Reset()
			a.input.Placeholder = "Type a message..."
			a.screen = screenList
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// updateList handles the chat list screen.
func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.listIndex > 0 {
			a.listIndex--
		}
	case "down", "j":
		if a.listIndex < len(a.chats)-1 {
			a.listIndex++
		}
	case "n":
		a.pickerIndex = 0
		a.screen = screenPicker
	case "g":
		a.pickerIndex = 0
		a.screen = screenScenario
	case "enter":
		if len(a.chats) > 0 {
			a.openChat(a.chats[a.listIndex].ID)
		}
	}
	return a, nil
}

// updatePicker handles both the character picker and the scenario picker.
func (a *App) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	limit := len(a.roster)
	if a.screen == screenScenario {
		limit = len(a.scenarios)
	}

	switch msg.String() {
	case "esc", "q":
		a.screen = screenList
	case "up", "k":
		if a.pickerIndex > 0 {
			a.pickerIndex--
		}
	case "down", "j":
		if a.pickerIndex < limit-1 {
			a.pickerIndex++
		}
	case "enter":
		if a.screen == screenPicker {
			c := a.roster[a.pickerIndex]
			chat := a.store.GetOrCreateIndividualChat(c.ID)
			a.store.UpdateTitle(chat.ID, c.Name)
			a.openChat(chat.ID)
		} else {
			sc := a.scenarios[a.pickerIndex]
			group := store.NewGroupChat(sc.Name, sc.CharacterIDs, sc.ID)
			a.store.CreateChat(group)
			a.openChat(group.ID)
		}
	}
	return a, nil
}

// openChat switches to the conversation view.
func (a *App) openChat(chatID string) {
	a.activeChatID = chatID
	a.screen = screenChat
	a.statusMsg = ""
	a.input.Reset()
	a.input.Focus()
	if a.viewport.Width == 0 {
		a.viewport = viewport.New(max(1, a.width), max(1, a.height-5))
	}
	a.refreshViewport()
	a.viewport.GotoBottom()
}

// =============================================================================
// HELPERS
// =============================================================================

// truncate shortens s to the given display width.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// chatLabel renders one chat-list row.
func (a *App) chatLabel(c *store.Chat) string {
	title := c.Title
	if c.Type == store.ChatGroup {
		title = "👥 " + title
	} else if ch := character.Get(c.CharacterIDs[0]); ch != nil {
		title = ch.AvatarEmoji + " " + ch.Name
	}
	preview := c.LastMessage
	if preview == "" {
		preview = "say hi!"
	}
	return fmt.Sprintf("%s  %s", title, a.theme.ListPreview.Render(truncate(preview, 40)))
}
