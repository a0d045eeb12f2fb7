// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the terminal interface for adda.
package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/adda-tui/internal/character"
	"github.com/jeranaias/adda-tui/internal/chat"
	"github.com/jeranaias/adda-tui/internal/store"
)

// =============================================================================
// TURN EVENT PLUMBING
// =============================================================================

// turnEventMsg carries one orchestrator event into the Bubble Tea loop.
// Closed is set when the turn's channel closed.
type turnEventMsg struct {
	event  chat.Event
	closed bool
}

// waitForEvent pumps the next orchestrator event as a Bubble Tea message.
func waitForEvent(ch <-chan chat.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return turnEventMsg{closed: true}
		}
		return turnEventMsg{event: ev}
	}
}

// =============================================================================
// CHAT SCREEN UPDATE
// =============================================================================

// updateChat handles keys on the conversation view.
func (a *App) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.cancelTurn()
		a.screen = screenList
		a.chats = a.store.SortedChats()
		if a.listIndex >= len(a.chats) {
			a.listIndex = 0
		}
		return a, nil

	case tea.KeyEnter:
		text := strings.TrimSpace(a.input.Value())
		if text == "" {
			return a, nil
		}
		return a.startTurn(func(ctx context.Context) (<-chan chat.Event, error) {
			return a.orchestrator.Send(ctx, a.activeChatID, text)
		})

	case tea.KeyCtrlR:
		return a.startTurn(func(ctx context.Context) (<-chan chat.Event, error) {
			return a.orchestrator.Regenerate(ctx, a.activeChatID)
		})
	}

	switch msg.String() {
	case "ctrl+m":
		// Toggle mute of the first muteable character in a group.
		a.toggleMute()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// startTurn kicks off a Send or Regenerate and begins pumping its events.
func (a *App) startTurn(begin func(context.Context) (<-chan chat.Event, error)) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	events, err := begin(ctx)
	if err != nil {
		cancel()
		switch {
		case errors.Is(err, chat.ErrChatBusy):
			a.statusMsg = "ruk ja, abhi reply aa raha hai..."
		case errors.Is(err, chat.ErrNoRegenTarget):
			a.statusMsg = "nothing to regenerate"
		default:
			a.statusMsg = a.theme.ErrorText.Render(err.Error())
		}
		return a, nil
	}

	a.cancel = cancel
	a.events = events
	a.typing = true
	a.statusMsg = ""
	a.input.Reset()
	return a, tea.Batch(a.spinner.Tick, waitForEvent(events))
}

// handleTurnEvent folds one orchestrator event into the view.
func (a *App) handleTurnEvent(msg turnEventMsg) (tea.Model, tea.Cmd) {
	if msg.closed {
		a.typing = false
		a.cancel = nil
		a.events = nil
		a.refreshViewport()
		a.viewport.GotoBottom()
		return a, nil
	}

	switch msg.event.Type {
	case chat.EventMessageAdded, chat.EventToken, chat.EventMessageSettled:
		if msg.event.ChatID == a.activeChatID {
			a.refreshViewport()
			a.viewport.GotoBottom()
		}
	case chat.EventTurnDone:
		a.typing = false
	}
	return a, waitForEvent(a.events)
}

// cancelTurn aborts any in-flight streaming.
func (a *App) cancelTurn() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.typing = false
}

// toggleMute flips the mute state of the highlighted group character. For
// simplicity the first unmuted character is muted; if all are muted the
// first is unmuted.
func (a *App) toggleMute() {
	c := a.store.GetChat(a.activeChatID)
	if c == nil || c.Type != store.ChatGroup {
		return
	}
	for _, id := range c.CharacterIDs {
		if !c.IsMuted(id) {
			a.store.MuteCharacter(a.activeChatID, id)
			a.statusMsg = "muted " + displayName(id)
			return
		}
	}
	a.store.UnmuteCharacter(a.activeChatID, c.CharacterIDs[0])
	a.statusMsg = "unmuted " + displayName(c.CharacterIDs[0])
}

func displayName(characterID string) string {
	if c := character.Get(characterID); c != nil {
		return c.Name
	}
	return characterID
}

// =============================================================================
// RENDERING
// =============================================================================

// refreshViewport re-renders the active chat transcript.
func (a *App) refreshViewport() {
	if a.activeChatID == "" {
		return
	}
	msgs := a.store.Messages(a.activeChatID)
	var sb strings.Builder
	if len(msgs) == 0 {
		if c := a.store.GetChat(a.activeChatID); c != nil && c.Type == store.ChatIndividual {
			if starters := character.StartersFor(c.CharacterIDs[0]); len(starters) > 0 {
				sb.WriteString(a.theme.ListPreview.Render("Kuch bolna hai? Try:"))
				sb.WriteString("\n")
				for _, s := range starters {
					sb.WriteString(a.theme.ListPreview.Render("  • " + s))
					sb.WriteString("\n")
				}
				sb.WriteString("\n")
			}
		}
	}
	for _, m := range msgs {
		sb.WriteString(a.renderMessage(m))
		sb.WriteString("\n")
	}
	if a.typing {
		sb.WriteString(a.theme.TypingIndicator.Render("typing..."))
		sb.WriteString("\n")
	}
	a.viewport.SetContent(sb.String())
}

// renderMessage renders a single transcript entry.
func (a *App) renderMessage(m *store.Message) string {
	ts := a.theme.Timestamp.Render(time.UnixMilli(m.Timestamp).Format("15:04"))

	var line string
	if m.IsUser() {
		line = a.theme.UserBubble.Render(m.Content) + " " + ts
	} else {
		name := a.theme.CharacterName.Render(displayName(m.SenderID))
		content := m.Content
		if m.IsStreaming && content == "" {
			content = a.spinner.View()
		}
		line = name + "  " + ts + "\n" + a.theme.CharacterBubble.Render(content)
	}

	if len(m.Reactions) > 0 {
		var emojis []string
		for _, r := range m.Reactions {
			emojis = append(emojis, r.Emoji)
		}
		line += "\n" + a.theme.Reaction.Render(strings.Join(emojis, " "))
	}
	return line
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.screen {
	case screenOnboard:
		return a.viewOnboard()
	case screenList:
		return a.viewList()
	case screenPicker:
		return a.viewPicker()
	case screenScenario:
		return a.viewScenario()
	case screenChat:
		return a.viewChat()
	}
	return ""
}

func (a *App) viewOnboard() string {
	var sb strings.Builder
	sb.WriteString(a.theme.Header.Render("adda ☕"))
	sb.WriteString("\n\n")
	sb.WriteString("Welcome! Apna naam batao:\n\n")
	sb.WriteString(a.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(a.theme.Footer.Render("enter: continue • ctrl+c: quit"))
	return a.theme.App.Render(sb.String())
}

func (a *App) viewList() string {
	a.chats = a.store.SortedChats()

	var sb strings.Builder
	sb.WriteString(a.theme.Header.Render("adda ☕  chats"))
	sb.WriteString("\n\n")

	if len(a.chats) == 0 {
		sb.WriteString(a.theme.ListPreview.Render("No chats yet. Start one!"))
		sb.WriteString("\n")
	}
	for i, c := range a.chats {
		label := a.chatLabel(c)
		if i == a.listIndex {
			sb.WriteString(a.theme.ListSelected.Render("> " + label))
		} else {
			sb.WriteString(a.theme.ListItem.Render("  " + label))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(a.theme.Footer.Render("n: new chat • g: new group • enter: open • q: quit"))
	return a.theme.App.Render(sb.String())
}

func (a *App) viewPicker() string {
	var sb strings.Builder
	sb.WriteString(a.theme.Header.Render("adda ☕  who do you want to talk to?"))
	sb.WriteString("\n\n")
	for i, c := range a.roster {
		label := c.AvatarEmoji + " " + c.Name + "  " +
			a.theme.ListPreview.Render(c.Archetype+" • "+c.City)
		if i == a.pickerIndex {
			sb.WriteString(a.theme.ListSelected.Render("> " + label))
		} else {
			sb.WriteString(a.theme.ListItem.Render("  " + label))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(a.theme.Footer.Render("enter: start chat • esc: back"))
	return a.theme.App.Render(sb.String())
}

func (a *App) viewScenario() string {
	var sb strings.Builder
	sb.WriteString(a.theme.Header.Render("adda ☕  pick a scene"))
	sb.WriteString("\n\n")
	for i, sc := range a.scenarios {
		label := sc.Emoji + " " + sc.Name + "  " +
			a.theme.ListPreview.Render(truncate(sc.Description, 48))
		if i == a.pickerIndex {
			sb.WriteString(a.theme.ListSelected.Render("> " + label))
		} else {
			sb.WriteString(a.theme.ListItem.Render("  " + label))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(a.theme.Footer.Render("enter: start group • esc: back"))
	return a.theme.App.Render(sb.String())
}

func (a *App) viewChat() string {
	c := a.store.GetChat(a.activeChatID)
	if c == nil {
		return ""
	}

	title := c.Title
	status := "online"
	if a.typing {
		status = "typing..."
	}
	header := a.theme.Header.Render(title + "  " + a.theme.StatusBar.Render(status))

	footerHint := "enter: send • ctrl+r: regenerate • esc: back"
	if c.Type == store.ChatGroup {
		footerHint = "enter: send • @name to call someone out • ctrl+m: mute • esc: back"
	}
	footer := a.theme.InputContainer.Render(
		a.theme.InputPrompt.Render("> ")+a.input.View()) + "\n" +
		a.theme.Footer.Render(footerHint)
	if a.statusMsg != "" {
		footer += "  " + a.statusMsg
	}

	return header + "\n" + a.viewport.View() + "\n" + footer
}
