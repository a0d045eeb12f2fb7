// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat orchestrates conversation turns: moderation, responder
// selection, prompt assembly, streaming, and store updates.
package chat

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/jeranaias/adda-tui/internal/anthropic"
	"github.com/jeranaias/adda-tui/internal/character"
	"github.com/jeranaias/adda-tui/internal/moderation"
	"github.com/jeranaias/adda-tui/internal/prompt"
	"github.com/jeranaias/adda-tui/internal/selector"
	"github.com/jeranaias/adda-tui/internal/store"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrChatBusy means the chat already has an in-flight turn.
	ErrChatBusy = errors.New("chat is busy streaming")

	// ErrChatNotFound means the chat id resolves to nothing.
	ErrChatNotFound = errors.New("chat not found")

	// ErrNoRegenTarget means the chat's last message is not a character
	// reply, so there is nothing to regenerate.
	ErrNoRegenTarget = errors.New("no character message to regenerate")
)

// Canned in-character failure lines. A transport failure never surfaces as a
// raw error in the chat; the character shrugs it off instead.
const (
	errLineSend  = "Arre yaar, network issue ho gaya. Phir se try kar! 😅"
	errLineRegen = "Network mein kuch gadbad hai bhai 😅"
	errLineGroup = "Network issue aa gaya yaar 😅"
)

// =============================================================================
// COMPLETION PROVIDER
// =============================================================================

// CompletionProvider is the streaming completion backend. *anthropic.Client
// satisfies it; tests substitute a script.
type CompletionProvider interface {
	MessageStream(ctx context.Context, system string, messages []anthropic.Message, callback anthropic.StreamCallback) error
}

// =============================================================================
// EVENTS
// =============================================================================

// EventType tags orchestrator events.
type EventType int

const (
	// EventMessageAdded fires when a message (user, warning, or character
	// placeholder) lands in the store.
	EventMessageAdded EventType = iota

	// EventToken fires per streamed token of a character reply.
	EventToken

	// EventMessageSettled fires when a character reply reaches its final
	// content, successfully or not.
	EventMessageSettled

	// EventTurnDone fires once per Send/Regenerate after all responders
	// finished. The event channel closes after it.
	EventTurnDone
)

// Event is one observable step of a conversation turn. Consumers re-read
// message content from the store; Token carries just the delta.
type Event struct {
	Type      EventType
	ChatID    string
	MessageID string
	SenderID  string
	Token     string
	Err       error
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Options tunes turn behavior.
type Options struct {
	// ContextMessages caps the history window sent to the model.
	ContextMessages int

	// MinCharacterDelay and MaxCharacterDelay bound the pause inserted
	// between consecutive group responders, imitating typing.
	MinCharacterDelay time.Duration
	MaxCharacterDelay time.Duration
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		ContextMessages:   prompt.DefaultWindowLimit,
		MinCharacterDelay: 800 * time.Millisecond,
		MaxCharacterDelay: 1500 * time.Millisecond,
	}
}

// Orchestrator runs conversation turns against the store. One turn per chat
// at a time; different chats stream concurrently.
type Orchestrator struct {
	store    *store.ChatStore
	provider CompletionProvider
	selector *selector.Selector
	opts     Options

	userName func() string

	// rng drives inter-character delays; sleep is swappable for tests.
	rng   *rand.Rand
	sleep func(time.Duration)
}

// New creates an orchestrator. userName supplies the display name the
// prompts address the user by (looked up per turn, so a rename mid-session
// takes effect immediately). rng may be nil.
func New(st *store.ChatStore, provider CompletionProvider, userName func() string, opts Options, rng *rand.Rand) *Orchestrator {
	if opts.ContextMessages <= 0 {
		opts.ContextMessages = prompt.DefaultWindowLimit
	}
	if opts.MaxCharacterDelay < opts.MinCharacterDelay {
		opts.MaxCharacterDelay = opts.MinCharacterDelay
	}
	return &Orchestrator{
		store:    st,
		provider: provider,
		selector: selector.New(rng),
		opts:     opts,
		userName: userName,
		rng:      rng,
		sleep:    time.Sleep,
	}
}

// =============================================================================
// SEND
// =============================================================================

// Send runs one full turn for a user message: the moderation gate, the user
// message append, responder selection, and each responder's streamed reply.
// It returns an event channel that closes after EventTurnDone. The turn runs
// on its own goroutine; ctx cancels in-flight streaming. The caller must
// drain the channel until it closes.
//
// A second Send into a chat whose turn is still running fails with
// ErrChatBusy. Other chats are unaffected.
func (o *Orchestrator) Send(ctx context.Context, chatID, text string) (<-chan Event, error) {
	chat := o.store.GetChat(chatID)
	if chat == nil {
		return nil, ErrChatNotFound
	}
	if !o.store.ClaimStreaming(chatID) {
		return nil, ErrChatBusy
	}

	// Moderation gate: blocked input never reaches the store or the model.
	// The first character delivers the explanation in-chat.
	if verdict := moderation.Classify(text); !verdict.Safe {
		o.store.SetStreaming(chatID, false)
		events := make(chan Event, 2)
		warn := store.NewMessage(chatID, chat.CharacterIDs[0], verdict.Reason)
		o.store.AddMessage(chatID, warn)
		events <- Event{Type: EventMessageAdded, ChatID: chatID, MessageID: warn.ID, SenderID: warn.SenderID}
		events <- Event{Type: EventTurnDone, ChatID: chatID}
		close(events)
		return events, nil
	}

	userMsg := store.NewMessage(chatID, store.SenderUser, text)
	o.store.AddMessage(chatID, userMsg)

	responders := o.pickResponders(chat, text)

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		defer o.store.SetStreaming(chatID, false)

		events <- Event{Type: EventMessageAdded, ChatID: chatID, MessageID: userMsg.ID, SenderID: store.SenderUser}

		errLine := errLineSend
		if chat.Type == store.ChatGroup {
			errLine = errLineGroup
		}

		for i, charID := range responders {
			if ctx.Err() != nil {
				break
			}
			if i > 0 {
				o.sleep(o.characterDelay())
			}
			o.streamReply(ctx, chat, charID, errLine, events)
		}

		events <- Event{Type: EventTurnDone, ChatID: chatID}
	}()
	return events, nil
}

// Regenerate discards the chat's trailing character reply and streams a
// fresh one from the same character. Fails with ErrNoRegenTarget when the
// last message is the user's or the chat is empty.
func (o *Orchestrator) Regenerate(ctx context.Context, chatID string) (<-chan Event, error) {
	chat := o.store.GetChat(chatID)
	if chat == nil {
		return nil, ErrChatNotFound
	}
	if !o.store.ClaimStreaming(chatID) {
		return nil, ErrChatBusy
	}

	removed := o.store.RemoveLastAIMessage(chatID)
	if removed == nil {
		o.store.SetStreaming(chatID, false)
		return nil, ErrNoRegenTarget
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		defer o.store.SetStreaming(chatID, false)

		o.streamReply(ctx, chat, removed.SenderID, errLineRegen, events)
		events <- Event{Type: EventTurnDone, ChatID: chatID}
	}()
	return events, nil
}

// =============================================================================
// RESPONDER SELECTION
// =============================================================================

// pickResponders resolves who answers this message. Individual chats always
// answer with their single character; group chats run scored selection with
// @mentions forced in.
func (o *Orchestrator) pickResponders(chat *store.Chat, text string) []string {
	if chat.Type == store.ChatIndividual {
		return []string{chat.CharacterIDs[0]}
	}
	roster := character.ByIDs(chat.CharacterIDs)
	mentions := selector.ExtractMentions(text, roster)
	return o.selector.Select(text, chat.CharacterIDs, chat.MutedCharacters, mentions)
}

// =============================================================================
// STREAMING
// =============================================================================

// streamReply streams one character's reply into a placeholder message,
// settling it with the final text or the canned error line.
func (o *Orchestrator) streamReply(ctx context.Context, chat *store.Chat, charID, errLine string, events chan<- Event) {
	char := character.Get(charID)
	if char == nil {
		return
	}

	placeholder := store.NewStreamingMessage(chat.ID, charID)
	o.store.AddMessage(chat.ID, placeholder)
	events <- Event{Type: EventMessageAdded, ChatID: chat.ID, MessageID: placeholder.ID, SenderID: charID}

	system := o.composeSystem(chat, char)
	window := o.contextWindow(chat, placeholder.ID)

	var acc strings.Builder
	err := o.provider.MessageStream(ctx, system, window, func(chunk anthropic.StreamChunk) {
		if chunk.Error != nil || chunk.Content == "" {
			return
		}
		acc.WriteString(chunk.Content)
		o.store.UpdateMessage(chat.ID, placeholder.ID, acc.String(), true)
		events <- Event{Type: EventToken, ChatID: chat.ID, MessageID: placeholder.ID, SenderID: charID, Token: chunk.Content}
	})

	if err != nil {
		o.store.UpdateMessage(chat.ID, placeholder.ID, errLine, false)
		events <- Event{Type: EventMessageSettled, ChatID: chat.ID, MessageID: placeholder.ID, SenderID: charID, Err: err}
		return
	}

	final := anthropic.StripNamePrefix(acc.String(), char.Name)
	o.store.UpdateMessage(chat.ID, placeholder.ID, final, false)
	events <- Event{Type: EventMessageSettled, ChatID: chat.ID, MessageID: placeholder.ID, SenderID: charID}
}

// composeSystem builds the character's system prompt for this chat.
func (o *Orchestrator) composeSystem(chat *store.Chat, char *character.Character) string {
	opts := prompt.Opts{UserName: o.userName()}
	if chat.Type == store.ChatGroup {
		opts.Group = true
		opts.Roster = character.ByIDs(chat.CharacterIDs)
		opts.Dynamics = character.DynamicsForGroup(chat.CharacterIDs)
	}
	return prompt.Compose(char, opts)
}

// contextWindow converts the chat history (minus the streaming placeholder)
// into the bounded alternating window the API requires.
func (o *Orchestrator) contextWindow(chat *store.Chat, excludeID string) []anthropic.Message {
	msgs := o.store.Messages(chat.ID)
	history := make([]prompt.HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		if m.ID == excludeID {
			continue
		}
		history = append(history, prompt.HistoryMessage{SenderID: m.SenderID, Content: m.Content})
	}

	nameByID := make(map[string]string, len(chat.CharacterIDs))
	for _, id := range chat.CharacterIDs {
		if c := character.Get(id); c != nil {
			nameByID[id] = c.Name
		}
	}

	window := prompt.Window(history, nameByID, o.userName(), o.opts.ContextMessages)
	out := make([]anthropic.Message, len(window))
	for i, rm := range window {
		out[i] = anthropic.Message{Role: string(rm.Role), Content: rm.Content}
	}
	return out
}

// characterDelay returns a uniform pause in [min, max].
func (o *Orchestrator) characterDelay() time.Duration {
	span := o.opts.MaxCharacterDelay - o.opts.MinCharacterDelay
	if span <= 0 {
		return o.opts.MinCharacterDelay
	}
	var f float64
	if o.rng != nil {
		f = o.rng.Float64()
	} else {
		f = rand.Float64()
	}
	return o.opts.MinCharacterDelay + time.Duration(f*float64(span))
}
