// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jeranaias/adda-tui/internal/anthropic"
	"github.com/jeranaias/adda-tui/internal/moderation"
	"github.com/jeranaias/adda-tui/internal/store"
)

// =============================================================================
// FAKE PROVIDER
// =============================================================================

// fakeProvider scripts streamed replies. Chunks are delivered per call in
// order; an err aborts the stream after any chunks already sent.
type fakeProvider struct {
	mu      sync.Mutex
	chunks  [][]string
	errs    []error
	calls   int
	systems []string
	windows [][]anthropic.Message
	block   chan struct{} // when set, the stream waits here first
}

func (f *fakeProvider) MessageStream(ctx context.Context, system string, messages []anthropic.Message, callback anthropic.StreamCallback) error {
	f.mu.Lock()
	call := f.calls
	f.calls++
	f.systems = append(f.systems, system)
	f.windows = append(f.windows, messages)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if call < len(f.chunks) {
		for _, c := range f.chunks[call] {
			callback(anthropic.StreamChunk{Content: c})
		}
	}
	if call < len(f.errs) && f.errs[call] != nil {
		return f.errs[call]
	}
	callback(anthropic.StreamChunk{Done: true})
	return nil
}

func newTestOrchestrator(provider CompletionProvider) (*Orchestrator, *store.ChatStore) {
	st := store.NewChatStore(nil)
	orch := New(st, provider, func() string { return "Arjun" }, Options{
		ContextMessages:   20,
		MinCharacterDelay: 0,
		MaxCharacterDelay: 0,
	}, rand.New(rand.NewSource(1)))
	return orch, st
}

func drain(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("timed out draining events")
		}
	}
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSend_IndividualTurn(t *testing.T) {
	provider := &fakeProvider{chunks: [][]string{{"arre ", "hello!"}}}
	orch, st := newTestOrchestrator(provider)
	chat := st.GetOrCreateIndividualChat("kavya")

	events, err := orch.Send(context.Background(), chat.ID, "hi Kavya")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	got := drain(t, events)

	msgs := st.Messages(chat.ID)
	if len(msgs) != 2 {
		t.Fatalf("expected user + reply, got %d messages", len(msgs))
	}
	if !msgs[0].IsUser() || msgs[0].Content != "hi Kavya" {
		t.Errorf("user message wrong: %+v", msgs[0])
	}
	if msgs[1].SenderID != "kavya" || msgs[1].Content != "arre hello!" {
		t.Errorf("reply wrong: %+v", msgs[1])
	}
	if msgs[1].IsStreaming {
		t.Error("settled reply must not be streaming")
	}

	if got[len(got)-1].Type != EventTurnDone {
		t.Error("last event must be EventTurnDone")
	}
	var tokens int
	for _, ev := range got {
		if ev.Type == EventToken {
			tokens++
		}
	}
	if tokens != 2 {
		t.Errorf("expected 2 token events, got %d", tokens)
	}
	if st.IsStreaming(chat.ID) {
		t.Error("streaming flag must clear after the turn")
	}
}

func TestSend_StripsNamePrefix(t *testing.T) {
	provider := &fakeProvider{chunks: [][]string{{"Kavya: ", "chai time!"}}}
	orch, st := newTestOrchestrator(provider)
	chat := st.GetOrCreateIndividualChat("kavya")

	events, err := orch.Send(context.Background(), chat.ID, "hello")
	if err != nil {
		t.Fatal(err)
	}
	drain(t, events)

	msgs := st.Messages(chat.ID)
	if got := msgs[len(msgs)-1].Content; got != "chai time!" {
		t.Errorf("name prefix not stripped: %q", got)
	}
}

func TestSend_UnknownCharacterSkipsReply(t *testing.T) {
	provider := &fakeProvider{chunks: [][]string{{"never"}}}
	orch, st := newTestOrchestrator(provider)
	chat := st.GetOrCreateIndividualChat("ghost")

	events, err := orch.Send(context.Background(), chat.ID, "koi hai?")
	if err != nil {
		t.Fatal(err)
	}
	got := drain(t, events)

	// The user message lands but no reply is attempted for an id the
	// catalog doesn't know; the turn still completes cleanly.
	if provider.calls != 0 {
		t.Errorf("provider should not be called for an unknown character, got %d calls", provider.calls)
	}
	msgs := st.Messages(chat.ID)
	if len(msgs) != 1 || !msgs[0].IsUser() {
		t.Fatalf("expected only the user message, got %d", len(msgs))
	}
	if got[len(got)-1].Type != EventTurnDone {
		t.Error("last event must be EventTurnDone")
	}
	if st.IsStreaming(chat.ID) {
		t.Error("streaming flag must clear after the turn")
	}
}

func TestSend_ChatNotFound(t *testing.T) {
	orch, _ := newTestOrchestrator(&fakeProvider{})
	if _, err := orch.Send(context.Background(), "nope", "hi"); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("expected ErrChatNotFound, got %v", err)
	}
}

func TestSend_BusyChatRejected(t *testing.T) {
	block := make(chan struct{})
	provider := &fakeProvider{block: block, chunks: [][]string{{"ok"}}}
	orch, st := newTestOrchestrator(provider)
	chat := st.GetOrCreateIndividualChat("kavya")

	events, err := orch.Send(context.Background(), chat.ID, "pehla")
	if err != nil {
		t.Fatal(err)
	}

	// The first turn is parked inside the provider; a second Send into the
	// same chat must bounce.
	deadline := time.Now().Add(2 * time.Second)
	for !st.IsStreaming(chat.ID) {
		if time.Now().After(deadline) {
			t.Fatal("first turn never started streaming")
		}
		time.Sleep(time.Millisecond)
	}
	if _, err := orch.Send(context.Background(), chat.ID, "doosra"); !errors.Is(err, ErrChatBusy) {
		t.Errorf("expected ErrChatBusy, got %v", err)
	}

	close(block)
	drain(t, events)
}

func TestSend_OtherChatsUnaffectedByBusy(t *testing.T) {
	block := make(chan struct{})
	provider := &fakeProvider{block: block, chunks: [][]string{{"a"}, {"b"}}}
	orch, st := newTestOrchestrator(provider)
	busy := st.GetOrCreateIndividualChat("kavya")
	free := st.GetOrCreateIndividualChat("rohan")

	events1, err := orch.Send(context.Background(), busy.ID, "hi")
	if err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !st.IsStreaming(busy.ID) {
		if time.Now().After(deadline) {
			t.Fatal("first turn never started")
		}
		time.Sleep(time.Millisecond)
	}

	events2, err := orch.Send(context.Background(), free.ID, "hi")
	if err != nil {
		t.Errorf("independent chat must accept a turn: %v", err)
	}

	close(block)
	drain(t, events1)
	drain(t, events2)
}

func TestSend_ModerationGate(t *testing.T) {
	provider := &fakeProvider{}
	orch, st := newTestOrchestrator(provider)
	chat := st.GetOrCreateIndividualChat("kavya")

	events, err := orch.Send(context.Background(), chat.ID, "call me 9876543210")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	drain(t, events)

	if provider.calls != 0 {
		t.Error("blocked input must never reach the provider")
	}
	msgs := st.Messages(chat.ID)
	if len(msgs) != 1 {
		t.Fatalf("expected only the warning message, got %d", len(msgs))
	}
	if msgs[0].SenderID != "kavya" {
		t.Errorf("warning must come from the chat's character, got %s", msgs[0].SenderID)
	}
	if msgs[0].Content != moderation.ReasonPII {
		t.Errorf("warning content = %q", msgs[0].Content)
	}
	if st.IsStreaming(chat.ID) {
		t.Error("blocked send must release the chat's streaming claim")
	}
}

func TestSend_ProviderFailureUsesCannedLine(t *testing.T) {
	provider := &fakeProvider{errs: []error{anthropic.ErrOverloaded}}
	orch, st := newTestOrchestrator(provider)
	chat := st.GetOrCreateIndividualChat("kavya")

	events, err := orch.Send(context.Background(), chat.ID, "hello")
	if err != nil {
		t.Fatal(err)
	}
	got := drain(t, events)

	msgs := st.Messages(chat.ID)
	reply := msgs[len(msgs)-1]
	if reply.Content != errLineSend {
		t.Errorf("reply = %q, want canned network line", reply.Content)
	}
	if reply.IsStreaming {
		t.Error("failed reply must settle")
	}

	var settled *Event
	for i := range got {
		if got[i].Type == EventMessageSettled {
			settled = &got[i]
		}
	}
	if settled == nil || settled.Err == nil {
		t.Error("settled event must carry the provider error")
	}
}

func TestSend_SystemPromptAndWindow(t *testing.T) {
	provider := &fakeProvider{chunks: [][]string{{"ok"}}}
	orch, st := newTestOrchestrator(provider)
	chat := st.GetOrCreateIndividualChat("kavya")

	events, err := orch.Send(context.Background(), chat.ID, "kya haal")
	if err != nil {
		t.Fatal(err)
	}
	drain(t, events)

	if len(provider.systems) != 1 {
		t.Fatalf("expected one provider call")
	}
	if !strings.Contains(provider.systems[0], "Kavya") {
		t.Error("system prompt must carry the character identity")
	}

	window := provider.windows[0]
	if len(window) == 0 {
		t.Fatal("empty context window")
	}
	last := window[len(window)-1]
	if last.Role != "user" || !strings.Contains(last.Content, "kya haal") {
		t.Errorf("window must end with the user message, got %+v", last)
	}
	for _, m := range window {
		if m.Content == "" {
			t.Error("window must not contain the empty streaming placeholder")
		}
	}
}

// =============================================================================
// GROUP TESTS
// =============================================================================

func TestSend_GroupMentionResponds(t *testing.T) {
	provider := &fakeProvider{chunks: [][]string{{"scene on!"}, {"haan bhai"}, {"chalo"}}}
	orch, st := newTestOrchestrator(provider)

	chat := store.NewGroupChat("Adda", []string{"bunny", "rohan", "kavya"}, "")
	st.CreateChat(chat)

	events, err := orch.Send(context.Background(), chat.ID, "@bunny startup idea sunao")
	if err != nil {
		t.Fatal(err)
	}
	drain(t, events)

	msgs := st.Messages(chat.ID)
	if len(msgs) < 2 {
		t.Fatal("expected at least one reply")
	}
	if msgs[1].SenderID != "bunny" {
		t.Errorf("mentioned character must reply first, got %s", msgs[1].SenderID)
	}
	for _, m := range msgs[1:] {
		if m.IsUser() {
			continue
		}
		if m.SenderID == "" {
			t.Error("reply without a sender")
		}
	}
}

func TestSend_GroupMutedNeverReplies(t *testing.T) {
	provider := &fakeProvider{chunks: [][]string{{"a"}, {"b"}, {"c"}}}
	orch, st := newTestOrchestrator(provider)

	chat := store.NewGroupChat("Adda", []string{"bunny", "rohan"}, "")
	st.CreateChat(chat)
	st.MuteCharacter(chat.ID, "bunny")

	events, err := orch.Send(context.Background(), chat.ID, "bunny kya bolta")
	if err != nil {
		t.Fatal(err)
	}
	drain(t, events)

	for _, m := range st.Messages(chat.ID) {
		if m.SenderID == "bunny" {
			t.Error("muted character replied")
		}
	}
}

func TestSend_GroupSystemPromptHasRoster(t *testing.T) {
	provider := &fakeProvider{chunks: [][]string{{"x"}, {"y"}, {"z"}}}
	orch, st := newTestOrchestrator(provider)

	chat := store.NewGroupChat("Adda", []string{"bunny", "rohan", "kavya"}, "")
	st.CreateChat(chat)

	events, err := orch.Send(context.Background(), chat.ID, "sab sunao")
	if err != nil {
		t.Fatal(err)
	}
	drain(t, events)

	if provider.calls == 0 {
		t.Fatal("no provider calls")
	}
	if !strings.Contains(provider.systems[0], "GROUP CHAT") {
		t.Error("group turn must compose the roster layer")
	}
	if !strings.Contains(provider.systems[0], "Arjun") {
		t.Error("group prompt must name the user")
	}
}

// =============================================================================
// REGENERATE TESTS
// =============================================================================

func TestRegenerate(t *testing.T) {
	provider := &fakeProvider{chunks: [][]string{{"pehla jawab"}, {"naya jawab"}}}
	orch, st := newTestOrchestrator(provider)
	chat := st.GetOrCreateIndividualChat("kavya")

	events, err := orch.Send(context.Background(), chat.ID, "hello")
	if err != nil {
		t.Fatal(err)
	}
	drain(t, events)

	events, err = orch.Regenerate(context.Background(), chat.ID)
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	drain(t, events)

	msgs := st.Messages(chat.ID)
	if len(msgs) != 2 {
		t.Fatalf("expected user + regenerated reply, got %d", len(msgs))
	}
	if msgs[1].Content != "naya jawab" {
		t.Errorf("regenerated content = %q", msgs[1].Content)
	}
	if msgs[1].SenderID != "kavya" {
		t.Errorf("regeneration must keep the original sender, got %s", msgs[1].SenderID)
	}
}

func TestRegenerate_NoTarget(t *testing.T) {
	orch, st := newTestOrchestrator(&fakeProvider{})
	chat := st.GetOrCreateIndividualChat("kavya")

	if _, err := orch.Regenerate(context.Background(), chat.ID); !errors.Is(err, ErrNoRegenTarget) {
		t.Errorf("empty chat: expected ErrNoRegenTarget, got %v", err)
	}

	st.AddMessage(chat.ID, store.NewMessage(chat.ID, store.SenderUser, "hi"))
	if _, err := orch.Regenerate(context.Background(), chat.ID); !errors.Is(err, ErrNoRegenTarget) {
		t.Errorf("user-last chat: expected ErrNoRegenTarget, got %v", err)
	}
	if st.IsStreaming(chat.ID) {
		t.Error("failed regenerate must release the chat's streaming claim")
	}
}

func TestRegenerate_FailureUsesRegenLine(t *testing.T) {
	provider := &fakeProvider{
		chunks: [][]string{{"theek"}},
		errs:   []error{nil, anthropic.ErrOverloaded},
	}
	orch, st := newTestOrchestrator(provider)
	chat := st.GetOrCreateIndividualChat("kavya")

	events, err := orch.Send(context.Background(), chat.ID, "hi")
	if err != nil {
		t.Fatal(err)
	}
	drain(t, events)

	events, err = orch.Regenerate(context.Background(), chat.ID)
	if err != nil {
		t.Fatal(err)
	}
	drain(t, events)

	msgs := st.Messages(chat.ID)
	if got := msgs[len(msgs)-1].Content; got != errLineRegen {
		t.Errorf("reply = %q, want regen canned line", got)
	}
}

// =============================================================================
// CANCELLATION TESTS
// =============================================================================

func TestSend_ContextCancelStopsTurn(t *testing.T) {
	block := make(chan struct{})
	provider := &fakeProvider{block: block}
	orch, st := newTestOrchestrator(provider)
	chat := st.GetOrCreateIndividualChat("kavya")

	ctx, cancel := context.WithCancel(context.Background())
	events, err := orch.Send(ctx, chat.ID, "hello")
	if err != nil {
		t.Fatal(err)
	}
	cancel()
	got := drain(t, events)

	if got[len(got)-1].Type != EventTurnDone {
		t.Error("cancelled turn must still close with EventTurnDone")
	}
	if st.IsStreaming(chat.ID) {
		t.Error("streaming flag must clear after cancellation")
	}
}
