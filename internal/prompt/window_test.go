// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"math/rand"
	"strings"
	"testing"
)

// =============================================================================
// WINDOWING TESTS
// =============================================================================

func TestWindow_EmptyHistory(t *testing.T) {
	got := Window(nil, nil, "Arjun", 20)
	if len(got) != 1 {
		t.Fatalf("expected 1 synthetic message, got %d", len(got))
	}
	if got[0].Role != RoleUser {
		t.Errorf("synthetic greeting must be a user message, got %s", got[0].Role)
	}
	if got[0].Content != "Arjun: Hi!" {
		t.Errorf("unexpected greeting: %q", got[0].Content)
	}
}

func TestWindow_PrefixesAndRoles(t *testing.T) {
	history := []HistoryMessage{
		{SenderID: "user", Content: "kya haal hai"},
		{SenderID: "kavya", Content: "sab badhiya!"},
	}
	names := map[string]string{"kavya": "Kavya"}

	got := Window(history, names, "Arjun", 20)
	if len(got) != 3 { // trailing user prompt appended
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	if got[0].Content != "Arjun: kya haal hai" {
		t.Errorf("user prefix wrong: %q", got[0].Content)
	}
	if got[1].Role != RoleAssistant || got[1].Content != "Kavya: sab badhiya!" {
		t.Errorf("assistant mapping wrong: %+v", got[1])
	}
}

func TestWindow_UnknownSenderKeepsID(t *testing.T) {
	history := []HistoryMessage{
		{SenderID: "user", Content: "hi"},
		{SenderID: "ghost", Content: "boo"},
	}
	got := Window(history, map[string]string{}, "U", 20)
	if !strings.HasPrefix(got[1].Content, "ghost: ") {
		t.Errorf("unknown sender should fall back to raw id, got %q", got[1].Content)
	}
}

func TestWindow_MergesConsecutiveCharacterMessages(t *testing.T) {
	history := []HistoryMessage{
		{SenderID: "user", Content: "scene kya hai"},
		{SenderID: "bunny", Content: "bro idea hai"},
		{SenderID: "rohan", Content: "phir se idea?"},
	}
	names := map[string]string{"bunny": "Bunny", "rohan": "Rohan"}

	got := Window(history, names, "U", 20)
	// user, merged assistant, trailing user
	if len(got) != 3 {
		t.Fatalf("expected 3 messages after merge, got %d: %+v", len(got), got)
	}
	merged := got[1].Content
	if !strings.Contains(merged, "Bunny: bro idea hai") || !strings.Contains(merged, "Rohan: phir se idea?") {
		t.Errorf("consecutive assistant messages should merge, got %q", merged)
	}
}

func TestWindow_LeadingAssistantGetsSyntheticStart(t *testing.T) {
	history := []HistoryMessage{
		{SenderID: "kavya", Content: "hello ji"},
	}
	got := Window(history, map[string]string{"kavya": "Kavya"}, "U", 20)
	if got[0].Role != RoleUser {
		t.Fatalf("window must start with a user message, got %s", got[0].Role)
	}
	if got[len(got)-1].Role != RoleUser {
		t.Fatalf("window must end with a user message, got %s", got[len(got)-1].Role)
	}
}

func TestWindow_Limit(t *testing.T) {
	var history []HistoryMessage
	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			history = append(history, HistoryMessage{SenderID: "user", Content: "u"})
		} else {
			history = append(history, HistoryMessage{SenderID: "kavya", Content: "a"})
		}
	}

	got := Window(history, map[string]string{"kavya": "Kavya"}, "U", 20)
	// 20 alternating messages, ends on assistant, so one synthetic appended.
	if len(got) > 21 {
		t.Errorf("window exceeded limit: %d messages", len(got))
	}
}

// TestWindow_AlternationProperty fuzzes random histories and checks the
// invariants: strict role alternation, user bookends, never empty.
func TestWindow_AlternationProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	senders := []string{"user", "kavya", "bunny", "rohan"}
	names := map[string]string{"kavya": "Kavya", "bunny": "Bunny", "rohan": "Rohan"}

	for trial := 0; trial < 100; trial++ {
		n := rng.Intn(40)
		history := make([]HistoryMessage, 0, n)
		for i := 0; i < n; i++ {
			history = append(history, HistoryMessage{
				SenderID: senders[rng.Intn(len(senders))],
				Content:  "m",
			})
		}

		got := Window(history, names, "U", 20)

		if len(got) == 0 {
			t.Fatalf("trial %d: empty window", trial)
		}
		if got[0].Role != RoleUser {
			t.Fatalf("trial %d: window starts with %s", trial, got[0].Role)
		}
		if got[len(got)-1].Role != RoleUser {
			t.Fatalf("trial %d: window ends with %s", trial, got[len(got)-1].Role)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Role == got[i-1].Role {
				t.Fatalf("trial %d: consecutive %s at index %d", trial, got[i].Role, i)
			}
		}
	}
}
