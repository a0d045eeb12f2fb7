// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/adda-tui/internal/character"
	"github.com/jeranaias/adda-tui/internal/util"
)

// =============================================================================
// TRANSCRIPT EXPORT
// =============================================================================

// Transcript is the export shape for a chat and its messages.
type Transcript struct {
	ChatID     string             `json:"chat_id"`
	Title      string             `json:"title"`
	Type       ChatType           `json:"type"`
	Characters []string           `json:"characters"`
	ExportedAt time.Time          `json:"exported_at"`
	Messages   []TranscriptEntry  `json:"messages"`
}

// TranscriptEntry is one message in an exported transcript.
type TranscriptEntry struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Exporter writes chat transcripts to disk as Markdown or JSON.
type Exporter struct {
	// BaseDir is the directory transcripts are written to.
	// Default: ~/.adda/exports/
	BaseDir string
}

// NewExporter creates an exporter rooted at the default directory.
func NewExporter() (*Exporter, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Join(homeDir, ".adda", "exports")
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &Exporter{BaseDir: baseDir}, nil
}

// NewExporterWithDir creates an exporter with a custom directory.
func NewExporterWithDir(baseDir string) (*Exporter, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &Exporter{BaseDir: baseDir}, nil
}

// BuildTranscript assembles the export shape for a chat. Character IDs are
// resolved to display names; unknown senders keep their raw ID.
func BuildTranscript(chat *Chat, messages []*Message) *Transcript {
	t := &Transcript{
		ChatID:     chat.ID,
		Title:      chat.Title,
		Type:       chat.Type,
		Characters: append([]string{}, chat.CharacterIDs...),
		ExportedAt: time.Now(),
		Messages:   make([]TranscriptEntry, 0, len(messages)),
	}

	for _, msg := range messages {
		t.Messages = append(t.Messages, TranscriptEntry{
			Sender:    senderLabel(msg.SenderID),
			Content:   msg.Content,
			Timestamp: time.UnixMilli(msg.Timestamp),
		})
	}
	return t
}

func senderLabel(senderID string) string {
	if senderID == SenderUser {
		return "You"
	}
	if c := character.Get(senderID); c != nil {
		return c.Name
	}
	return senderID
}

// Markdown renders the transcript as a Markdown document.
func (t *Transcript) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# " + t.Title + "\n\n")
	sb.WriteString("Exported: " + t.ExportedAt.Format(time.RFC3339) + "\n\n")
	sb.WriteString("---\n\n")

	for _, entry := range t.Messages {
		sb.WriteString("**" + entry.Sender + "** (" + entry.Timestamp.Format("15:04") + "):\n\n")
		sb.WriteString(entry.Content)
		sb.WriteString("\n\n---\n\n")
	}
	return sb.String()
}

// JSON renders the transcript as pretty-printed JSON.
func (t *Transcript) JSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// SaveMarkdown writes the chat transcript as Markdown and returns the path.
func (e *Exporter) SaveMarkdown(chat *Chat, messages []*Message) (string, error) {
	t := BuildTranscript(chat, messages)
	path := e.filePath(chat.ID, "md")
	if err := util.AtomicWriteFile(path, []byte(t.Markdown()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// SaveJSON writes the chat transcript as JSON and returns the path.
func (e *Exporter) SaveJSON(chat *Chat, messages []*Message) (string, error) {
	t := BuildTranscript(chat, messages)
	data, err := t.JSON()
	if err != nil {
		return "", err
	}
	path := e.filePath(chat.ID, "json")
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// filePath builds a timestamped transcript filename so repeated exports
// never clobber each other.
func (e *Exporter) filePath(chatID, ext string) string {
	stamp := time.Now().Format("20060102-150405")
	return filepath.Join(e.BaseDir, chatID+"-"+stamp+"."+ext)
}

// =============================================================================
// CHAT LIST FORMATTING
// =============================================================================

// FormatChatList formats chats as a table for terminal output.
func FormatChatList(chats []*Chat) string {
	if len(chats) == 0 {
		return "No chats yet. Run adda and start one!"
	}

	sorted := append([]*Chat{}, chats...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastMessageTime > sorted[j].LastMessageTime
	})

	var sb strings.Builder
	sb.WriteString("Chats:\n")
	sb.WriteString("--------------------------------------------------------------\n")
	sb.WriteString(pad("ID", 28) + " " + pad("Title", 16) + " Last message\n")
	sb.WriteString("--------------------------------------------------------------\n")

	for _, c := range sorted {
		sb.WriteString(pad(util.TruncateRunesNoEllipsis(c.ID, 28), 28) + " " +
			pad(util.TruncateRunes(c.Title, 16), 16) + " " +
			util.TruncateRunes(c.LastMessage, 40) + "\n")
	}
	return sb.String()
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(runes))
}
