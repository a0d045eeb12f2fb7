// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package selector decides which characters speak in a group turn.
package selector

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"

	"github.com/jeranaias/adda-tui/internal/character"
)

// =============================================================================
// SCORING CONSTANTS
// =============================================================================

const (
	// nameBonus is added when the character's name appears in the message.
	// It dominates the random term so a named character is effectively
	// always picked.
	nameBonus = 10.0

	// keywordBonus is added per topic-keyword hit from the character's
	// fixed affinity list.
	keywordBonus = 5.0

	// randomSpread is the range of the uniform tie-breaking term. It also
	// provides variety so quiet characters occasionally speak up.
	randomSpread = 3.0

	// maxResponders caps how many characters answer one message.
	maxResponders = 3
)

// =============================================================================
// SELECTOR
// =============================================================================

// Selector scores and picks group responders. The random source is injected
// so tests can pin the tie-breaking term.
type Selector struct {
	rng *rand.Rand
}

// New creates a selector backed by the given random source. A nil source
// falls back to the shared global source.
func New(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

type scored struct {
	id    string
	score float64
}

// Select returns the ordered list of character ids that respond to one user
// message. Muted participants never respond. Explicitly mentioned ids
// (extracted upstream from @name tokens) are forced into the result ahead of
// scored picks. The returned order is the speaking order.
//
// Selection is deliberately a cheap substring heuristic over a fixed keyword
// table; semantic routing is avoided to keep latency and cost low. The
// responder count is randomized (mostly 2, sometimes 1 or 3) so a group
// message does not trigger a reply from everyone.
func (s *Selector) Select(message string, participantIDs []string, mutedIDs []string, mentionedIDs []string) []string {
	muted := make(map[string]bool, len(mutedIDs))
	for _, id := range mutedIDs {
		muted[id] = true
	}

	available := make([]string, 0, len(participantIDs))
	for _, id := range participantIDs {
		if !muted[id] {
			available = append(available, id)
		}
	}
	if len(available) == 0 {
		return nil
	}

	lower := strings.ToLower(message)

	ranked := make([]scored, 0, len(available))
	for _, id := range available {
		score := s.random() * randomSpread

		if c := character.Get(id); c != nil {
			if strings.Contains(lower, strings.ToLower(c.Name)) {
				score += nameBonus
			}
			for _, kw := range c.Keywords {
				if strings.Contains(lower, kw) {
					score += keywordBonus
				}
			}
		}

		ranked = append(ranked, scored{id: id, score: score})
	}

	// Stable so equal scores keep participant order; ties are otherwise
	// already broken by the random term baked into the score.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	count := s.responderCount(len(available))

	// Forced mentions first, in mention order, then top-scored fill.
	result := make([]string, 0, maxResponders)
	taken := make(map[string]bool, maxResponders)
	for _, id := range mentionedIDs {
		if muted[id] || taken[id] || !contains(available, id) {
			continue
		}
		result = append(result, id)
		taken[id] = true
		if len(result) == maxResponders {
			return result
		}
	}
	if count < len(result) {
		count = len(result)
	}
	for _, sc := range ranked {
		if len(result) >= count {
			break
		}
		if !taken[sc.id] {
			result = append(result, sc.id)
			taken[sc.id] = true
		}
	}
	return result
}

// responderCount picks how many characters answer: ~60% of the time two,
// otherwise three when more than two are available, else one. Always capped
// at the available count.
func (s *Selector) responderCount(available int) int {
	var n int
	if s.random() > 0.4 {
		n = 2
	} else if available > 2 {
		n = 3
	} else {
		n = 1
	}
	if n > available {
		n = available
	}
	return n
}

func (s *Selector) random() float64 {
	if s.rng != nil {
		return s.rng.Float64()
	}
	return rand.Float64()
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// =============================================================================
// MENTION EXTRACTION
// =============================================================================

var mentionPattern = regexp.MustCompile(`@([a-zA-Z0-9_]+)`)

// ExtractMentions finds @name tokens matching roster character names
// (case-insensitive) and returns their ids, deduplicated, in first-mention
// order.
func ExtractMentions(message string, roster []*character.Character) []string {
	var out []string
	seen := make(map[string]bool)

	for _, match := range mentionPattern.FindAllStringSubmatch(message, -1) {
		name := strings.ToLower(match[1])
		for _, c := range roster {
			if strings.ToLower(c.Name) == name && !seen[c.ID] {
				seen[c.ID] = true
				out = append(out, c.ID)
			}
		}
	}
	return out
}
