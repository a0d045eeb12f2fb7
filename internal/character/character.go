// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package character holds the static persona catalog for adda.
package character

// =============================================================================
// CHARACTER TYPE
// =============================================================================

// Character is an immutable scripted persona. Loaded once from the catalog,
// shared by reference, never mutated.
type Character struct {
	// Identity
	ID        string `json:"id"`
	Name      string `json:"name"`
	Archetype string `json:"archetype"`
	City      string `json:"city"`
	Age       int    `json:"age"`
	Tagline   string `json:"tagline"`

	// Prompt material
	Backstory      string   `json:"backstory"`
	SpeakingStyle  string   `json:"speaking_style"`
	SampleMessages []string `json:"sample_messages"`

	Personality PersonalityMatrix `json:"personality"`
	CulturalDNA CulturalDNA       `json:"cultural_dna"`

	// Topic affinities used by the group responder selector.
	Keywords []string `json:"keywords"`

	// Display
	AvatarColor string `json:"avatar_color"`
	AvatarEmoji string `json:"avatar_emoji"`
}

// PersonalityMatrix holds the six 0-10 trait dials that drive the
// personality layer of the system prompt.
type PersonalityMatrix struct {
	Humor     int `json:"humor"`
	Sarcasm   int `json:"sarcasm"`
	Warmth    int `json:"warmth"`
	DesiMeter int `json:"desi_meter"`
	Energy    int `json:"energy"`
	Wisdom    int `json:"wisdom"`
}

// CulturalDNA lists the flavor material a character naturally reaches for.
type CulturalDNA struct {
	HindiPhrases []string `json:"hindi_phrases"`
	References   []string `json:"references"`
	Food         []string `json:"food"`
	Festivals    []string `json:"festivals"`
}

// =============================================================================
// DYNAMIC TYPE
// =============================================================================

// Dynamic is a scripted tension between an unordered pair of characters,
// activated only when both members are present in the same group.
type Dynamic struct {
	Pair           [2]string `json:"pair"`
	Description    string    `json:"description"`
	Tension        string    `json:"tension"`
	PromptModifier string    `json:"prompt_modifier"`
}

// Involves reports whether the dynamic names the given character.
func (d Dynamic) Involves(id string) bool {
	return d.Pair[0] == id || d.Pair[1] == id
}

// =============================================================================
// SCENARIO AND STARTER TYPES
// =============================================================================

// Scenario is a pre-built group chat setup with an opening context line.
type Scenario struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	CharacterIDs   []string `json:"character_ids"`
	OpeningContext string   `json:"opening_context"`
	Emoji          string   `json:"emoji"`
}

// Starter is a set of suggested first messages for one character.
type Starter struct {
	CharacterID string   `json:"character_id"`
	Prompts     []string `json:"prompts"`
}

// =============================================================================
// CATALOG LOOKUPS
// =============================================================================

// Get returns the character with the given id, or nil if unknown.
func Get(id string) *Character {
	return Characters[id]
}

// ByIDs resolves ids to characters, silently skipping unknown ids.
func ByIDs(ids []string) []*Character {
	out := make([]*Character, 0, len(ids))
	for _, id := range ids {
		if c := Characters[id]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

// All returns every catalog character in stable display order.
func All() []*Character {
	out := make([]*Character, 0, len(Order))
	for _, id := range Order {
		out = append(out, Characters[id])
	}
	return out
}

// DynamicsForGroup returns the dynamics whose both members are in the group.
func DynamicsForGroup(ids []string) []Dynamic {
	present := make(map[string]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}

	var out []Dynamic
	for _, d := range Dynamics {
		if present[d.Pair[0]] && present[d.Pair[1]] {
			out = append(out, d)
		}
	}
	return out
}

// StartersFor returns the conversation starters for a character, or nil.
func StartersFor(id string) []string {
	for _, s := range Starters {
		if s.CharacterID == id {
			return s.Prompts
		}
	}
	return nil
}

// ScenarioByID returns the scenario with the given id, or nil.
func ScenarioByID(id string) *Scenario {
	for i := range Scenarios {
		if Scenarios[i].ID == id {
			return &Scenarios[i]
		}
	}
	return nil
}
