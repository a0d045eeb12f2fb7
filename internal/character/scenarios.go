// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package character holds the static persona catalog for adda.
package character

// =============================================================================
// GROUP SCENARIOS
// =============================================================================

// Scenarios are pre-built group chat setups offered on the home screen.
var Scenarios = []Scenario{
	{
		ID:             "startup-vs-sarkari",
		Name:           "Startup vs Sarkari",
		Description:    "Bunny pitches his new idea. Rohan is not impressed.",
		CharacterIDs:   []string{"bunny", "rohan"},
		OpeningContext: "Bunny just announced his 8th startup pivot and Rohan has strong opinions about it.",
		Emoji:          "⚔️",
	},
	{
		ID:             "family-dinner-chaos",
		Name:           "Family Dinner Chaos",
		Description:    "Kavya hosts dinner. Chaos ensues.",
		CharacterIDs:   []string{"kavya", "zoya", "rohan"},
		OpeningContext: "Kavya has invited everyone for dinner and is already asking about marriage plans. Zoya is defending the user. Rohan is judging everyone's career choices.",
		Emoji:          "🍽️",
	},
	{
		ID:             "gym-vs-goa",
		Name:           "Gym vs Goa",
		Description:    "Should you grind or chill? The eternal debate.",
		CharacterIDs:   []string{"vikram", "dev"},
		OpeningContext: "The user mentioned they're stressed. Vikram prescribes the gym. Dev prescribes Goa.",
		Emoji:          "🏋️",
	},
	{
		ID:             "stars-vs-spreadsheets",
		Name:           "Stars vs Spreadsheets",
		Description:    "Tara reads your chart. Ananya reads your data.",
		CharacterIDs:   []string{"tara", "ananya"},
		OpeningContext: "The user asked for life advice. Tara pulled up their birth chart. Ananya opened a Notion template.",
		Emoji:          "🔮",
	},
	{
		ID:             "nri-vs-desi",
		Name:           "NRI vs Desi Internet",
		Description:    "Meera misses India. Faizan sends memes about it.",
		CharacterIDs:   []string{"meera", "faizan"},
		OpeningContext: "Meera is feeling homesick and posted about it. Faizan responded with a Hera Pheri meme.",
		Emoji:          "🌏",
	},
	{
		ID:             "boomer-alliance",
		Name:           "Boomer Alliance",
		Description:    "Kavya and Rohan unite against Gen Z.",
		CharacterIDs:   []string{"kavya", "rohan"},
		OpeningContext: "Kavya and Rohan discovered they agree on everything about \"aaj kal ke bachche.\" The user is caught in the crossfire.",
		Emoji:          "👴",
	},
	{
		ID:             "full-adda",
		Name:           "Full Adda",
		Description:    "Everyone's here. Pure chaos.",
		CharacterIDs:   []string{"bunny", "zoya", "faizan", "kavya"},
		OpeningContext: "It's a Friday night group chat. Everyone has opinions. No one is sleeping.",
		Emoji:          "🎉",
	},
}
