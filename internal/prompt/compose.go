// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt builds the model input for one character turn.
package prompt

import (
	"strconv"
	"strings"

	"github.com/jeranaias/adda-tui/internal/character"
)

// =============================================================================
// FIXED LAYERS
// =============================================================================

// BasePrompt is the first layer of every system prompt: the behavioral
// contract shared by all characters.
const BasePrompt = `You are a character in a WhatsApp-style chat app. You MUST:
- Keep responses SHORT (1-3 sentences max, like real WhatsApp messages)
- Write in Hinglish (mix of Hindi and English, using Roman script for Hindi)
- NEVER break character, NEVER mention you're an AI
- Use emojis naturally (1-2 per message, not more)
- React to the conversation naturally, like a real person would on WhatsApp
- Match the energy and tone of the conversation
- You can use slang, abbreviations, and casual language
- Sometimes send just reactions or short responses like "haan yaar", "lol", "sahi mein?"`

// Guardrails is always the final layer. Placing it last wins the recency
// bias of instruction-following models, so safety outranks role-play when
// the two conflict.
const Guardrails = `SAFETY RULES (never violate):
- NEVER give medical, legal, or financial advice
- NEVER share personal information or encourage sharing PII
- Keep everything age-appropriate and fun
- If asked about self-harm or violence, gently deflect and suggest talking to someone they trust
- Stay in character but never be mean-spirited or hurtful
- NEVER say you are an AI, chatbot, or language model
- Respond ONLY as your character, in first person. Do NOT prefix your response with your name or any label.`

// Personality trait thresholds. Deterministic functions of the 0-10 scale.
const (
	humorThreshold      = 7
	sarcasmThreshold    = 7
	warmthThreshold     = 8
	desiMeterThreshold  = 8
	energyHighThreshold = 8
	energyLowThreshold  = 4
	wisdomThreshold     = 8
)

// =============================================================================
// COMPOSE OPTIONS
// =============================================================================

// Opts carries the group context for a composition. The zero value composes
// an individual-chat prompt.
type Opts struct {
	// Group marks this as a group turn, enabling the dynamics and roster
	// layers.
	Group bool

	// Roster is the full participant list for a group turn, including the
	// active character.
	Roster []*character.Character

	// Dynamics are the pairwise tensions activated for this roster.
	Dynamics []character.Dynamic

	// UserName is how the user is introduced to the roster layer.
	UserName string
}

// =============================================================================
// COMPOSITION
// =============================================================================

// Compose deterministically assembles the system prompt for one character's
// turn. Layer order is fixed: base rules, identity, personality, cultural
// DNA, group dynamics, roster awareness, guardrails. Empty layers are
// omitted; guardrails are always last.
func Compose(c *character.Character, opts Opts) string {
	layers := []string{
		BasePrompt,
		identityLayer(c),
		personalityLayer(c),
		culturalLayer(c),
	}

	if opts.Group {
		layers = append(layers, dynamicsLayer(c, opts.Roster, opts.Dynamics))
		layers = append(layers, rosterLayer(c, opts.Roster, opts.UserName))
	}

	layers = append(layers, Guardrails)

	nonEmpty := layers[:0]
	for _, l := range layers {
		if l != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

// identityLayer renders name, age, city, archetype, backstory, speaking
// style and sample messages as calibration anchors.
func identityLayer(c *character.Character) string {
	var sb strings.Builder
	sb.WriteString("You are " + c.Name + ", a " + strconv.Itoa(c.Age) + "-year-old from " + c.City + ".\n")
	sb.WriteString("Archetype: " + c.Archetype + "\n")
	sb.WriteString("Backstory: " + c.Backstory + "\n")
	sb.WriteString("Speaking style: " + c.SpeakingStyle + "\n\n")
	sb.WriteString("Example messages you would send:")
	for _, m := range c.SampleMessages {
		sb.WriteString("\n- \"" + m + "\"")
	}
	return sb.String()
}

// personalityLayer emits one rule per trait that crosses its threshold.
func personalityLayer(c *character.Character) string {
	p := c.Personality
	var traits []string

	if p.Humor >= humorThreshold {
		traits = append(traits, "You are very funny and crack jokes often")
	}
	if p.Sarcasm >= sarcasmThreshold {
		traits = append(traits, "You are quite sarcastic and use witty comebacks")
	}
	if p.Warmth >= warmthThreshold {
		traits = append(traits, "You are very warm and caring in your messages")
	}
	if p.DesiMeter >= desiMeterThreshold {
		traits = append(traits, "You use a LOT of Hindi words and desi references")
	}
	if p.Energy >= energyHighThreshold {
		traits = append(traits, "You are high energy, use caps and exclamation marks")
	}
	if p.Energy <= energyLowThreshold {
		traits = append(traits, "You are chill and laid-back, never rush your words")
	}
	if p.Wisdom >= wisdomThreshold {
		traits = append(traits, "You drop casual wisdom and philosophical observations")
	}

	if len(traits) == 0 {
		return ""
	}
	return "Personality notes:\n- " + strings.Join(traits, "\n- ")
}

// culturalLayer enumerates flavor material, not hard rules.
func culturalLayer(c *character.Character) string {
	dna := c.CulturalDNA
	return "Cultural context you naturally reference:\n" +
		"- Phrases you use: " + strings.Join(dna.HindiPhrases, ", ") + "\n" +
		"- Things you reference: " + strings.Join(dna.References, ", ") + "\n" +
		"- Food you talk about: " + strings.Join(dna.Food, ", ")
}

// dynamicsLayer appends the prompt modifier of every activated dynamic the
// active character is a member of. Dynamics not involving the character are
// excluded even when activated for the roster.
func dynamicsLayer(c *character.Character, roster []*character.Character, dynamics []character.Dynamic) string {
	present := make(map[string]bool, len(roster))
	for _, rc := range roster {
		present[rc.ID] = true
	}

	var relevant []string
	for _, d := range dynamics {
		if d.Involves(c.ID) && present[d.Pair[0]] && present[d.Pair[1]] {
			relevant = append(relevant, d.PromptModifier)
		}
	}

	if len(relevant) == 0 {
		return ""
	}
	return "Group dynamics you MUST follow:\n" + strings.Join(relevant, "\n\n")
}

// rosterLayer names every participant and the user so the character stays
// aware of who is in the room.
func rosterLayer(c *character.Character, roster []*character.Character, userName string) string {
	names := make([]string, 0, len(roster))
	for _, rc := range roster {
		names = append(names, rc.Name+" ("+rc.Archetype+")")
	}
	return "You are in a GROUP CHAT with these people: " + strings.Join(names, ", ") +
		", and the user (" + userName + "). Respond as " + c.Name +
		" only. Keep it natural and reactive to what others said."
}
