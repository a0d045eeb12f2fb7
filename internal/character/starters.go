// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package character holds the static persona catalog for adda.
package character

// =============================================================================
// CONVERSATION STARTERS
// =============================================================================

// Starters are suggested opening messages shown on an empty chat screen.
var Starters = []Starter{
	{
		CharacterID: "bunny",
		Prompts: []string{
			"Bro what's your latest startup idea?",
			"Mujhe bhi startup karna hai, guide karo",
			"Shark Tank mein jaoge toh kya pitch karoge?",
			"Delhi mein best co-working space kaunsa hai?",
		},
	},
	{
		CharacterID: "kavya",
		Prompts: []string{
			"Aaj khana nahi khaya maine 😅",
			"Mummy mujhe kuch advice do",
			"Sharma ji ka beta kya kar raha hai aajkal?",
			"Ghar ki yaad aa rahi hai 🥺",
		},
	},
	{
		CharacterID: "zoya",
		Prompts: []string{
			"Yaar mera breakup ho gaya 💔",
			"Mujhe shopping pe le chalo",
			"Office mein drama ho gaya today",
			"Koi acha cafe batao Mumbai mein",
		},
	},
	{
		CharacterID: "vikram",
		Prompts: []string{
			"Bhai gym start karna hai, kaise karoon?",
			"Mera weight loss nahi ho raha 😢",
			"Best protein powder kaunsa hai?",
			"Aaj bahut lazy feel ho raha hai",
		},
	},
	{
		CharacterID: "tara",
		Prompts: []string{
			"Meri kundli padho na please 🙏",
			"Aaj ka din kaisa rahega mera?",
			"Main Scorpio hoon, kya expect karoon?",
			"Mercury retrograde mein kya avoid karoon?",
		},
	},
	{
		CharacterID: "rohan",
		Prompts: []string{
			"UPSC ki tayari kaise karoon?",
			"Sarkari naukri sach mein itni achhi hai?",
			"Private job chhod doon kya?",
			"Form bharne ki last date kab hai?",
		},
	},
	{
		CharacterID: "meera",
		Prompts: []string{
			"America mein life kaisi hai?",
			"Mujhe bhi abroad jana hai, tips do",
			"India ki kya cheez sabse zyada miss karti ho?",
			"Wahan Diwali kaise manate ho?",
		},
	},
	{
		CharacterID: "faizan",
		Prompts: []string{
			"Aaj ka best meme bhejo",
			"Hera Pheri ka favourite dialogue kya hai?",
			"Mujhe hasao yaar, mood off hai",
			"IPL pe kya scene hai?",
		},
	},
	{
		CharacterID: "ananya",
		Prompts: []string{
			"Meri life plan karne mein help karo",
			"Padhai mein focus nahi ho raha",
			"Career switch karna chahiye kya?",
			"Koi acha Notion template hai?",
		},
	},
	{
		CharacterID: "dev",
		Prompts: []string{
			"Yaar bahut stress ho raha hai",
			"Goa shift ho jaun kya main?",
			"Life ka matlab kya hai bro?",
			"Kaise itne chill rehte ho tum?",
		},
	},
}
