// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package moderation is the pre-send input classifier.
package moderation

import (
	"regexp"
	"strings"
)

// =============================================================================
// BLOCKLISTS
// =============================================================================

// blockedKeywords trips the inappropriate-content rule on a lower-cased
// substring match. First match wins.
var blockedKeywords = []string{
	"suicide", "kill myself", "self harm", "self-harm",
	"nude", "naked", "sex", "porn",
	"drug dealer", "buy drugs",
	"bomb", "terrorist", "attack plan",
}

// piiPatterns trips the personal-information rule. Shapes cover Aadhaar,
// phone numbers, PAN cards, email addresses and payment-card digit groups.
var piiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{12}\b`),                              // Aadhaar number
	regexp.MustCompile(`\b\d{10}\b`),                              // Phone number
	regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`),                  // PAN card
	regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.[\w.-]+\b`),            // Email
	regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`), // Card number
}

// Reason strings, keyed to the rule class that fired.
const (
	ReasonInappropriate = "Message contains inappropriate content"
	ReasonPII           = "Please don't share personal information like phone numbers, Aadhaar, or email addresses in chat"
)

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Result is the outcome of classifying one input.
type Result struct {
	Safe   bool
	Reason string
}

// Classify runs the keyword list against the lower-cased text, then the PII
// patterns against the raw text. Pure and synchronous; unsafe input must
// never reach the prompt composer or the completion client.
func Classify(text string) Result {
	lower := strings.ToLower(text)

	for _, keyword := range blockedKeywords {
		if strings.Contains(lower, keyword) {
			return Result{Safe: false, Reason: ReasonInappropriate}
		}
	}

	for _, pattern := range piiPatterns {
		if pattern.MatchString(text) {
			return Result{Safe: false, Reason: ReasonPII}
		}
	}

	return Result{Safe: true}
}
