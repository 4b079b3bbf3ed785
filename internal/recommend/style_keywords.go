// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package recommend

// styleKeywordAllowlist is the deploy-time set of keyword tokens that count
// as "style" during scoring. It is compiled in rather than loaded from the
// database so scoring inputs stay hermetic and reviewable. Tokens are
// lowercase, matching the store's keyword normalization.
var styleKeywordAllowlist = map[string]struct{}{
	"neo-noir":               {},
	"film noir":              {},
	"whodunit":               {},
	"nonlinear timeline":     {},
	"psychological thriller": {},
	"psychological horror":   {},
	"mind-bending":           {},
	"unreliable narrator":    {},
	"twist ending":           {},
	"plot twist":             {},
	"time loop":              {},
	"time travel":            {},
	"found footage":          {},
	"mockumentary":           {},
	"anthology":              {},
	"slow burn":              {},
	"coming of age":          {},
	"dark comedy":            {},
	"black comedy":           {},
	"satire":                 {},
	"parody":                 {},
	"dystopia":               {},
	"post-apocalyptic":       {},
	"cyberpunk":              {},
	"steampunk":              {},
	"space opera":            {},
	"heist":                  {},
	"one location":           {},
	"single take":            {},
	"ensemble cast":          {},
	"slasher":                {},
	"body horror":            {},
	"cosmic horror":          {},
	"surrealism":             {},
	"magical realism":        {},
	"road movie":             {},
	"courtroom drama":        {},
	"revenge":                {},
	"survival":               {},
	"based on true story":    {},
	"stop motion":            {},
	"hand drawn animation":   {},
	"silent film":            {},
	"musical":                {},
	"martial arts":           {},
	"kaiju":                  {},
	"epic":                   {},
	"minimalist":             {},
}

// IsStyleKeyword reports whether the token is on the style allowlist.
func IsStyleKeyword(token string) bool {
	_, ok := styleKeywordAllowlist[token]
	return ok
}

// filterStyleKeywords keeps only allowlisted tokens, preserving input order.
func filterStyleKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if IsStyleKeyword(k) {
			out = append(out, k)
		}
	}
	return out
}
