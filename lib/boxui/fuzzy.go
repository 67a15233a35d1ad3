// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	// The V2 scorer reads its bonus tables from the scheme; without one
	// every match scores zero.
	algo.Init("default")
}

// FuzzyResult is an fzf match of a pattern against one string.
// Positions are rune indices into the text, ascending. A zero Score
// means no match.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// FuzzyMatch runs fzf's V2 algorithm case-insensitively. slab may be
// nil; callers matching many strings should share one.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}
	match := FuzzyResult{Score: result.Score}
	if positions != nil {
		match.Positions = append(match.Positions, (*positions)...)
		sort.Ints(match.Positions)
	}
	return match
}

// highlightMatches renders text with the runes at positions in the
// match style and the rest in base.
func highlightMatches(text string, positions []int, base, match lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}
	marked := make(map[int]bool, len(positions))
	for _, position := range positions {
		marked[position] = true
	}
	var builder strings.Builder
	var run []rune
	runMatched := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runMatched {
			builder.WriteString(match.Render(string(run)))
		} else {
			builder.WriteString(base.Render(string(run)))
		}
		run = run[:0]
	}
	for index, character := range []rune(text) {
		if marked[index] != runMatched {
			flush()
			runMatched = marked[index]
		}
		run = append(run, character)
	}
	flush()
	return builder.String()
}
