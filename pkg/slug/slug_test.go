// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/libretto/pkg/slug"
)

/*
TestFrom verifies slug derivation for representative publication titles.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Moby-Dick", "moby-dick"},
		{"accents", "Vingt mille lieues sous les mers — Éd. illustrée", "vingt-mille-lieues-sous-les-mers-ed-illustree"},
		{"punctuation", "What is Life? (2nd ed.)", "what-is-life-2nd-ed"},
		{"whitespace_runs", "  A    Tale  of Two Cities ", "a-tale-of-two-cities"},
		{"empty", "", ""},
		{"symbols_only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.title))
		})
	}
}
