// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"reflect"
	"testing"
)

func TestPrefixIndexLookup(t *testing.T) {
	t.Parallel()

	p := NewPrefixIndex()
	titles := []string{"Avatar", "The Avengers", "Avengers: Age of Ultron", "Up", "avatar"}
	for i, title := range titles {
		p.Insert(title, i)
	}

	tests := []struct {
		name   string
		prefix string
		limit  int
		want   []int
	}{
		{"case-insensitive", "AV", 0, []int{0, 2, 4}},
		{"exact word", "avengers", 0, []int{2}},
		{"limit", "a", 2, []int{0, 2}},
		{"no match", "zz", 0, nil},
		{"empty prefix matches all", "", 0, []int{0, 1, 2, 3, 4}},
		{"leading space ignored", "  up", 0, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := p.Lookup(tt.prefix, tt.limit); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lookup(%q, %d) = %v, want %v", tt.prefix, tt.limit, got, tt.want)
			}
		})
	}
}

func TestPrefixIndexSize(t *testing.T) {
	t.Parallel()

	p := NewPrefixIndex()
	p.Insert("", 0)
	p.Insert("Heat", 1)
	p.Insert("heat", 2)

	if p.Size() != 2 {
		t.Errorf("Size() = %d, want 2", p.Size())
	}
}
