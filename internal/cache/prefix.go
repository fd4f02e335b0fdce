// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"sort"
	"strings"
	"sync"
	"unicode"
)

type prefixNode struct {
	children map[rune]*prefixNode
	ids      []int // ids whose key ends at this node
}

func newPrefixNode() *prefixNode {
	return &prefixNode{children: make(map[rune]*prefixNode)}
}

// PrefixIndex is a case-insensitive prefix tree mapping strings to integer
// ids. The catalog uses it to answer title typeahead queries; ids are
// catalog positions, so results come back in catalog order.
//
// Lookups are O(m) to reach the prefix node where m is the prefix length,
// plus the size of the matching subtree.
type PrefixIndex struct {
	mu   sync.RWMutex
	root *prefixNode
	size int
}

// NewPrefixIndex creates an empty index.
func NewPrefixIndex() *PrefixIndex {
	return &PrefixIndex{root: newPrefixNode()}
}

func normalizePrefixKey(s string) string {
	return strings.ToLower(strings.TrimLeftFunc(s, unicode.IsSpace))
}

// Insert associates id with value. Several ids may share one key when
// values differ only by case.
func (p *PrefixIndex) Insert(value string, id int) {
	key := normalizePrefixKey(value)
	if key == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	node := p.root
	for _, ch := range key {
		next := node.children[ch]
		if next == nil {
			next = newPrefixNode()
			node.children[ch] = next
		}
		node = next
	}
	node.ids = append(node.ids, id)
	p.size++
}

// Lookup returns up to limit ids whose value starts with prefix, in
// ascending id order. limit <= 0 means no limit. An empty prefix matches
// everything.
func (p *PrefixIndex) Lookup(prefix string, limit int) []int {
	key := normalizePrefixKey(prefix)

	p.mu.RLock()
	defer p.mu.RUnlock()

	node := p.root
	for _, ch := range key {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}

	var ids []int
	collectPrefixIDs(node, &ids)
	sort.Ints(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}

func collectPrefixIDs(node *prefixNode, ids *[]int) {
	*ids = append(*ids, node.ids...)
	for _, child := range node.children {
		collectPrefixIDs(child, ids)
	}
}

// Size returns the number of inserted values.
func (p *PrefixIndex) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.size
}
