// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package cache

import (
	"sort"
	"strings"
)

// trieNode is a node of a Trie. Children are kept in a map and visited in
// rune order during completion.
type trieNode[V comparable] struct {
	children map[rune]*trieNode[V]
	values   []V // values whose key ends here, in insertion order
}

func newTrieNode[V comparable]() *trieNode[V] {
	return &trieNode[V]{children: make(map[rune]*trieNode[V])}
}

// Trie is a case-insensitive prefix tree mapping string keys to values.
//
// It is built once and then only read: Insert is not safe for concurrent
// use, Complete and Len are. Lookups are O(m) in the prefix length plus
// the number of visited nodes, which Complete bounds by stopping at limit.
type Trie[V comparable] struct {
	root *trieNode[V]
	size int
}

// NewTrie creates an empty trie.
func NewTrie[V comparable]() *Trie[V] {
	return &Trie[V]{root: newTrieNode[V]()}
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Insert adds value under key. Empty keys are ignored. Inserting the same
// value under the same key twice stores it once.
func (t *Trie[V]) Insert(key string, value V) {
	key = normalizeKey(key)
	if key == "" {
		return
	}

	node := t.root
	for _, ch := range key {
		next := node.children[ch]
		if next == nil {
			next = newTrieNode[V]()
			node.children[ch] = next
		}
		node = next
	}

	for _, v := range node.values {
		if v == value {
			return
		}
	}
	node.values = append(node.values, value)
	t.size++
}

// Len returns the number of stored values.
func (t *Trie[V]) Len() int {
	return t.size
}

// Complete returns up to limit values whose key starts with prefix, in
// ascending key order. A non-positive limit returns every match.
func (t *Trie[V]) Complete(prefix string, limit int) []V {
	node := t.root
	for _, ch := range normalizeKey(prefix) {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}

	var out []V
	t.collect(node, limit, &out)
	return out
}

// collect walks node depth-first in rune order. It reports false once
// limit values were gathered.
func (t *Trie[V]) collect(node *trieNode[V], limit int, out *[]V) bool {
	for _, v := range node.values {
		if limit > 0 && len(*out) >= limit {
			return false
		}
		*out = append(*out, v)
	}

	keys := make([]rune, 0, len(node.children))
	for ch := range node.children {
		keys = append(keys, ch)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, ch := range keys {
		if !t.collect(node.children[ch], limit, out) {
			return false
		}
	}
	return limit <= 0 || len(*out) < limit
}
