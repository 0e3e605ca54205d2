// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package internal

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Hex formats an address constant the way defines are published.
func Hex(value uint32) string {
	return fmt.Sprintf("0x%x", value)
}

// ConcatDefines chains several name/value sequences into one.
func ConcatDefines(seqs ...iter.Seq2[string, string]) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, seq := range seqs {
			for name, value := range seq {
				if !yield(name, value) {
					return
				}
			}
		}
	}
}

// SortedDefines collects a define sequence and yields it ordered by name.
// Later duplicates replace earlier ones.
func SortedDefines(seq iter.Seq2[string, string]) iter.Seq2[string, string] {
	all := maps.Collect(seq)
	return func(yield func(string, string) bool) {
		for _, name := range slices.Sorted(maps.Keys(all)) {
			if !yield(name, all[name]) {
				return
			}
		}
	}
}
