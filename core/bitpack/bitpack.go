// Package bitpack holds the 2-bit-per-nucleotide word packing shared by
// core/kmer and core/seq. Both types store a DNA string as an array of
// uint64 words, each holding 32 nucleotides at two bits apiece, nucleotide i
// living at bit offset 2*(i mod 32) of word i/32 — the layout spec.md §3
// describes generically for any machine word width, specialised here to
// uint64 (32 nucleotides/word) the way the teacher specialises its storage
// to a fixed scalar type rather than leaving it a free type parameter.
//
// The padding-is-A invariant (every bit beyond position 2*length is zero)
// is maintained by every function in this package and is what makes Equal
// a plain word-wise comparison and Hash insensitive to unused trailing
// bits.
package bitpack

import "dbgassembler/core/nucl"

// PerWord is the number of nucleotides one uint64 word stores.
const PerWord = 32

// WordsFor returns the number of uint64 words needed to store length
// nucleotides.
func WordsFor(length int) int {
	if length <= 0 {
		return 0
	}
	return (length + PerWord - 1) / PerWord
}

// Get returns the 2-bit digit at position i.
func Get(words []uint64, i int) nucl.Nucleotide {
	w := words[i/PerWord]
	shift := uint(i%PerWord) * 2
	return nucl.Nucleotide((w >> shift) & 3)
}

// Set writes the 2-bit digit d at position i.
func Set(words []uint64, i int, d nucl.Nucleotide) {
	idx := i / PerWord
	shift := uint(i%PerWord) * 2
	words[idx] = (words[idx] &^ (uint64(3) << shift)) | (uint64(d) << shift)
}

// FromDigits packs length digits (read via get) into a fresh word array.
func FromDigits(length int, get func(i int) nucl.Nucleotide) []uint64 {
	words := make([]uint64, WordsFor(length))
	for i := 0; i < length; i++ {
		Set(words, i, get(i))
	}
	return words
}

// ToString renders length digits starting at offset 0 as an ACGT string.
func ToString(words []uint64, length int) string {
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		out[i] = nucl.Char(Get(words, i))
	}
	return string(out)
}

// ReverseComplement returns a fresh word array holding the reverse
// complement of the length-nucleotide sequence in words.
func ReverseComplement(words []uint64, length int) []uint64 {
	out := make([]uint64, len(words))
	for i := 0; i < length; i++ {
		d := nucl.Complement(Get(words, i))
		Set(out, length-1-i, d)
	}
	return out
}

// Equal reports whether a and b (both exactly length nucleotides) are
// word-wise identical. This is correct only because of the padding-is-A
// invariant: any garbage beyond 2*length would break it.
func Equal(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Hash folds the storage words into a single value: h starts at 239 and
// each word is folded in as h = h*31 + w. This is the spec's normative
// hash and is confirmed verbatim by the original Seq<size_,T>::hash in
// seq.hpp (h = (h<<5) - h + w, which is h*31 + w since (h<<5)-h == 32h-h).
func Hash(words []uint64) uint64 {
	h := uint64(239)
	for _, w := range words {
		h = h*31 + w
	}
	return h
}

// Sub extracts the length2 nucleotides starting at offset into a fresh word
// array, used by Prefix/Suffix/subsequence operations.
func Sub(words []uint64, offset, length2 int) []uint64 {
	out := make([]uint64, WordsFor(length2))
	for i := 0; i < length2; i++ {
		Set(out, i, Get(words, offset+i))
	}
	return out
}
