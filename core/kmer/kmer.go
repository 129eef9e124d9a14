// Package kmer implements the immutable, bit-packed K-mer value type
// (spec.md §4.B). A Kmer's length is fixed at construction time and never
// changes in place; every operation returns a new value. This follows the
// "runtime-K" strategy the spec's design notes call out as equivalent to a
// compile-time-sized type for the inner loop: K is stored once per value
// instead of baked into a generic type parameter, so a KmerIndex can hold
// Kmers of a single configured width without the index itself needing to be
// generic over K.
package kmer

import (
	"dbgassembler/core/bitpack"
	"dbgassembler/core/nucl"
)

// Kmer is an immutable sequence of exactly K nucleotides, 2-bit packed.
// The zero value is the empty (K=0) k-mer.
type Kmer struct {
	k     int
	words []uint64
}

// K returns the k-mer's length.
func (x Kmer) K() int { return x.k }

// FromString builds a Kmer from an ACGT string of length k. Any character
// that is not 'A', 'C', 'G' or 'T' fails with errs.InvalidNucleotide.
func FromString(s string) (Kmer, error) {
	k := len(s)
	words := make([]uint64, bitpack.WordsFor(k))
	for i := 0; i < k; i++ {
		d, err := nucl.Digit(s[i])
		if err != nil {
			return Kmer{}, err
		}
		bitpack.Set(words, i, d)
	}
	return Kmer{k: k, words: words}, nil
}

// FromDigits builds a Kmer of the given length from a digit accessor,
// without passing through ASCII. Used by the read mapper to carve k-mers
// directly out of a Sequence's packed storage.
func FromDigits(length int, get func(i int) nucl.Nucleotide) Kmer {
	return Kmer{k: length, words: bitpack.FromDigits(length, get)}
}

// At returns the 2-bit digit at position i. Requires 0 <= i < K; violating
// that is a programmer error (the caller is expected to have checked K
// first) and panics rather than returning an error, per spec §7's rule that
// precondition violations outside the tagged taxonomy panic.
func (x Kmer) At(i int) nucl.Nucleotide {
	if i < 0 || i >= x.k {
		panic("kmer: index out of range")
	}
	return bitpack.Get(x.words, i)
}

// ReverseComplement returns rc(x): out[i] = complement(x[K-1-i]).
func (x Kmer) ReverseComplement() Kmer {
	return Kmer{k: x.k, words: bitpack.ReverseComplement(x.words, x.k)}
}

// ShiftLeft drops position 0 and appends c at position K-1 — the rolling
// step of advancing one base along a sequence. On an empty (K=0) k-mer this
// is a no-op, as is ShiftRight.
func (x Kmer) ShiftLeft(c nucl.Nucleotide) Kmer {
	if x.k == 0 {
		return x
	}
	words := make([]uint64, len(x.words))
	for i := 0; i < x.k-1; i++ {
		bitpack.Set(words, i, bitpack.Get(x.words, i+1))
	}
	bitpack.Set(words, x.k-1, c)
	return Kmer{k: x.k, words: words}
}

// ShiftRight drops position K-1 and prepends c at position 0.
func (x Kmer) ShiftRight(c nucl.Nucleotide) Kmer {
	if x.k == 0 {
		return x
	}
	words := make([]uint64, len(x.words))
	for i := x.k - 1; i > 0; i-- {
		bitpack.Set(words, i, bitpack.Get(x.words, i-1))
	}
	bitpack.Set(words, 0, c)
	return Kmer{k: x.k, words: words}
}

// PushBack returns a Kmer<K+1> equal to x with c appended at the end.
// Implemented directly against the bit-packed words (not by reparsing a
// string): the original Seq::pushBack already worked this way, only
// pushFront took the reparse shortcut the spec's Open Question marks
// normative-by-behavior, not by that implementation strategy — see
// PushFront.
func (x Kmer) PushBack(c nucl.Nucleotide) Kmer {
	words := make([]uint64, bitpack.WordsFor(x.k+1))
	copy(words, x.words)
	bitpack.Set(words, x.k, c)
	return Kmer{k: x.k + 1, words: words}
}

// PushFront returns a Kmer<K+1> equal to x with c prepended at the front.
// The original pushFront (seq.hpp) is marked "todo optimize!!!" and
// implemented by reconstructing the whole string and reparsing; per
// spec.md §9 Open Question 3 the prepend-and-grow behavior is normative
// regardless of strategy, so this implements it directly against the
// packed words instead of round-tripping through a string.
func (x Kmer) PushFront(c nucl.Nucleotide) Kmer {
	words := make([]uint64, bitpack.WordsFor(x.k+1))
	bitpack.Set(words, 0, c)
	for i := 0; i < x.k; i++ {
		bitpack.Set(words, i+1, bitpack.Get(x.words, i))
	}
	return Kmer{k: x.k + 1, words: words}
}

// Prefix returns the first k2 nucleotides of x. Requires k2 <= K.
func (x Kmer) Prefix(k2 int) Kmer {
	if k2 > x.k {
		panic("kmer: prefix longer than k-mer")
	}
	return Kmer{k: k2, words: bitpack.Sub(x.words, 0, k2)}
}

// Suffix returns the last k2 nucleotides of x. Requires k2 <= K.
func (x Kmer) Suffix(k2 int) Kmer {
	if k2 > x.k {
		panic("kmer: suffix longer than k-mer")
	}
	return Kmer{k: k2, words: bitpack.Sub(x.words, x.k-k2, k2)}
}

// String renders x as an ACGT string of length K.
func (x Kmer) String() string {
	return bitpack.ToString(x.words, x.k)
}

// Equal reports word-wise equality, valid because of the padding-is-A
// invariant maintained by every constructor above.
func (x Kmer) Equal(y Kmer) bool {
	return x.k == y.k && bitpack.Equal(x.words, y.words)
}

// Hash folds the storage words with the spec's normative polynomial:
// h starts at 239, then h = h*31 + w for each word. It depends only on
// nucleotide content because of the padding-is-A invariant.
func (x Kmer) Hash() uint64 {
	return bitpack.Hash(x.words)
}

// Less2 is the total order spec.md calls "less2": lexicographic comparison
// by nucleotide digit, NOT by word memory (which would order differently:
// position 0 sits in the lowest bits of its word, so a numeric comparison of
// words weighs later positions more heavily).
func (x Kmer) Less2(y Kmer) bool {
	n := x.k
	if y.k < n {
		n = y.k
	}
	for i := 0; i < n; i++ {
		a, b := x.At(i), y.At(i)
		if a != b {
			return a < b
		}
	}
	return x.k < y.k
}

// MustFromString is FromString for callers that have already validated the
// input and want to treat a failure as a programmer error.
func MustFromString(s string) Kmer {
	x, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return x
}
