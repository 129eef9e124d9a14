// Package seq implements Sequence, the variable-length immutable 2-bit
// packed DNA string spec.md §3 describes as backing (D) and (E). It shares
// its word layout with core/kmer via core/bitpack, but unlike a Kmer its
// length is not meant to be treated as a fixed configuration width — it's
// whatever a read or reference record happens to be.
package seq

import (
	"dbgassembler/core/bitpack"
	"dbgassembler/core/nucl"
)

// Sequence is an immutable, 2-bit packed DNA string of arbitrary length.
type Sequence struct {
	length int
	words  []uint64
}

// Len returns the number of nucleotides.
func (s Sequence) Len() int { return s.length }

// FromString builds a Sequence from an ACGT string. Any non-ACGT character
// fails with errs.InvalidNucleotide (via core/nucl.Digit).
func FromString(str string) (Sequence, error) {
	n := len(str)
	words := make([]uint64, bitpack.WordsFor(n))
	for i := 0; i < n; i++ {
		d, err := nucl.Digit(str[i])
		if err != nil {
			return Sequence{}, err
		}
		bitpack.Set(words, i, d)
	}
	return Sequence{length: n, words: words}, nil
}

// MustFromString panics instead of returning an error; for fixtures and
// tests that already know their input is clean.
func MustFromString(str string) Sequence {
	s, err := FromString(str)
	if err != nil {
		panic(err)
	}
	return s
}

// At returns the 2-bit digit at position i (0 <= i < Len()).
func (s Sequence) At(i int) nucl.Nucleotide {
	if i < 0 || i >= s.length {
		panic("seq: index out of range")
	}
	return bitpack.Get(s.words, i)
}

// Sub returns the subsequence [start,end).
func (s Sequence) Sub(start, end int) Sequence {
	if start < 0 || end > s.length || start > end {
		panic("seq: invalid subsequence range")
	}
	n := end - start
	return Sequence{length: n, words: bitpack.Sub(s.words, start, n)}
}

// ReverseComplement returns rc(s).
func (s Sequence) ReverseComplement() Sequence {
	return Sequence{length: s.length, words: bitpack.ReverseComplement(s.words, s.length)}
}

// String renders s as an ACGT string.
func (s Sequence) String() string {
	return bitpack.ToString(s.words, s.length)
}

// Equal reports whether s and o hold the same nucleotides.
func (s Sequence) Equal(o Sequence) bool {
	return s.length == o.length && bitpack.Equal(s.words, o.words)
}

// Concat returns s followed by o, the primitive a graph compressor uses to
// fold two adjacent edges' sequences into one.
func Concat(s, o Sequence) Sequence {
	n := s.length + o.length
	words := bitpack.FromDigits(n, func(i int) nucl.Nucleotide {
		if i < s.length {
			return s.At(i)
		}
		return o.At(i - s.length)
	})
	return Sequence{length: n, words: words}
}
