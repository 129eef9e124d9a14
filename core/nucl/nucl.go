// Package nucl implements the 2-bit nucleotide codec: the mapping between
// ACGT characters and their 2-bit digit representation, and complement.
//
// Every other core package builds on this codec; it has no dependencies of
// its own besides core/errs.
package nucl

import "dbgassembler/core/errs"

// Nucleotide is a 2-bit digit in {0,1,2,3}.
type Nucleotide = uint8

const (
	A Nucleotide = 0
	C Nucleotide = 1
	G Nucleotide = 2
	T Nucleotide = 3
)

// IsNucl reports whether c is one of 'A','C','G','T' (upper case only; the
// source format this codec serves is always upper-cased upstream).
func IsNucl(c byte) bool {
	switch c {
	case 'A', 'C', 'G', 'T':
		return true
	}
	return false
}

// IsDigitNucl reports whether d is a valid 2-bit digit.
func IsDigitNucl(d uint8) bool {
	return d <= T
}

// Digit converts an ACGT character to its 2-bit digit. Any other input is a
// programmer error: the caller is expected to have validated its source
// upstream, so this fails with errs.InvalidNucleotide rather than silently
// coercing.
func Digit(c byte) (Nucleotide, error) {
	switch c {
	case 'A':
		return A, nil
	case 'C':
		return C, nil
	case 'G':
		return G, nil
	case 'T':
		return T, nil
	}
	return 0, errs.New(errs.InvalidNucleotide, "nucl: invalid character %q", c)
}

// Char converts a 2-bit digit back to its ACGT character. Panics on an
// out-of-range digit: digits only ever originate from Digit or from
// bit-packed storage that itself only ever stores values produced by Digit,
// so an out-of-range value here means a caller built a Nucleotide by hand.
func Char(d Nucleotide) byte {
	switch d {
	case A:
		return 'A'
	case C:
		return 'C'
	case G:
		return 'G'
	case T:
		return 'T'
	}
	panic("nucl: invalid digit")
}

// Complement returns the Watson-Crick complement of a 2-bit digit: A<->T,
// C<->G. Because the encoding assigns A=0,C=1,G=2,T=3, complement is simply
// 3-x.
func Complement(d Nucleotide) Nucleotide {
	return 3 - d
}
