package graph

// stringMaster is a DataMaster fixture for tests: data is a string and
// "conjugate" is string reversal, the simplest stand-in that still lets us
// exercise self-conjugate (palindromic) detection and a real merge.
type stringMaster struct{}

func (stringMaster) ConjugateVertex(s string) string { return reverseString(s) }
func (stringMaster) ConjugateEdge(s string) string   { return reverseString(s) }
func (stringMaster) IsSelfConjugate(s string) bool   { return s == reverseString(s) }
func (stringMaster) Merge(a, b string) string        { return a + b }

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
