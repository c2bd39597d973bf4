// Package rule implements phonological rules: ordered patterns of segments
// that are matched against a word at every candidate position and, where
// they match, rewrite it in place.
//
// # Segments
//
// A rule's pattern is a list of *Segment values. Each variant consumes a
// fixed amount of the word while matching and performs its edit while
// combining:
//
//	Context     match one position, leave it alone
//	Action      match one position, rewrite its matrix
//	Deleting    match one position, remove it
//	Inserting   match nothing, insert a new segment
//	Step        advance one position unconditionally
//	Backstep    move back one position
//	Repeat      match an inner pattern between min and max times
//	boundaries  LeftBoundary and RightBoundary, zero width
//
// Repeat is greedy and backtracks: when the rest of the pattern fails
// after n iterations it retries with n-1, down to the minimum. The count
// that succeeded is remembered in the feature.Context and replayed by the
// combine pass.
//
// # Application
//
// Rule.Apply visits the word's slices in the rule's direction. At each
// start it runs the read-only match pass, then the exclusion pattern, and
// only then the editing combine pass. Errors a rewrite can recover from
// (an unbound variable, a scalar out of range, a scalar op on a missing
// value) are reported to listeners and the pass continues.
package rule
