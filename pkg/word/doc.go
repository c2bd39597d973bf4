// Package word holds the mutable segment sequence that rules rewrite, and
// the cursors rules walk it with.
//
// A Word is a doubly linked list of segments. Removing a node leaves its
// prev/next links in place, so a cursor parked on a deleted node still
// knows where its neighbours were and continues from there on its next
// move. Edits made through any cursor are visible to every other cursor
// on its next move.
//
// Slices enumerates the candidate start positions of a rule in the rule's
// direction, skipping positions the filter rejects. Every slice reads
// rightward from its start to the end of the word.
package word
