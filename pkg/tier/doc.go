// Package tier holds the fixed syllable-structure hierarchy.
//
// The hierarchy has six tiers and never changes:
//
//	syllable
//	├── onset ──────┐
//	└── rime        │
//	    ├── nucleus ├── segment
//	    └── coda ───┘
//
// Segment tree nodes in package word report their tier ancestry through
// HasAncestor, which lets a rule restrict a match to, say, segments that
// sit inside an onset. Predicate wraps that test so it can be used as an
// ordinary bracketed match condition: "<onset>" or "<*onset>".
package tier
