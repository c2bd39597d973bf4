// Package feature implements the distinctive-feature model: features,
// their values, and the immutable matrices that describe one segment.
//
// Features are registered in a Set, which hands each one a dense index so
// a Matrix can store its values in a plain slice. Values are singletons:
// asking a feature for the same value twice returns the same pointer, so
// comparing two values is a pointer comparison. Scalar values are interned
// per magnitude for the same reason.
//
// Besides concrete values every feature has three special values:
//
//	*f   NullValue      matches when f is absent, clears f when combined
//	$f   VariableValue  binds f on first match, then requires equality
//	f    ExistsValue    (node features only) every leaf below f is present
//
// Values, tier predicates, and the aggregates built from them all satisfy
// Matcher or Combinable; MatrixMatcher and MatrixCombiner glue them
// into the match/rewrite halves that rule segments use.
package feature
