package converter

import "errors"

// Fatal extraction and resolution errors. These abort the conversion and
// surface verbatim to the caller; everything else is repaired or skipped.
var (
	// ErrNoClassFound means the source has no recognizable model class
	// declaration.
	ErrNoClassFound = errors.New("no model class declaration found")

	// ErrNoPartsFound means no part declarations were discovered under
	// any known idiom.
	ErrNoPartsFound = errors.New("no model parts found")

	// ErrConflictingHierarchy means a part was attached to two distinct
	// parents, or the attach statements form a cycle.
	ErrConflictingHierarchy = errors.New("cyclic or conflicting part hierarchy")

	// ErrInputTooLarge means the source exceeds the hard input cap.
	ErrInputTooLarge = errors.New("source exceeds maximum input size")

	// ErrInternal wraps a recovered panic from the pipeline. Malformed
	// input must never crash the host process.
	ErrInternal = errors.New("internal conversion error")
)
