package validated

import (
	"iter"
	"slices"
)

// FilterValid returns the payloads of the valid elements of vs in their
// original order. Failures are dropped without their reasons.
func FilterValid[E any](vs []Validated[E]) []E {
	out := make([]E, 0, len(vs))
	for v := range Valids(slices.Values(vs)) {
		out = append(out, v)
	}
	return out
}

// Valids yields the payloads of the valid elements of seq.
func Valids[E any](seq iter.Seq[Validated[E]]) iter.Seq[E] {
	return func(yield func(E) bool) {
		for v := range seq {
			if v.kind == KindValid && !yield(v.value) {
				return
			}
		}
	}
}

// Count reports how many of vs are in each state.
func Count[E any](vs []Validated[E]) (valid, invalid, invalidComponent int) {
	for _, v := range vs {
		switch v.kind {
		case KindValid:
			valid++
		case KindInvalid:
			invalid++
		default:
			invalidComponent++
		}
	}
	return valid, invalid, invalidComponent
}
