package domain

// Selection is a pair of rune offsets targeting a sub-range of a buffer.
// Clients compute selections against a buffer length that may have changed
// by the time the operation arrives, so a selection is never rejected:
// Normalize corrects inverted or out-of-range pairs instead.
type Selection struct {
	Start int
	End   int
}

// Normalize orders the pair and clamps both ends into [0, bufLen].
// Degenerate input yields a valid empty or boundary range.
func (s Selection) Normalize(bufLen int) (lo, hi int) {
	lo, hi = s.Start, s.End
	if lo > hi {
		lo, hi = hi, lo
	}
	return clamp(lo, 0, bufLen), clamp(hi, 0, bufLen)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
