package scrape

// Record is any entity kind with the uniform current-status predicate.
type Record interface {
	Current() bool
}

// CurrentOnly returns records unchanged when only is false. Otherwise it
// returns the records whose end date is absent or empty, preserving
// input order. The input is never mutated.
func CurrentOnly[T Record](records []T, only bool) []T {
	if !only {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.Current() {
			out = append(out, r)
		}
	}
	return out
}

// CountCurrent returns how many records are current.
func CountCurrent[T Record](records []T) int {
	n := 0
	for _, r := range records {
		if r.Current() {
			n++
		}
	}
	return n
}
