package profile

// Completion summarises how many tracked fields are present.
type Completion struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// MinProgressWidth keeps an empty progress bar visible.
const MinProgressWidth = 6

// Flags evaluates the presence predicate of every tracked field.
func Flags(p Profile) map[Field]bool {
	flags := make(map[Field]bool, len(Fields))
	for _, f := range Fields {
		flags[f] = p.Has(f)
	}
	return flags
}

// ComputeCompletion counts present fields over the fixed set of seven.
func ComputeCompletion(p Profile) Completion {
	return ComputeCompletionOrdered(p, Fields)
}

// ComputeCompletionOrdered evaluates the fields in the given order. Total is
// always len(Fields); unknown or repeated entries in order are ignored.
func ComputeCompletionOrdered(p Profile, order []Field) Completion {
	seen := make(map[Field]bool, len(Fields))
	done := 0
	for _, f := range order {
		if seen[f] {
			continue
		}
		seen[f] = true
		if p.Has(f) {
			done++
		}
	}
	total := len(Fields)
	return Completion{
		Done:    done,
		Total:   total,
		Percent: roundPercent(done, total),
	}
}

// roundPercent is round-half-up of done*100/total in integer arithmetic.
func roundPercent(done, total int) int {
	if total == 0 {
		return 0
	}
	return (200*done + total) / (2 * total)
}

// ProgressWidth is the completion bar width as a percentage.
func ProgressWidth(c Completion) int {
	if c.Percent < MinProgressWidth {
		return MinProgressWidth
	}
	return c.Percent
}
