package canon

// TotalChapters is the length of the canonical read-through plan.
var TotalChapters = func() int {
	n := 0
	for _, b := range Books {
		n += b.Chapters
	}
	return n
}()

// PlanAt maps a read-through index (0-based) to the chapter it refers to in
// canonical order. Out-of-range indexes wrap around so a finished plan starts
// over rather than running off the end.
func PlanAt(index int) (Book, int) {
	if index < 0 {
		index = 0
	}
	index = index % TotalChapters
	for _, b := range Books {
		if index < b.Chapters {
			return b, index + 1
		}
		index -= b.Chapters
	}
	// Unreachable: index was reduced modulo TotalChapters.
	return Books[0], 1
}
