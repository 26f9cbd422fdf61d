package services

// ToggleSelection removes id when selected, otherwise appends it if the
// selection holds fewer than limit ids. Adding past the limit is a silent
// no-op. The input slice is never modified.
func ToggleSelection(selected []string, id string, limit int) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s == id {
			found = true
			continue
		}
		out = append(out, s)
	}
	if found {
		return out
	}
	if len(selected) >= limit {
		return append([]string(nil), selected...)
	}
	return append(out, id)
}

// SelectAllOrNone clears the selection when it is exactly every id in
// sortedIDs (and non-empty); otherwise it selects the first limit ids in
// the given order.
func SelectAllOrNone(selected, sortedIDs []string, limit int) []string {
	if len(sortedIDs) > 0 && sameSet(selected, sortedIDs) {
		return []string{}
	}
	n := min(limit, len(sortedIDs))
	if n < 0 {
		n = 0
	}
	return append([]string{}, sortedIDs[:n]...)
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, s := range a {
		seen[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := seen[s]; !ok {
			return false
		}
	}
	return len(seen) == len(a)
}
