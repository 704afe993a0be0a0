package access

// Visible returns the subsequence of recs the user may see, preserving input
// order. The input slice is never mutated; each list fetch works on its own
// snapshot.
func Visible[T Record](r Role, userID string, recs []T) []T {
	sc := ScopeFor(r)
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		if CanSee(r, rec, userID, sc) {
			out = append(out, rec)
		}
	}
	return out
}

// Dedupe collapses records sharing an identifier. Callers concatenate fetch
// pages and fallback sources where later entries are authoritative refreshes,
// so the kept record is the last occurrence per id, while output order follows
// the first occurrence of each id. The ordering is pinned by an explicit index
// map rather than map iteration.
func Dedupe[T Record](recs []T) []T {
	index := make(map[string]int, len(recs))
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		id := rec.RecordID()
		if at, seen := index[id]; seen {
			out[at] = rec
			continue
		}
		index[id] = len(out)
		out = append(out, rec)
	}
	return out
}
