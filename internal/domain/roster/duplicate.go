package roster

import "strings"

// IsDuplicate reports whether another entry in the roster carries the same
// normalized (first name, last name) pair. Normalization is trim plus
// lowercase. Entries with a blank first or last name never count as
// duplicates of each other.
//
// The check deliberately ignores birth year: two athletes who share a name
// are flagged even when their years differ, matching the submission rules
// the club has always applied.
// INVARIANT: entry and allEntries are not mutated
func IsDuplicate(entry Entry, allEntries Roster) bool {
	first := normalizeName(entry.FirstName)
	last := normalizeName(entry.LastName)
	if first == "" || last == "" {
		return false
	}

	for _, other := range allEntries {
		if other.ID == entry.ID {
			continue
		}
		if normalizeName(other.FirstName) == first && normalizeName(other.LastName) == last {
			return true
		}
	}
	return false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
