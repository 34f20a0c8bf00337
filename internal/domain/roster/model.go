package roster

// Gender codes, uppercase canonical form.
const (
	GenderMale   = "M"
	GenderFemale = "W"
)

// Entry field names accepted by ValidateField.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBirthYear = "birth_year"
	FieldGender    = "gender"
)

// Entry is one athlete row while a roster is being edited. The ID is
// generated by the caller when the row is created and is never reused.
// BirthYear stays raw user input until validation.
type Entry struct {
	ID        string
	FirstName string
	LastName  string
	BirthYear string
	Gender    string
}

// Roster is the ordered list of entries for one registration. Order is
// display order only.
type Roster []Entry

// Contact holds the responsible trainer's details for a registration.
type Contact struct {
	TrainerName string
	Club        string
	Email       string
	Phone       string
}

// EntryErrors records which fields of one entry are invalid. Keyed by
// entry ID in an ErrorMap.
type EntryErrors struct {
	FirstName bool
	LastName  bool
	BirthYear bool
	Gender    bool
	Duplicate bool
}

// HasError returns true if any field of the entry is flagged.
// INVARIANT: EntryErrors fields are not mutated
func (e EntryErrors) HasError() bool {
	return e.FirstName || e.LastName || e.BirthYear || e.Gender || e.Duplicate
}

// ContactErrors records which contact fields are invalid. The club is
// optional and never flagged.
type ContactErrors struct {
	TrainerName bool
	Email       bool
	Phone       bool
}

// HasError returns true if any contact field is flagged.
// INVARIANT: ContactErrors fields are not mutated
func (c ContactErrors) HasError() bool {
	return c.TrainerName || c.Email || c.Phone
}

// ErrorMap holds per-entry error state keyed by entry ID. Entries removed
// from the roster may leave stale keys behind; consumers look up errors by
// a live entry's ID only, so stale keys are harmless.
type ErrorMap map[string]EntryErrors

// clone returns a shallow copy so validation never mutates a caller's map.
func (m ErrorMap) clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for id, errs := range m {
		out[id] = errs
	}
	return out
}

// FindEntry returns the entry with the given ID, or false if absent.
func (r Roster) FindEntry(id string) (Entry, bool) {
	for _, e := range r {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
