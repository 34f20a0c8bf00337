package roster

// ValidateAll recomputes every contact field and every entry field from
// scratch, including duplicate detection against the full roster. The
// result carries all errors at once so the caller can present a complete
// correction list in one pass.
// PRE: entries carry unique IDs
// POST: returned map has exactly one record per entry; ok is true iff no
// field anywhere is flagged
// INVARIANT: contact, entries and any prior error state are not mutated
func ValidateAll(contact Contact, entries Roster, window Window) (ContactErrors, ErrorMap, bool) {
	contactErrs := ContactErrors{
		TrainerName: !IsNonEmptyText(contact.TrainerName),
		Email:       !IsValidEmail(contact.Email),
		Phone:       !IsValidPhone(contact.Phone),
	}

	entryErrs := make(ErrorMap, len(entries))
	ok := !contactErrs.HasError()
	for _, e := range entries {
		errs := EntryErrors{
			FirstName: !IsNonEmptyText(e.FirstName),
			LastName:  !IsNonEmptyText(e.LastName),
			BirthYear: !IsValidBirthYear(e.BirthYear) || !window.Allows(e.BirthYear),
			Gender:    !IsValidGender(e.Gender),
			Duplicate: IsDuplicate(e, entries),
		}
		entryErrs[e.ID] = errs
		if errs.HasError() {
			ok = false
		}
	}
	return contactErrs, entryErrs, ok
}

// ValidateField recomputes only the changed field of one entry, preserving
// the previously computed state of that entry's other fields. Stale errors
// on untouched fields persist until their own field changes or a full
// ValidateAll pass runs; that trade-off keeps per-keystroke work constant.
//
// When a name field changes, the duplicate flag is recomputed for the
// edited entry AND every sibling, since a rename can create or dissolve a
// duplicate pair anywhere in the roster. Other fields leave Duplicate
// untouched.
// PRE: entries reflects the roster AFTER the change; entryID names a live entry
// POST: prior is unchanged; the returned map is a fresh value
func ValidateField(entries Roster, entryID, field string, window Window, prior ErrorMap) ErrorMap {
	next := prior.clone()

	entry, found := entries.FindEntry(entryID)
	if !found {
		return next
	}

	errs := next[entryID]
	switch field {
	case FieldFirstName:
		errs.FirstName = !IsNonEmptyText(entry.FirstName)
	case FieldLastName:
		errs.LastName = !IsNonEmptyText(entry.LastName)
	case FieldBirthYear:
		errs.BirthYear = !IsValidBirthYear(entry.BirthYear) || !window.Allows(entry.BirthYear)
	case FieldGender:
		errs.Gender = !IsValidGender(entry.Gender)
	default:
		return next
	}
	next[entryID] = errs

	if field == FieldFirstName || field == FieldLastName {
		for _, e := range entries {
			sibling := next[e.ID]
			sibling.Duplicate = IsDuplicate(e, entries)
			next[e.ID] = sibling
		}
	}

	return next
}
