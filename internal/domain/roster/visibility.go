package roster

// Visibility tracks which errors may be shown to the user. An entry's
// field error stays hidden until that field has been edited at least once,
// or until a full validation pass has run (submit or download attempt).
// This keeps pristine, untouched rows free of red marks.
type Visibility struct {
	touched map[string]map[string]bool
	fullRun bool
}

// NewVisibility returns a tracker with nothing touched yet.
func NewVisibility() *Visibility {
	return &Visibility{touched: make(map[string]map[string]bool)}
}

// Touch records that a field of an entry was edited.
// POST: ShouldShow(entryID, field) returns true from now on
func (v *Visibility) Touch(entryID, field string) {
	fields, ok := v.touched[entryID]
	if !ok {
		fields = make(map[string]bool)
		v.touched[entryID] = fields
	}
	fields[field] = true
}

// MarkFullRun records that a full-roster validation pass happened, making
// every error visible.
func (v *Visibility) MarkFullRun() {
	v.fullRun = true
}

// ShouldShow reports whether an error on the given field may be displayed.
func (v *Visibility) ShouldShow(entryID, field string) bool {
	if v.fullRun {
		return true
	}
	return v.touched[entryID][field]
}
