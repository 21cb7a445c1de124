package booking

// Draft is the partially filled booking record. A field is present in the map
// iff it has been accepted; the tracker maintains the filled-prefix invariant
// (everything before the cursor is set, nothing at or after it is).
type Draft map[Field]string

// NewDraft returns an empty draft.
func NewDraft() Draft {
	return make(Draft, len(fieldNames))
}

// Get returns the accepted value for a field, if any.
func (d Draft) Get(f Field) (string, bool) {
	v, ok := d[f]
	return v, ok
}

// Set records an accepted, normalized value.
func (d Draft) Set(f Field, value string) {
	d[f] = value
}
