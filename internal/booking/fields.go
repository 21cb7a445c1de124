// Package booking implements the conversational appointment-booking engine:
// an ordered slot-filling state machine that turns free-text chat turns into
// a validated appointment draft and hands the completed draft to a
// persistence adapter.
package booking

import "fmt"

// Field identifies one slot of the booking draft. The declared order is the
// order the conversation asks for them; it is fixed and never reordered at
// runtime.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldPhone
	FieldDate
	FieldTime
	FieldService
	FieldNotes
)

// FieldOrder returns the fixed asking order.
func FieldOrder() []Field {
	return []Field{FieldName, FieldEmail, FieldPhone, FieldDate, FieldTime, FieldService, FieldNotes}
}

var fieldNames = map[Field]string{
	FieldName:    "name",
	FieldEmail:   "email",
	FieldPhone:   "phone",
	FieldDate:    "date",
	FieldTime:    "time",
	FieldService: "service",
	FieldNotes:   "notes",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// MarshalText lets drafts serialize with readable field keys.
func (f Field) MarshalText() ([]byte, error) {
	name, ok := fieldNames[f]
	if !ok {
		return nil, fmt.Errorf("booking: unknown field %d", int(f))
	}
	return []byte(name), nil
}

// UnmarshalText restores a field from its name.
func (f *Field) UnmarshalText(text []byte) error {
	for field, name := range fieldNames {
		if name == string(text) {
			*f = field
			return nil
		}
	}
	return fmt.Errorf("booking: unknown field %q", string(text))
}
