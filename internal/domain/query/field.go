package query

// Field names a scheme field that can participate in free-text search.
type Field string

// Searchable fields.
const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
	FieldState       Field = "state"
	FieldKeywords    Field = "keywords"
)

// AllFields returns every searchable field in match order.
func AllFields() []Field {
	return []Field{FieldTitle, FieldDescription, FieldCategory, FieldState, FieldKeywords}
}

// IsValid checks if the field is searchable.
func (f Field) IsValid() bool {
	switch f {
	case FieldTitle, FieldDescription, FieldCategory, FieldState, FieldKeywords:
		return true
	}
	return false
}
