package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON-serialized column types. Stored as text so the same models work
// against PostgreSQL in production and SQLite in tests.

// StringList is a []string persisted as a JSON array
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Contains reports whether the list contains s
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// RelatedJobList is a []RelatedJob persisted as a JSON array
type RelatedJobList []RelatedJob

// Value implements driver.Valuer
func (l RelatedJobList) Value() (driver.Value, error) {
	if l == nil {
		l = RelatedJobList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *RelatedJobList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// NoteList is a []NoteEntry persisted as a JSON array
type NoteList []NoteEntry

// Value implements driver.Valuer
func (l NoteList) Value() (driver.Value, error) {
	if l == nil {
		l = NoteList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *NoteList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value interface{}, target interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, target)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), target)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
