// internal/models/column.go
package models

// Column describes one importable data column and its PII/visibility tags.
// At most one column carries each of IsName/IsEmail/IsResume at a time.
type Column struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Hidden      bool   `json:"hidden"`
	IsName      bool   `json:"isName"`
	IsEmail     bool   `json:"isEmail"`
	IsResume    bool   `json:"isResume"`
	Index       int    `json:"index"`
}

// PII reports whether the column's values must never reach readers.
func (c Column) PII() bool {
	return c.IsName || c.IsEmail
}
