// internal/models/applicant.go
package models

// Applicant is one anonymized candidate record. Responses are keyed by column
// ID; ReaderCompletion is a denormalized per-reader completion cache that the
// generator replaces wholesale and the recorder flips key by key. The review
// store stays authoritative for completion state.
type Applicant struct {
	ID               string                `json:"id"`
	Alias            string                `json:"alias"`
	Responses        map[string]FieldValue `json:"responses"`
	ReaderCompletion map[string]bool       `json:"readerCompletion"`
}
