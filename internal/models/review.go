// internal/models/review.go
package models

// Review is one (applicant, reader) work item. Created only by assignment
// generation; only the Complete flag ever changes afterwards, and only from
// false to true, until a full regeneration wipes and recreates all reviews.
type Review struct {
	ID          string `json:"id"`
	ApplicantID string `json:"applicantId"`
	ReaderID    string `json:"readerId"`
	Complete    bool   `json:"complete"`
}

// ReviewSummary is the reader-dashboard projection of a review.
type ReviewSummary struct {
	ReviewID       string `json:"reviewId"`
	ApplicantAlias string `json:"applicantAlias"`
	Complete       bool   `json:"complete"`
}

// ReviewPackage is the anonymized, reader-facing view of one assignment.
// PII-tagged and hidden columns are excluded; the resume column becomes
// ResumeRef.
type ReviewPackage struct {
	ReviewID       string          `json:"reviewId"`
	ApplicantAlias string          `json:"applicantAlias"`
	Complete       bool            `json:"complete"`
	ResumeRef      string          `json:"resumeRef,omitempty"`
	Fields         []PackagedField `json:"fields"`
}

// PackagedField is one labeled response in a review package.
type PackagedField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
