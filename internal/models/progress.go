// internal/models/progress.go
package models

// ProgressReport is the aggregated finished/remaining classification of all
// applicants. Applicant entries carry alias only; raw responses and the
// readerCompletion cache are deliberately absent from this view.
type ProgressReport struct {
	Finished   bool                `json:"finished"`
	TotalCount int                 `json:"totalCount"`
	Remaining  []ApplicantProgress `json:"remainingApplicants"`
	Completed  []ApplicantProgress `json:"completedApplicants"`
}

// ApplicantProgress is one applicant's row on the progress dashboard.
type ApplicantProgress struct {
	ApplicantID string           `json:"applicantId"`
	Alias       string           `json:"alias"`
	Finished    bool             `json:"finished"`
	Reviews     []ReviewProgress `json:"reviews"`
}

// ReviewProgress is one review joined with its reader's profile.
type ReviewProgress struct {
	ReviewID string        `json:"reviewId"`
	Complete bool          `json:"complete"`
	Reader   ReaderProfile `json:"reader"`
}
