package models

// ApplicationStatus enumerates the lifecycle of a job application as
// reported by the backend.
type ApplicationStatus string

const (
	StatusSubmitted   ApplicationStatus = "submitted"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Application is a job application record. JobTitle is joined in locally
// from the job listing and never sent back; when the join fails the field
// degrades to a placeholder without affecting other records.
type Application struct {
	ID        string            `json:"id,omitempty"`
	JobID     string            `json:"jobId" validate:"required"`
	Status    ApplicationStatus `json:"status,omitempty"`
	AppliedAt string            `json:"appliedAt,omitempty"`
	JobTitle  string            `json:"-"`
}

func (a Application) ServerID() string { return a.ID }

func (a Application) ForWire() Application    { return a }
func (a Application) ForDisplay() Application { return a }
