package models

// Job is a listing as returned by the search endpoint. Read-only on the
// client.
type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Salary      string `json:"salary,omitempty"`
	Description string `json:"description,omitempty"`
}

// SavedJob is a bookmark on a listing, created by the swipe-to-save flow.
// JobTitle is enriched locally, like Application.JobTitle.
type SavedJob struct {
	ID       string `json:"id,omitempty"`
	JobID    string `json:"jobId" validate:"required"`
	SavedAt  string `json:"savedAt,omitempty"`
	JobTitle string `json:"-"`
}

func (s SavedJob) ServerID() string { return s.ID }

func (s SavedJob) ForWire() SavedJob    { return s }
func (s SavedJob) ForDisplay() SavedJob { return s }
