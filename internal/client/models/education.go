package models

// Education is one education entry of the user profile. ID is empty until
// the backend has acknowledged the record; such entries may only be
// removed locally, never mutated remotely.
type Education struct {
	ID         string `json:"id,omitempty"`
	Degree     string `json:"degree" validate:"required"`
	University string `json:"university" validate:"required"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate,omitempty"`
}

func (e Education) ServerID() string { return e.ID }

// ForWire expands month-precision dates for the backend.
func (e Education) ForWire() Education {
	e.StartDate = ExpandMonth(e.StartDate)
	e.EndDate = ExpandMonth(e.EndDate)
	return e
}

// ForDisplay collapses dates back to "YYYY-MM".
func (e Education) ForDisplay() Education {
	e.StartDate = NormalizeMonth(e.StartDate)
	e.EndDate = NormalizeMonth(e.EndDate)
	return e
}
