package models

// Experience is one work-experience entry of the user profile.
type Experience struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

func (e Experience) ServerID() string { return e.ID }

func (e Experience) ForWire() Experience {
	e.StartDate = ExpandMonth(e.StartDate)
	e.EndDate = ExpandMonth(e.EndDate)
	return e
}

func (e Experience) ForDisplay() Experience {
	e.StartDate = NormalizeMonth(e.StartDate)
	e.EndDate = NormalizeMonth(e.EndDate)
	return e
}
