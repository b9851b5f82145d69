// Package models defines the job-search domain records exchanged with the
// backend and cached locally: the user profile snapshot and the
// sub-resource collections (education, experience, applications, saved
// jobs).
package models

// User is the denormalized profile snapshot cached alongside the session
// token. It is display-only: authorization always defers to the backend,
// which re-checks the bearer token on every privileged call.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
	HasCV bool   `json:"hasCV"`
}
