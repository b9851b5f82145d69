package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/dsmolyakov/jobdeck/internal/client/models"
)

// Backend endpoint paths. Collections follow the common pattern:
// GET list, POST create, PUT update-by-id, DELETE delete-by-id.
const (
	PathLogin      = "/auth/login"
	PathSignup     = "/auth/signup"
	PathLogout     = "/auth/logout"
	PathProfile    = "/profile"
	PathCV         = "/profile/cv"
	PathJobs       = "/jobs"
	PathEducation  = "/profile/education"
	PathExperience = "/profile/experience"
	PathApps       = "/applications"
	PathSavedJobs  = "/saved-jobs"
)

// LoginResult is the login/signup response: the bearer credential plus the
// profile snapshot cached alongside it.
type LoginResult struct {
	AccessToken string      `json:"accessToken"`
	User        models.User `json:"user"`
}

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var res LoginResult
	err := c.Do(ctx, Request{
		Path: PathLogin,
		Body: credentials{Email: email, Password: password},
	}, &res)
	return res, err
}

func (c *Client) Register(ctx context.Context, name, email, password string) (LoginResult, error) {
	var res LoginResult
	err := c.Do(ctx, Request{
		Path: PathSignup,
		Body: credentials{Name: name, Email: email, Password: password},
	}, &res)
	return res, err
}

// Logout invalidates the token server-side. Best effort: local session
// destruction does not depend on it succeeding.
func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: PathLogout}, nil)
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.Do(ctx, Request{Path: PathProfile}, &u)
	return u, err
}

// UpdateProfile sends the edited profile and returns the server echo
// merged over the submitted values.
func (c *Client) UpdateProfile(ctx context.Context, u models.User) (models.User, error) {
	merged := u
	err := c.Do(ctx, Request{Method: http.MethodPut, Path: PathProfile, Body: u}, &merged)
	if err != nil {
		return models.User{}, err
	}
	return merged, nil
}

// UploadCV posts the resume as a multipart body. The content type is owned
// by the multipart encoder, not the JSON default.
func (c *Client) UploadCV(ctx context.Context, fileName string, content io.Reader) error {
	return c.Do(ctx, Request{
		Path:      PathCV,
		Multipart: &Multipart{Field: "cv", FileName: fileName, Content: content},
	}, nil)
}

// SearchJobs lists jobs, optionally filtered by a search query.
func (c *Client) SearchJobs(ctx context.Context, query string) ([]models.Job, error) {
	req := Request{Path: PathJobs}
	if query != "" {
		req.Query = url.Values{"search": {query}}
	}
	var raw json.RawMessage
	if err := c.Do(ctx, req, &raw); err != nil {
		return nil, err
	}
	return DecodeList[models.Job](raw, "jobs")
}

// Job fetches a single listing, used to enrich applications and saved jobs
// with their job titles.
func (c *Client) Job(ctx context.Context, id string) (models.Job, error) {
	var j models.Job
	err := c.Do(ctx, Request{Path: PathJobs + "/" + id}, &j)
	return j, err
}

// List fetches a whole collection and normalizes the response envelope.
// Used by the sub-resource managers.
func List[T any](ctx context.Context, c *Client, path, resource string) ([]T, json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, Request{Path: path}, &raw); err != nil {
		return nil, nil, err
	}
	items, err := DecodeList[T](raw, resource)
	if err != nil {
		return nil, nil, err
	}
	return items, raw, nil
}
