package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/dsmolyakov/jobdeck/internal/client/api"
	"github.com/dsmolyakov/jobdeck/internal/client/models"
	"github.com/dsmolyakov/jobdeck/internal/client/session"
	"github.com/dsmolyakov/jobdeck/internal/common"
	"github.com/dsmolyakov/jobdeck/internal/logging"
)

// ProfileService manages the user profile and the CV upload. A successful
// profile update overwrites the cached session snapshot so the two never
// diverge for longer than one round trip.
type ProfileService struct {
	api   *api.Client
	store session.Store
	ttl   time.Duration
	log   logging.Logger
}

func NewProfileService(apiClient *api.Client, store session.Store, log logging.Logger) *ProfileService {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &ProfileService{api: apiClient, store: store, ttl: session.DefaultTTL, log: log}
}

func (s *ProfileService) Get(ctx context.Context) (models.User, error) {
	return s.api.Profile(ctx)
}

func (s *ProfileService) Update(ctx context.Context, u models.User) (models.User, error) {
	if err := validate.Struct(u); err != nil {
		return models.User{}, errors.Join(common.ErrorInvalidPayload, err)
	}

	updated, err := s.api.UpdateProfile(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	s.refreshSnapshot(ctx, updated)
	return updated, nil
}

// UploadCV posts the file at path as a multipart body and flips the
// cached hasCV flag on success.
func (s *ProfileService) UploadCV(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := s.api.UploadCV(ctx, filepath.Base(path), f); err != nil {
		return err
	}

	sess, err := s.store.Read(ctx)
	if err == nil && sess.Token != "" && sess.User != nil {
		u := *sess.User
		u.HasCV = true
		s.refreshSnapshot(ctx, u)
	}
	return nil
}

func (s *ProfileService) refreshSnapshot(ctx context.Context, u models.User) {
	sess, err := s.store.Read(ctx)
	if err != nil || sess.Token == "" {
		return
	}
	if err := s.store.Write(ctx, sess.Token, u, s.ttl); err != nil {
		s.log.Warn(ctx, "refreshing cached user snapshot", "error", err)
	}
}
