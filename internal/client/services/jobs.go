package services

import (
	"context"

	"github.com/dsmolyakov/jobdeck/internal/client/api"
	"github.com/dsmolyakov/jobdeck/internal/client/models"
	"github.com/dsmolyakov/jobdeck/internal/logging"
)

// jobTitlePlaceholder is shown when a listing lookup fails during
// enrichment; the record itself still renders.
const jobTitlePlaceholder = "(job unavailable)"

// JobsService searches listings and supplies the enrichment hooks that
// join applications and saved jobs to their job titles.
type JobsService struct {
	api *api.Client
	log logging.Logger
}

func NewJobsService(apiClient *api.Client, log logging.Logger) *JobsService {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &JobsService{api: apiClient, log: log}
}

func (s *JobsService) Search(ctx context.Context, query string) ([]models.Job, error) {
	return s.api.SearchJobs(ctx, query)
}

// ApplicationEnricher joins an application to its job title. Failures
// degrade that record to a placeholder, independent of other records.
func (s *JobsService) ApplicationEnricher() func(ctx context.Context, a *models.Application) error {
	return func(ctx context.Context, a *models.Application) error {
		job, err := s.api.Job(ctx, a.JobID)
		if err != nil {
			a.JobTitle = jobTitlePlaceholder
			return err
		}
		a.JobTitle = job.Title
		return nil
	}
}

// SavedJobEnricher joins a saved job to its listing title.
func (s *JobsService) SavedJobEnricher() func(ctx context.Context, sj *models.SavedJob) error {
	return func(ctx context.Context, sj *models.SavedJob) error {
		job, err := s.api.Job(ctx, sj.JobID)
		if err != nil {
			sj.JobTitle = jobTitlePlaceholder
			return err
		}
		sj.JobTitle = job.Title
		return nil
	}
}
