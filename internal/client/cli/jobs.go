package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dsmolyakov/jobdeck/internal/client/models"
)

// jobs lists job listings, optionally filtered by a search query, and
// remembers them so save/apply can address listings by number.
func (a *App) jobs(ctx context.Context, query string) error {
	jobs, err := a.jobsSvc.Search(ctx, query)
	if err != nil {
		return err
	}
	a.lastJobs = jobs

	if len(jobs) == 0 {
		fmt.Println("No jobs found.")
		return nil
	}
	for i, j := range jobs {
		fmt.Printf("%d. %s at %s", i+1, j.Title, j.Company)
		if j.Location != "" {
			fmt.Printf(" (%s)", j.Location)
		}
		if j.Salary != "" {
			fmt.Printf(", %s", j.Salary)
		}
		fmt.Println()
	}
	return nil
}

// jobFromArgs resolves a 1-based listing number from the last jobs listing.
func (a *App) jobFromArgs(args []string) (models.Job, error) {
	if len(a.lastJobs) == 0 {
		return models.Job{}, errors.New("no listings to pick from, run 'jobs' first")
	}
	idx, err := parseIndex(args, len(a.lastJobs))
	if err != nil {
		return models.Job{}, err
	}
	return a.lastJobs[idx], nil
}

func (a *App) saveJob(ctx context.Context, args []string) error {
	job, err := a.jobFromArgs(args)
	if err != nil {
		return err
	}
	if _, err := a.saved.Create(ctx, models.SavedJob{JobID: job.ID}); err != nil {
		return err
	}
	fmt.Printf("Saved %q.\n", job.Title)
	return nil
}

func (a *App) applyToJob(ctx context.Context, args []string) error {
	job, err := a.jobFromArgs(args)
	if err != nil {
		return err
	}
	created, err := a.applications.Create(ctx, models.Application{JobID: job.ID})
	if err != nil {
		return err
	}
	fmt.Printf("Applied to %q (status: %s).\n", job.Title, created.Status)
	return nil
}

func (a *App) listApplications(ctx context.Context) error {
	items, err := a.applications.FetchAll(ctx)
	if err != nil {
		return err
	}
	if a.applications.Stale() {
		fmt.Println("(offline: showing last known data)")
	}
	if len(items) == 0 {
		fmt.Println("No applications yet.")
		return nil
	}
	for i, app := range items {
		fmt.Printf("%d. %s [%s]\n", i+1, app.JobTitle, app.Status)
	}
	return nil
}

func (a *App) withdraw(ctx context.Context, args []string) error {
	idx, err := parseIndex(args, a.applications.Len())
	if err != nil {
		return err
	}
	if err := a.applications.Delete(ctx, idx); err != nil {
		return err
	}
	fmt.Println("Application withdrawn.")
	return nil
}

func (a *App) listSaved(ctx context.Context) error {
	items, err := a.saved.FetchAll(ctx)
	if err != nil {
		return err
	}
	if a.saved.Stale() {
		fmt.Println("(offline: showing last known data)")
	}
	if len(items) == 0 {
		fmt.Println("No saved jobs.")
		return nil
	}
	for i, sj := range items {
		fmt.Printf("%d. %s\n", i+1, sj.JobTitle)
	}
	return nil
}

func (a *App) unsave(ctx context.Context, args []string) error {
	idx, err := parseIndex(args, a.saved.Len())
	if err != nil {
		return err
	}
	if err := a.saved.Delete(ctx, idx); err != nil {
		return err
	}
	fmt.Println("Removed from saved jobs.")
	return nil
}
