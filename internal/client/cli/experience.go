package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dsmolyakov/jobdeck/internal/client/models"
)

// experienceCmd handles the experience subcommands, mirroring educationCmd.
func (a *App) experienceCmd(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		return a.listExperience(ctx)
	case "add":
		return a.addExperience(ctx)
	case "edit":
		return a.editExperience(ctx, args)
	case "delete":
		idx, err := parseIndex(args, a.experience.Len())
		if err != nil {
			return err
		}
		if err := a.experience.Delete(ctx, idx); err != nil {
			return err
		}
		fmt.Println("Experience entry deleted.")
		return nil
	default:
		fmt.Println("Usage: experience [list|add|edit <n>|delete <n>]")
		return nil
	}
}

func (a *App) listExperience(ctx context.Context) error {
	items, err := a.experience.FetchAll(ctx)
	if err != nil {
		return err
	}
	if a.experience.Stale() {
		fmt.Println("(offline: showing last known data)")
	}
	if len(items) == 0 {
		fmt.Println("No experience entries.")
		return nil
	}
	for i, e := range items {
		end := e.EndDate
		if end == "" {
			end = "present"
		}
		fmt.Printf("%d. %s at %s (%s to %s)", i+1, e.Title, e.Company, e.StartDate, end)
		if a.experience.Pending(i) {
			fmt.Print(" [saving...]")
		}
		fmt.Println()
	}
	return nil
}

func (a *App) addExperience(ctx context.Context) error {
	var e models.Experience
	var err error

	if e.Title, err = getSimpleText(a.reader, "Job title", os.Stdout); err != nil {
		return err
	}
	if e.Company, err = getSimpleText(a.reader, "Company", os.Stdout); err != nil {
		return err
	}
	if e.StartDate, err = getSimpleText(a.reader, "Start date (YYYY-MM)", os.Stdout); err != nil {
		return err
	}
	if e.EndDate, err = getSimpleText(a.reader, "End date (YYYY-MM, empty if current)", os.Stdout); err != nil {
		return err
	}
	if e.Description, err = GetMultiline(a.reader, "Description", os.Stdout); err != nil {
		return err
	}

	if _, err := a.experience.Create(ctx, e); err != nil {
		return err
	}
	fmt.Println("Experience entry added.")
	return nil
}

func (a *App) editExperience(ctx context.Context, args []string) error {
	idx, err := parseIndex(args, a.experience.Len())
	if err != nil {
		return err
	}
	e := a.experience.Items()[idx]

	if e.Title, err = a.promptOr("Job title", e.Title); err != nil {
		return err
	}
	if e.Company, err = a.promptOr("Company", e.Company); err != nil {
		return err
	}
	if e.StartDate, err = a.promptOr("Start date (YYYY-MM)", e.StartDate); err != nil {
		return err
	}
	if e.EndDate, err = a.promptOr("End date (YYYY-MM)", e.EndDate); err != nil {
		return err
	}

	if _, err := a.experience.Update(ctx, idx, e); err != nil {
		return err
	}
	fmt.Println("Experience entry updated.")
	return nil
}
