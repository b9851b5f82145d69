package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dsmolyakov/jobdeck/internal/client/models"
)

// educationCmd handles the education subcommands: list (default), add,
// edit <n>, delete <n>. Dates are entered and shown with month precision.
func (a *App) educationCmd(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		return a.listEducation(ctx)
	case "add":
		return a.addEducation(ctx)
	case "edit":
		return a.editEducation(ctx, args)
	case "delete":
		idx, err := parseIndex(args, a.education.Len())
		if err != nil {
			return err
		}
		if err := a.education.Delete(ctx, idx); err != nil {
			return err
		}
		fmt.Println("Education entry deleted.")
		return nil
	default:
		fmt.Println("Usage: education [list|add|edit <n>|delete <n>]")
		return nil
	}
}

func (a *App) listEducation(ctx context.Context) error {
	items, err := a.education.FetchAll(ctx)
	if err != nil {
		return err
	}
	if a.education.Stale() {
		fmt.Println("(offline: showing last known data)")
	}
	if len(items) == 0 {
		fmt.Println("No education entries.")
		return nil
	}
	for i, e := range items {
		printEducation(i+1, e, a.education.Pending(i))
	}
	return nil
}

func printEducation(n int, e models.Education, pending bool) {
	end := e.EndDate
	if end == "" {
		end = "present"
	}
	fmt.Printf("%d. %s, %s (%s to %s)", n, e.Degree, e.University, e.StartDate, end)
	if pending {
		fmt.Print(" [saving...]")
	}
	fmt.Println()
}

func (a *App) addEducation(ctx context.Context) error {
	var e models.Education
	var err error

	if e.Degree, err = getSimpleText(a.reader, "Degree", os.Stdout); err != nil {
		return err
	}
	if e.University, err = getSimpleText(a.reader, "University", os.Stdout); err != nil {
		return err
	}
	if e.StartDate, err = getSimpleText(a.reader, "Start date (YYYY-MM)", os.Stdout); err != nil {
		return err
	}
	if e.EndDate, err = getSimpleText(a.reader, "End date (YYYY-MM, empty if ongoing)", os.Stdout); err != nil {
		return err
	}

	if _, err := a.education.Create(ctx, e); err != nil {
		return err
	}
	fmt.Println("Education entry added.")
	return nil
}

func (a *App) editEducation(ctx context.Context, args []string) error {
	idx, err := parseIndex(args, a.education.Len())
	if err != nil {
		return err
	}
	e := a.education.Items()[idx]

	if e.Degree, err = a.promptOr("Degree", e.Degree); err != nil {
		return err
	}
	if e.University, err = a.promptOr("University", e.University); err != nil {
		return err
	}
	if e.StartDate, err = a.promptOr("Start date (YYYY-MM)", e.StartDate); err != nil {
		return err
	}
	if e.EndDate, err = a.promptOr("End date (YYYY-MM)", e.EndDate); err != nil {
		return err
	}

	if _, err := a.education.Update(ctx, idx, e); err != nil {
		return err
	}
	fmt.Println("Education entry updated.")
	return nil
}
