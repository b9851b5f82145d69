package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dsmolyakov/jobdeck/internal/client/api"
	"github.com/dsmolyakov/jobdeck/internal/client/guard"
)

// Privileged routes backing the REPL commands. The well-known public
// routes live in the guard package.
const (
	routeProfile      = "/profile"
	routeEducation    = "/profile/education"
	routeExperience   = "/profile/experience"
	routeApplications = "/applications"
	routeSavedJobs    = "/saved-jobs"
	routeLogout       = "/logout"
)

func (a *App) getStatus() string {
	s := a.route
	if a.userName != "" {
		s = a.userName + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to jobdeck CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("jd %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: jobs [query], save <n>, apply <n>, saved, unsave <n>, applications, withdraw <n>, education, experience, profile, editprofile, uploadcv <path>, whoami, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}

		case "register":
			a.dispatch(ctx, guard.RouteSignup, a.register)
		case "login":
			a.dispatch(ctx, guard.RouteLogin, a.login)
		case "logout":
			a.dispatch(ctx, routeLogout, a.logout)
		case "whoami":
			a.dispatch(ctx, routeProfile, a.whoami)
		case "jobs":
			a.dispatch(ctx, guard.RouteLanding, func(ctx context.Context) error {
				return a.jobs(ctx, strings.Join(args, " "))
			})
		case "save":
			a.dispatch(ctx, routeSavedJobs, func(ctx context.Context) error {
				return a.saveJob(ctx, args)
			})
		case "apply":
			a.dispatch(ctx, routeApplications, func(ctx context.Context) error {
				return a.applyToJob(ctx, args)
			})
		case "saved":
			a.dispatch(ctx, routeSavedJobs, a.listSaved)
		case "unsave":
			a.dispatch(ctx, routeSavedJobs, func(ctx context.Context) error {
				return a.unsave(ctx, args)
			})
		case "applications":
			a.dispatch(ctx, routeApplications, a.listApplications)
		case "withdraw":
			a.dispatch(ctx, routeApplications, func(ctx context.Context) error {
				return a.withdraw(ctx, args)
			})
		case "education":
			a.dispatch(ctx, routeEducation, func(ctx context.Context) error {
				return a.educationCmd(ctx, args)
			})
		case "experience":
			a.dispatch(ctx, routeExperience, func(ctx context.Context) error {
				return a.experienceCmd(ctx, args)
			})
		case "profile":
			a.dispatch(ctx, routeProfile, a.showProfile)
		case "editprofile":
			a.dispatch(ctx, routeProfile, a.editProfile)
		case "uploadcv":
			a.dispatch(ctx, routeProfile, func(ctx context.Context) error {
				return a.uploadCV(ctx, args)
			})
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}

// dispatch routes one command through the guard. A redirect to login runs
// the login flow and, when it succeeds, replays the originally requested
// command; a redirect away from login/signup lands on the jobs listing.
func (a *App) dispatch(ctx context.Context, route string, fn func(context.Context) error) {
	d := a.guard.Decide(route)
	switch d.Action {
	case guard.ActionLoading:
		fmt.Println("Session check still in progress, try again.")
		return

	case guard.ActionRedirect:
		a.NavigateTo(d.Target)
		if d.Target != guard.RouteLogin {
			// Already signed in; auth pages bounce to the landing page.
			if err := a.jobs(ctx, ""); err != nil {
				a.reportError(ctx, err)
			}
			return
		}
		fmt.Println("Please log in first.")
		if err := a.login(ctx); err != nil {
			a.reportError(ctx, err)
			return
		}
		if d.ReturnTo == "" || a.guard.Decide(d.ReturnTo).Action != guard.ActionAllow {
			return
		}
	}

	a.NavigateTo(route)
	if err := fn(ctx); err != nil {
		a.reportError(ctx, err)
	}
}

func (a *App) reportError(ctx context.Context, err error) {
	if a.auth.HandleAuthFailure(ctx, err) {
		a.userName = ""
		fmt.Println("Your session has expired, please log in again.")
		return
	}

	var apiErr *api.APIError
	switch {
	case errors.Is(err, api.ErrAlreadyApplied):
		fmt.Println("You have already applied to this job.")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Println("Server unavailable, try again later.")
	case errors.As(err, &apiErr):
		fmt.Println("Server rejected the request:", apiErr.Message)
	default:
		fmt.Println("Error:", err)
	}
}
