package cli

import (
	"bufio"
	"context"
	"database/sql"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dsmolyakov/jobdeck/internal/client/api"
	"github.com/dsmolyakov/jobdeck/internal/client/collection"
	"github.com/dsmolyakov/jobdeck/internal/client/config"
	"github.com/dsmolyakov/jobdeck/internal/client/guard"
	"github.com/dsmolyakov/jobdeck/internal/client/models"
	"github.com/dsmolyakov/jobdeck/internal/client/repositories/metadata"
	"github.com/dsmolyakov/jobdeck/internal/client/repositories/snapshots"
	"github.com/dsmolyakov/jobdeck/internal/client/services"
	"github.com/dsmolyakov/jobdeck/internal/client/session"
	"github.com/dsmolyakov/jobdeck/internal/client/storage"
	"github.com/dsmolyakov/jobdeck/internal/cryptox"
	"github.com/dsmolyakov/jobdeck/internal/logging"
)

// App wires the jobdeck CLI: local storage, session store, route guard,
// request gateway, services and the per-collection managers. It also
// implements services.Navigator; in a terminal client "navigation" is the
// current route shown in the prompt.
type App struct {
	config *config.Config
	log    logging.Logger
	reader *bufio.Reader
	db     *sql.DB

	store   session.Store
	guard   *guard.Guard
	auth    *services.AuthService
	profile *services.ProfileService
	jobsSvc *services.JobsService

	education    *collection.Manager[models.Education]
	experience   *collection.Manager[models.Experience]
	applications *collection.Manager[models.Application]
	saved        *collection.Manager[models.SavedJob]

	route    string
	userName string
	lastJobs []models.Job
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewDiscardLogger()
	}

	db, err := storage.Open(ctx, filepath.Join(c.DataDir, "jobdeck.db"))
	if err != nil {
		return nil, err
	}

	secret, salt, err := cryptox.LoadOrCreateSecret(filepath.Join(c.DataDir, "device.key"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewSQLiteStore(metadata.NewSQLiteRepository(db), cryptox.DeriveSealKey(secret, salt), log)
	snaps := snapshots.NewSQLiteRepository(db)

	apiClient := api.New(c.ServerBaseURL, store, log)
	apiClient.SetHTTPClient(&http.Client{Timeout: c.RequestTimeout})

	app := &App{
		config: c,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		db:     db,
		store:  store,
		guard:  guard.New(),
		route:  guard.RouteRoot,
	}

	app.auth = services.NewAuthService(apiClient, store, app.guard, app, log)
	app.profile = services.NewProfileService(apiClient, store, log)
	app.jobsSvc = services.NewJobsService(apiClient, log)

	app.education = collection.New(collection.Config[models.Education]{
		Name: "education", Path: api.PathEducation, API: apiClient, Snapshots: snaps, Log: log,
	})
	app.experience = collection.New(collection.Config[models.Experience]{
		Name: "experience", Path: api.PathExperience, API: apiClient, Snapshots: snaps, Log: log,
	})
	app.applications = collection.New(collection.Config[models.Application]{
		Name: "applications", Path: api.PathApps, API: apiClient, Snapshots: snaps,
		Enrich: app.jobsSvc.ApplicationEnricher(), Log: log,
	})
	app.saved = collection.New(collection.Config[models.SavedJob]{
		Name: "savedJobs", Path: api.PathSavedJobs, API: apiClient, Snapshots: snaps,
		Enrich: app.jobsSvc.SavedJobEnricher(), Log: log,
	})

	return app, nil
}

// NavigateTo implements services.Navigator.
func (a *App) NavigateTo(route string) {
	a.route = route
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	sess, err := a.auth.Resolve(ctx)
	if err != nil {
		a.log.Error(ctx, "resolving session", "error", err)
		return
	}
	if sess.User != nil {
		a.userName = sess.User.Name
		a.NavigateTo(guard.RouteLanding)
	} else {
		a.NavigateTo(guard.RouteLogin)
	}

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.guard.State() == guard.StateAuthenticated
}
