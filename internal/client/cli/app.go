package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/authz"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/client"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/config"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/services"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the console together: the REST client, the session store and
// the application services, plus the interactive reader.
type App struct {
	config      *config.Config
	client      client.Client
	sessions    *services.SessionStore
	catalogs    *services.CatalogService
	incidents   *services.IncidentService
	submissions *services.SubmissionService
	stats       *services.StatsService
	log         logging.Logger
	reader      *bufio.Reader
}

// NewApp builds the application graph and restores any persisted session.
// The credentials provider and the 401 hook are registered after both the
// client and the store exist, since each needs the other.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.LocalStateDSN)
	if err != nil {
		log.Error(ctx, "initializing local state database", "error", err)
		return nil, err
	}

	apiClient := client.NewRESTClient(c.APIBaseURL, c.RequestTimeout)

	store := services.NewSessionStore(apiClient, db, log)
	apiClient.SetCredentialsProvider(store.BasicCredentials)
	apiClient.SetUnauthorizedHook(store.HandleUnauthorized)

	if err := services.NewBootstrapper(store, c.BootstrapAttempts, c.BootstrapDelay).Run(ctx); err != nil {
		// A failed restore leaves the user anonymous; not fatal.
		log.Warn(ctx, "session restore failed", "error", err)
	}

	return &App{
		config:      c,
		client:      apiClient,
		sessions:    store,
		catalogs:    services.NewCatalogService(apiClient),
		incidents:   services.NewIncidentService(apiClient),
		submissions: services.NewSubmissionService(apiClient, log),
		stats:       services.NewStatsService(apiClient),
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current() != nil
}

// capabilities resolves the current session's role into its capability set.
func (a *App) capabilities() authz.Capabilities {
	session := a.sessions.Current()
	if session == nil {
		return authz.ForRole("")
	}
	return authz.ForRole(session.Identity.Role)
}
