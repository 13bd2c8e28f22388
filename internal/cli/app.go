package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/authify/authify-cli/internal/api"
	"github.com/authify/authify-cli/internal/config"
	"github.com/authify/authify-cli/internal/flows"
	"github.com/authify/authify-cli/internal/logging"
	"github.com/authify/authify-cli/internal/session"
)

// App wires the API client, session store and flow controllers behind an
// interactive command loop.
type App struct {
	config *config.Config
	client api.Client
	store  *session.Store
	auth   *flows.Controller
	reader *bufio.Reader
	log    logging.Logger
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	statePath := c.StateFile
	if statePath == "" {
		p, err := api.DefaultStatePath()
		if err != nil {
			return nil, err
		}
		statePath = p
	}

	client, err := api.NewHTTPClient(c.ServerEndpointAddr,
		api.WithTimeout(c.RequestTimeout),
		api.WithStateFile(statePath),
		api.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(client, log)
	auth := flows.NewController(client, store, log)

	return &App{
		config: c,
		client: client,
		store:  store,
		auth:   auth,
		reader: bufio.NewReader(os.Stdin),
		log:    log,
	}, nil
}

// Run restores the previous session from the persisted cookie state and
// starts the command loop. It returns when the user exits or stdin closes.
func (a *App) Run(ctx context.Context) error {
	defer a.client.Close()

	printlnFn("Welcome to Authify CLI (type 'help' for commands)")

	if err := a.store.Bootstrap(ctx); err != nil {
		a.log.Warn(ctx, "session bootstrap failed", "error", err)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().Status == session.StatusAuthenticated
}

// getStatus renders the prompt decoration: the signed-in email plus a
// marker when the account's email is not yet verified.
func (a *App) getStatus() string {
	snap := a.store.Snapshot()
	if snap.Status != session.StatusAuthenticated || snap.Profile == nil {
		return fmt.Sprintf("(%s)", snap.Status)
	}
	s := snap.Profile.Email
	if !snap.Profile.EmailVerified {
		s += " unverified"
	}
	return fmt.Sprintf("(%s)", s)
}
