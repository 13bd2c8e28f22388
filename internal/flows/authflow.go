package flows

import (
	"context"

	"github.com/authify/authify-cli/internal/api"
	"github.com/authify/authify-cli/internal/logging"
	"github.com/authify/authify-cli/internal/session"
)

// Controller orchestrates login and registration submissions and the
// follow-up session refresh. It is the single writer of the session store
// on those paths.
type Controller struct {
	client api.Client
	store  *session.Store
	log    logging.Logger
}

// NewController binds a controller to the API client and session store.
func NewController(client api.Client, store *session.Store, log logging.Logger) *Controller {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Controller{client: client, store: store, log: log.With("component", "authflow")}
}

// SubmitLogin authenticates with the given credentials. On success the
// session store is bootstrapped before returning, so by the time the caller
// sees nil the session state is populated and any navigation decision can
// rely on it. On failure the store is untouched and the error carries the
// message to display.
//
// A bootstrap failure after a successful login is logged, not returned: the
// server-side session exists, and the store has already resolved to a
// definite state.
func (c *Controller) SubmitLogin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return api.NewError(api.KindValidation, "email and password are required")
	}

	if err := c.client.Login(ctx, email, password); err != nil {
		c.log.Info(ctx, "login rejected", "kind", api.KindOf(err).String())
		return err
	}

	if err := c.store.Bootstrap(ctx); err != nil {
		c.log.Warn(ctx, "session bootstrap after login failed", "error", err)
	}
	return nil
}

// SubmitRegistration creates an account. It never touches the session
// store: registration does not imply login. A nil return means "proceed to
// login".
func (c *Controller) SubmitRegistration(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return api.NewError(api.KindValidation, "name, email and password are required")
	}
	return c.client.Register(ctx, name, email, password)
}

// RequestVerificationCode asks the server to email an OTP for the current
// session. Callers are responsible for ensuring an authenticated session
// exists first. A nil return means "advance to the verification flow".
func (c *Controller) RequestVerificationCode(ctx context.Context) error {
	return c.client.SendVerificationCode(ctx)
}
