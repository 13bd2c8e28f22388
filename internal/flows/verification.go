package flows

import (
	"context"
	"sync"

	"github.com/authify/authify-cli/internal/api"
	"github.com/authify/authify-cli/internal/logging"
	"github.com/authify/authify-cli/internal/otp"
	"github.com/authify/authify-cli/internal/session"
	"github.com/google/uuid"
)

// VerificationState is the phase of an email-verification flow.
type VerificationState int

const (
	// VerificationPending accepts code entry and submission.
	VerificationPending VerificationState = iota
	// VerificationVerifying has a submission outstanding.
	VerificationVerifying
	// VerificationVerified is terminal.
	VerificationVerified
)

func (s VerificationState) String() string {
	switch s {
	case VerificationVerifying:
		return "verifying"
	case VerificationVerified:
		return "verified"
	default:
		return "pending"
	}
}

// VerificationFlow confirms the user's email with a one-time code. A server
// failure records its reason and immediately re-arms to Pending so the user
// can retry without resetting the flow. Each instance owns its own code
// input and is discarded after use; Close marks it inactive so a response
// that arrives later is thrown away.
type VerificationFlow struct {
	mu     sync.Mutex
	id     uuid.UUID
	state  VerificationState
	reason string
	closed bool

	input  *otp.Input
	client api.Client
	store  *session.Store
	log    logging.Logger
}

// NewVerificationFlow creates a fresh flow in the Pending state.
func NewVerificationFlow(client api.Client, store *session.Store, log logging.Logger) *VerificationFlow {
	if log == nil {
		log = logging.NewNopLogger()
	}
	id := uuid.New()
	return &VerificationFlow{
		id:     id,
		input:  otp.NewInput(),
		client: client,
		store:  store,
		log:    log.With("flow", "verify-email", "flow_id", id.String()),
	}
}

// ID identifies this flow instance.
func (f *VerificationFlow) ID() uuid.UUID { return f.id }

// Input returns the flow's code entry widget. The presentation surface
// feeds keystrokes and pastes into it between submissions.
func (f *VerificationFlow) Input() *otp.Input { return f.input }

// State returns the current phase.
func (f *VerificationFlow) State() VerificationState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastFailure returns the reason recorded by the most recent failed
// submission, or "" after a success.
func (f *VerificationFlow) LastFailure() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reason
}

// Close marks the instance inactive. Any submission still in flight has its
// response discarded: neither the flow state nor the session store is
// touched by it.
func (f *VerificationFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// Verify submits the entered code.
//
// If the session is already authenticated with a verified email, the flow
// short-circuits straight to Verified without any network call. A code
// shorter than six digits is rejected synchronously with a Validation error
// and the flow stays Pending. While a submission is outstanding the flow is
// Verifying and further calls return ErrSubmissionInFlight.
//
// On server success the flow becomes Verified and the session store's
// cached profile is patched in place. On server failure the reason is
// recorded and the flow re-arms to Pending for a retry.
func (f *VerificationFlow) Verify(ctx context.Context) error {
	snap := f.store.Snapshot()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFlowClosed
	}
	switch f.state {
	case VerificationVerifying:
		f.mu.Unlock()
		return ErrSubmissionInFlight
	case VerificationVerified:
		f.mu.Unlock()
		return nil
	}

	if snap.Status == session.StatusAuthenticated && snap.Profile != nil && snap.Profile.EmailVerified {
		f.state = VerificationVerified
		f.reason = ""
		f.mu.Unlock()
		f.log.Debug(ctx, "email already verified, skipping request")
		return nil
	}

	code := f.input.Code()
	if !f.input.Complete() {
		f.mu.Unlock()
		return api.NewError(api.KindValidation, "please enter a 6-digit code")
	}
	f.state = VerificationVerifying
	f.mu.Unlock()

	err := f.client.VerifyEmail(ctx, code)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		// Stale response: the surface that owned this flow is gone.
		return ErrFlowClosed
	}
	if err != nil {
		f.reason = api.Message(err, "OTP verification failed")
		f.state = VerificationPending
		f.log.Info(ctx, "verification failed, re-armed", "reason", f.reason)
		return err
	}
	f.state = VerificationVerified
	f.reason = ""
	f.store.MarkEmailVerified()
	f.log.Info(ctx, "email verified")
	return nil
}
