package flows

import (
	"context"
	"sync"

	"github.com/authify/authify-cli/internal/api"
	"github.com/authify/authify-cli/internal/logging"
	"github.com/authify/authify-cli/internal/otp"
	"github.com/google/uuid"
)

// ResetPhase is the phase of a password-reset flow.
type ResetPhase int

const (
	// ResetAwaitingEmail is the initial phase: no code requested yet.
	ResetAwaitingEmail ResetPhase = iota
	// ResetCodeSent means a code was dispatched to the captured email.
	ResetCodeSent
	// ResetFailed marks a rejected submission. The email is retained and a
	// new code can be submitted directly; no fresh code request is needed.
	ResetFailed
	// ResetCompleted is terminal; create a new flow for another attempt.
	ResetCompleted
)

func (p ResetPhase) String() string {
	switch p {
	case ResetCodeSent:
		return "code_sent"
	case ResetFailed:
		return "failed"
	case ResetCompleted:
		return "completed"
	default:
		return "awaiting_email"
	}
}

// ResetFlow drives the two-phase password reset: request a code for an
// email address, then submit the code together with the new password. The
// email is captured when the code request succeeds and never changes
// afterwards. Unlike the verification flow, a failed submission does not
// re-arm to the initial phase — the user re-enters a code against the same
// dispatched OTP instead of forcing another send-code round trip.
type ResetFlow struct {
	mu       sync.Mutex
	id       uuid.UUID
	phase    ResetPhase
	email    string
	reason   string
	inFlight bool
	closed   bool

	input  *otp.Input
	client api.Client
	log    logging.Logger
}

// NewResetFlow creates a fresh flow awaiting an email address.
func NewResetFlow(client api.Client, log logging.Logger) *ResetFlow {
	if log == nil {
		log = logging.NewNopLogger()
	}
	id := uuid.New()
	return &ResetFlow{
		id:     id,
		input:  otp.NewInput(),
		client: client,
		log:    log.With("flow", "reset-password", "flow_id", id.String()),
	}
}

// ID identifies this flow instance.
func (f *ResetFlow) ID() uuid.UUID { return f.id }

// Input returns the flow's code entry widget.
func (f *ResetFlow) Input() *otp.Input { return f.input }

// Phase returns the current phase.
func (f *ResetFlow) Phase() ResetPhase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Email returns the address captured by a successful code request.
func (f *ResetFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// LastFailure returns the reason recorded by the most recent failure.
func (f *ResetFlow) LastFailure() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reason
}

// Close marks the instance inactive; in-flight responses are discarded.
func (f *ResetFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// RequestCode asks the server to email a reset code to the given address
// and, on success, advances the flow to CodeSent with the email captured.
// An empty email is rejected locally with a Validation error. On server
// failure the flow stays in AwaitingEmail with the reason recorded.
func (f *ResetFlow) RequestCode(ctx context.Context, email string) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFlowClosed
	}
	if f.phase == ResetCompleted {
		f.mu.Unlock()
		return ErrFlowCompleted
	}
	if f.inFlight {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if f.phase != ResetAwaitingEmail {
		f.mu.Unlock()
		return ErrCodeAlreadySent
	}
	if email == "" {
		f.mu.Unlock()
		return api.NewError(api.KindValidation, "please enter email")
	}
	f.inFlight = true
	f.mu.Unlock()

	err := f.client.SendResetCode(ctx, email)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if f.closed {
		return ErrFlowClosed
	}
	if err != nil {
		f.reason = api.Message(err, "Failed to send OTP")
		f.log.Info(ctx, "code request failed", "reason", f.reason)
		return err
	}
	f.phase = ResetCodeSent
	f.email = email
	f.reason = ""
	f.log.Info(ctx, "reset code sent")
	return nil
}

// Submit sends the code and new password for the captured email. It is
// valid from CodeSent and from Failed — repeated submission failures never
// force another code request. The code must be six digits and the password
// non-empty; local validation failures change nothing. On server success
// the flow reaches Completed, which is terminal. On server failure the
// phase becomes Failed with the email retained.
func (f *ResetFlow) Submit(ctx context.Context, code, newPassword string) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFlowClosed
	}
	if f.phase == ResetCompleted {
		f.mu.Unlock()
		return ErrFlowCompleted
	}
	if f.inFlight {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if f.phase == ResetAwaitingEmail {
		f.mu.Unlock()
		return ErrCodeNotRequested
	}
	if len(code) != otp.CodeLength {
		f.mu.Unlock()
		return api.NewError(api.KindValidation, "enter a valid 6-digit code")
	}
	if newPassword == "" {
		f.mu.Unlock()
		return api.NewError(api.KindValidation, "enter a new password")
	}
	email := f.email
	f.inFlight = true
	f.mu.Unlock()

	err := f.client.ResetPassword(ctx, email, code, newPassword)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if f.closed {
		return ErrFlowClosed
	}
	if err != nil {
		f.phase = ResetFailed
		f.reason = api.Message(err, "Reset failed")
		f.log.Info(ctx, "reset submission failed", "reason", f.reason)
		return err
	}
	f.phase = ResetCompleted
	f.reason = ""
	f.log.Info(ctx, "password reset completed")
	return nil
}

// Restart returns a Failed flow to AwaitingEmail for a from-scratch retry,
// clearing the captured email and the code input. It is a no-op in
// AwaitingEmail and rejected once Completed.
func (f *ResetFlow) Restart() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	if f.phase == ResetCompleted {
		return ErrFlowCompleted
	}
	if f.inFlight {
		return ErrSubmissionInFlight
	}
	f.phase = ResetAwaitingEmail
	f.email = ""
	f.reason = ""
	f.input.Clear()
	return nil
}
