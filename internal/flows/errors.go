// Package flows contains the controllers that drive the authentication
// journeys: login/register submissions, email verification, and the
// two-phase password reset. Flows are the only writers of their own phase
// state and of the session store on their paths; presentation surfaces call
// their methods and render from the state they expose.
package flows

import "errors"

var (
	// ErrSubmissionInFlight is returned when a flow method is called while a
	// prior submission on the same instance is still outstanding. The guard
	// lives in the flow, not the UI, so it is testable without one.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrFlowClosed is returned by a flow instance that has been discarded;
	// late responses against it are ignored.
	ErrFlowClosed = errors.New("flow is no longer active")

	// ErrFlowCompleted is returned when a terminal flow is submitted again;
	// a new instance is required for another attempt.
	ErrFlowCompleted = errors.New("flow already completed")

	// ErrCodeNotRequested is returned by the reset flow when a code is
	// submitted before one was requested.
	ErrCodeNotRequested = errors.New("request a reset code first")

	// ErrCodeAlreadySent is returned by the reset flow when a code request
	// is repeated after one already succeeded.
	ErrCodeAlreadySent = errors.New("reset code already sent")
)
