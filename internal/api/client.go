// Package api contains the typed client for the Authify backend: one method
// per authentication endpoint, structured results, and an error taxonomy the
// flow controllers can branch on. The session credential itself is carried
// by the HTTP cookie jar and is never inspected here.
package api

import "context"

// Profile is the account data returned by the profile endpoint. It is owned
// by the session store once fetched; everyone else reads copies.
type Profile struct {
	ID            string `json:"userId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"isAccountVerified"`
}

// Client defines the backend operations used by the authentication flows.
//
// Contract:
//   - Register: create an account; does not establish a session.
//   - Login: authenticate; the server sets the session credential as a cookie.
//   - Logout: clear the server-side session; best-effort for callers.
//   - CheckSession: report whether the current credential is a live session.
//   - FetchProfile: fetch the caller's profile, including verification state.
//   - SendVerificationCode: dispatch an email OTP for the current session.
//   - VerifyEmail: confirm the email with an OTP.
//   - SendResetCode: dispatch a password-reset OTP to the given address.
//   - ResetPassword: set a new password using a reset OTP.
//   - Close: flush persisted client state and release resources.
//
// All methods honor context cancellation. Failures are returned as *Error
// with a Kind from the taxonomy in errors.go; none of the methods retries
// internally — retry policy belongs to the caller.
type Client interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	CheckSession(ctx context.Context) (bool, error)
	FetchProfile(ctx context.Context) (*Profile, error)
	SendVerificationCode(ctx context.Context) error
	VerifyEmail(ctx context.Context, otp string) error
	SendResetCode(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
	Close() error
}
