package cli

import (
	"context"
	"sync"

	"github.com/authify/authify-cli/internal/api"
)

// fakeClient is a scriptable api.Client shared by the tests in this package.
type fakeClient struct {
	mu sync.Mutex

	RegisterErr  error
	LastRegName  string
	LastRegEmail string
	LastRegPass  string

	LoginErr       error
	LastLoginEmail string
	LastLoginPass  string

	LogoutErr   error
	LogoutCalls int

	SessionAlive    bool
	CheckSessionErr error

	Profile         *api.Profile
	FetchProfileErr error

	SendVerificationErr   error
	SendVerificationCalls int

	VerifyEmailErr error
	LastOTP        string

	SendResetCodeErr error
	LastResetEmail   string

	ResetPasswordErr error
	LastResetOTP     string
	LastResetPass    string
}

func (f *fakeClient) Register(_ context.Context, name, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastRegName, f.LastRegEmail, f.LastRegPass = name, email, password
	return f.RegisterErr
}

func (f *fakeClient) Login(_ context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastLoginEmail, f.LastLoginPass = email, password
	return f.LoginErr
}

func (f *fakeClient) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) CheckSession(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SessionAlive, f.CheckSessionErr
}

func (f *fakeClient) FetchProfile(context.Context) (*api.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Profile == nil {
		return nil, f.FetchProfileErr
	}
	p := *f.Profile
	return &p, f.FetchProfileErr
}

func (f *fakeClient) SendVerificationCode(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SendVerificationCalls++
	return f.SendVerificationErr
}

func (f *fakeClient) VerifyEmail(_ context.Context, otp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastOTP = otp
	return f.VerifyEmailErr
}

func (f *fakeClient) SendResetCode(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastResetEmail = email
	return f.SendResetCodeErr
}

func (f *fakeClient) ResetPassword(_ context.Context, email, otp, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastResetEmail, f.LastResetOTP, f.LastResetPass = email, otp, newPassword
	return f.ResetPasswordErr
}

func (f *fakeClient) Close() error { return nil }
