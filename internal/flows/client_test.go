package flows

import (
	"context"
	"sync"

	"github.com/authify/authify-cli/internal/api"
)

// fakeClient implements api.Client for flow tests: result fields for simple
// cases, optional function overrides where a test needs to control timing,
// and Last*/Calls captures for argument checks.
type fakeClient struct {
	mu sync.Mutex

	RegisterErr error
	LoginErr    error

	CheckSessionRet bool
	CheckSessionErr error
	FetchProfileRet *api.Profile
	FetchProfileErr error

	SendVerificationCodeErr error
	VerifyEmailErr          error
	VerifyEmailFn           func(ctx context.Context, otp string) error
	SendResetCodeErr        error
	ResetPasswordErr        error
	ResetPasswordFn         func(ctx context.Context, email, otp, newPassword string) error

	LastRegisterName  string
	LastRegisterEmail string
	LastLoginEmail    string
	LastVerifyOTP     string
	LastResetEmail    string
	LastResetOTP      string
	LastResetPassword string
	LastResetCodeTo   string

	LoginCalls        int
	CheckSessionCalls int
	FetchProfileCalls int
	SendCodeCalls     int
	VerifyEmailCalls  int
	SendResetCalls    int
	ResetCalls        int
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastRegisterName = name
	f.LastRegisterEmail = email
	return f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	f.LastLoginEmail = email
	return f.LoginErr
}

func (f *fakeClient) Logout(ctx context.Context) error { return nil }

func (f *fakeClient) CheckSession(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CheckSessionCalls++
	return f.CheckSessionRet, f.CheckSessionErr
}

func (f *fakeClient) FetchProfile(ctx context.Context) (*api.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FetchProfileCalls++
	if f.FetchProfileRet == nil {
		return nil, f.FetchProfileErr
	}
	p := *f.FetchProfileRet
	return &p, f.FetchProfileErr
}

func (f *fakeClient) SendVerificationCode(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SendCodeCalls++
	return f.SendVerificationCodeErr
}

func (f *fakeClient) VerifyEmail(ctx context.Context, otp string) error {
	f.mu.Lock()
	f.VerifyEmailCalls++
	f.LastVerifyOTP = otp
	fn := f.VerifyEmailFn
	err := f.VerifyEmailErr
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, otp)
	}
	return err
}

func (f *fakeClient) SendResetCode(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SendResetCalls++
	f.LastResetCodeTo = email
	return f.SendResetCodeErr
}

func (f *fakeClient) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	f.mu.Lock()
	f.ResetCalls++
	f.LastResetEmail = email
	f.LastResetOTP = otp
	f.LastResetPassword = newPassword
	fn := f.ResetPasswordFn
	err := f.ResetPasswordErr
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, email, otp, newPassword)
	}
	return err
}

func (f *fakeClient) Close() error { return nil }
