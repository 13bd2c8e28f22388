package cli

import (
	"context"
	"os"

	"github.com/authify/authify-cli/internal/api"
	"github.com/authify/authify-cli/internal/flows"
)

// VerifyEmail runs the interactive email verification flow: it requests an
// OTP to be mailed to the signed-in account, collects the code through the
// segmented input, and submits it. On a wrong code the user may retry with
// a fresh code entry.
func (a *App) VerifyEmail(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first.")
		return nil
	}

	snap := a.store.Snapshot()
	if snap.Profile != nil && snap.Profile.EmailVerified {
		printlnFn("Email is already verified.")
		return nil
	}

	if err := a.auth.RequestVerificationCode(ctx); err != nil {
		printlnFn(api.Message(err, "Failed to send OTP"))
		return err
	}
	printlnFn("A verification code was sent to your email.")

	flow := flows.NewVerificationFlow(a.client, a.store, a.log)
	defer flow.Close()

	for {
		if err := GetCode(a.reader, flow.Input(), os.Stdout); err != nil {
			return err
		}

		if err := flow.Verify(ctx); err != nil {
			printlnFn(api.Message(err, "OTP verification failed"))

			again, rerr := getSimpleText(a.reader, "Try again? (y/N)", os.Stdout)
			if rerr != nil || again != "y" {
				return err
			}
			flow.Input().Clear()
			continue
		}

		printlnFn("Email verified.")
		return nil
	}
}
