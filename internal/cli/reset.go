package cli

import (
	"context"
	"os"

	"github.com/authify/authify-cli/internal/api"
	"github.com/authify/authify-cli/internal/flows"
)

// ResetPassword runs the two-phase password reset: the user names the
// account email and receives an OTP, then supplies the code together with
// the new password. A rejected code keeps the flow alive so the user can
// retry without requesting a new OTP.
func (a *App) ResetPassword(ctx context.Context) error {
	flow := flows.NewResetFlow(a.client, a.log)
	defer flow.Close()

	email, err := getSimpleText(a.reader, "Enter account email", os.Stdout)
	if err != nil {
		return err
	}

	if err := flow.RequestCode(ctx, email); err != nil {
		printlnFn(api.Message(err, "Failed to send OTP"))
		return err
	}
	printlnFn("A reset code was sent to your email.")

	for {
		if err := GetCode(a.reader, flow.Input(), os.Stdout); err != nil {
			return err
		}

		password, err := getPassword(os.Stdout, "Enter new password")
		if err != nil {
			return err
		}

		if err := flow.Submit(ctx, flow.Input().Code(), password); err != nil {
			printlnFn(api.Message(err, "Reset failed"))

			again, rerr := getSimpleText(a.reader, "Try again? (y/N)", os.Stdout)
			if rerr != nil || again != "y" {
				return err
			}
			flow.Input().Clear()
			continue
		}

		printlnFn("Password changed. Use 'login' to sign in.")
		return nil
	}
}
