package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	VerifyEmail(ctx context.Context) error
	ResetPassword(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Authify CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current session status (from statusFn) and accepts:
//
//	Not signed in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - resetpw        — reset a forgotten password via email OTP
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - help           — show available commands
//	  - whoami         — show the current profile
//	  - verify         — verify the account email via OTP
//	  - logout         — end the session
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("authify %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, verify, logout, exit")
			} else {
				printlnFn("Available commands: register, login, resetpw, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "verify":
			_ = a.VerifyEmail(ctx)

		case "resetpw":
			_ = a.ResetPassword(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
