package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	SignIn(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Me(ctx context.Context) error
	SignOut(ctx context.Context) error
}

const (
	helpGuest    = "Available commands: signup, verify, resend, signin, change, reset, exit"
	helpSignedIn = "Available commands: me, change, signout, signup, verify, resend, signin, reset, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF or "exit"/"quit". Command failures are printed and the loop
// goes on.
//
//	help      show available commands
//	signup    create an account and receive a verification code
//	verify    activate an account with the emailed code
//	resend    email a fresh verification code
//	signin    sign in with email and password
//	change    change the password
//	reset     email a temporary password
//	me        show the signed-in profile
//	signout   forget the session token
//	exit      leave the program
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("lms> %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpGuest)
			}

		case "signup":
			cmdErr = a.SignUp(ctx)

		case "verify":
			cmdErr = a.Verify(ctx)

		case "resend":
			cmdErr = a.Resend(ctx)

		case "signin", "login":
			cmdErr = a.SignIn(ctx)

		case "change":
			cmdErr = a.ChangePassword(ctx)

		case "reset":
			cmdErr = a.ResetPassword(ctx)

		case "me":
			cmdErr = a.Me(ctx)

		case "signout", "logout":
			cmdErr = a.SignOut(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}
