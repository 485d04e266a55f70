package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	isStaff() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	VerifyContact(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Requests(ctx context.Context) error
	Request(ctx context.Context) error
	CancelRequest(ctx context.Context) error
	SetRequestStatus(ctx context.Context) error
	Notifications(ctx context.Context) error
	Sync(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts the read–eval–print loop of the BarangayConnect client.
//
// It reads a line from the scanner, parses the first token as the command,
// and dispatches to methods on 'a'. Unknown commands are reported back. The
// loop exits on scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed here so the loop itself
// stays resilient; handlers never terminate the REPL.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	printlnFn("Welcome to BarangayConnect (type 'help' for commands)")

	for {
		printlnFn(fmt.Sprintf("bc %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		var err error
		switch parts[0] {
		case "help":
			switch {
			case a.isStaff():
				printlnFn("Available commands: requests, status, notifications, profile, edit, sync, logout, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: requests, request, cancel, notifications, profile, edit, verify, sync, logout, exit")
			default:
				printlnFn("Available commands: register, login, forgot, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "forgot":
			err = a.ForgotPassword(ctx)

		case "verify":
			err = a.VerifyContact(ctx)

		case "profile":
			err = a.Profile(ctx)

		case "edit":
			err = a.EditProfile(ctx)

		case "requests":
			err = a.Requests(ctx)

		case "request":
			err = a.Request(ctx)

		case "cancel":
			err = a.CancelRequest(ctx)

		case "status":
			err = a.SetRequestStatus(ctx)

		case "notifications":
			err = a.Notifications(ctx)

		case "sync":
			err = a.Sync(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", parts[0])
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
