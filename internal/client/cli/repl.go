package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/guard"
	"github.com/dmitrijs2005/folio/internal/client/session"
	"github.com/dmitrijs2005/folio/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. App satisfies it;
// tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	authorize(ctx context.Context, route guard.Route) (string, bool)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Contact(ctx context.Context) error

	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context, token string) error
	Bio(ctx context.Context, token string) error
	Academic(ctx context.Context, token string, args []string) error
	Projects(ctx context.Context, token string, args []string) error
	Messages(ctx context.Context, token string) error
	Picture(ctx context.Context, token string, args []string) error
	Logout(ctx context.Context) error
}

// routes lists every command the REPL knows. Protected routes pass the
// guard before they run.
var routes = map[string]guard.Route{
	"help":     {Name: "help"},
	"register": {Name: "register"},
	"login":    {Name: "login"},
	"contact":  {Name: "contact"},
	"exit":     {Name: "exit"},
	"quit":     {Name: "quit"},

	"whoami":   {Name: "whoami", Protected: true},
	"profile":  {Name: "profile", Protected: true},
	"bio":      {Name: "bio", Protected: true},
	"academic": {Name: "academic", Protected: true},
	"projects": {Name: "projects", Protected: true},
	"messages": {Name: "messages", Protected: true},
	"picture":  {Name: "picture", Protected: true},
	"logout":   {Name: "logout", Protected: true},
}

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit" or "quit".
//
//	Always:
//	  help, register, login, contact, exit | quit
//
//	With a session:
//	  whoami, profile, bio, messages, logout
//	  academic [list | add | edit <id> | rm <id>]
//	  projects [list | add | edit <id> | rm <id>]
//	  picture  [url | upload <path>]
//
// Command errors are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("folio%s> ", statusFn()))

		line, rerr := reader.ReadString('\n')
		if rerr != nil && (!errors.Is(rerr, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		route, known := routes[cmd]
		if !known {
			printlnFn("Unknown command:", cmd)
			continue
		}

		var err error
		var token string
		if route.Protected {
			var ok bool
			if token, ok = a.authorize(ctx, route); !ok {
				continue
			}
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, bio, academic, projects, picture, messages, contact, logout, exit")
			} else {
				printlnFn("Available commands: register, login, contact, exit")
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "contact":
			err = a.Contact(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)
		case "profile":
			err = a.Profile(ctx, token)
		case "bio":
			err = a.Bio(ctx, token)
		case "academic":
			err = a.Academic(ctx, token, args)
		case "projects":
			err = a.Projects(ctx, token, args)
		case "messages":
			err = a.Messages(ctx, token)
		case "picture":
			err = a.Picture(ctx, token, args)
		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		report(err)
	}
}

// report prints err in user terms. Nil is a no-op.
func report(err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, session.ErrSuperseded):
		printlnFn("Cancelled: a newer session operation took over")
	case errors.Is(err, session.ErrPasswordMismatch):
		printlnFn("Passwords do not match")
	case errors.Is(err, common.ErrInvalidCredentials):
		printlnFn("Invalid email or password")
	case errors.Is(err, common.ErrDuplicateAccount):
		printlnFn("An account with this email already exists")
	case errors.Is(err, client.ErrUnauthorized):
		printlnFn("Session is no longer valid, please log in again")
	case errors.Is(err, common.ErrForbidden):
		printlnFn("That record belongs to someone else")
	case errors.Is(err, common.ErrorNotFound):
		printlnFn("Not found")
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable, try again later")
	default:
		printlnFn("Error:", err.Error())
	}
}
