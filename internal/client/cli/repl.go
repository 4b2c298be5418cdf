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
	Go(ctx context.Context, path string) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Borrow(ctx context.Context, id string) error
	Return(ctx context.Context, id string) error
	Status(ctx context.Context) error
	flush()
}

// runREPL reads commands line by line and dispatches them to a. The loop
// exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help             show available commands
//	  - register         create an account
//	  - login            authenticate
//	  - go <path>        open a location (protected ones lead to /login)
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - books            list the catalog
//	  - borrow <id>      show a book and borrow it
//	  - return [id]      list borrowed books, or return one
//	  - status           session details
//	  - go <path>        open a location
//	  - logout           end the session
//	  - exit | quit      leave the program
//
// Command handlers print their own errors, so their return values are
// ignored here. After every command the pending notice or error is printed
// once.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bookshelf %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: books, borrow <id>, return [id], status, go <path>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, go <path>, exit")
			}

		case "go", "open":
			if arg == "" {
				printlnFn("Usage:", cmd, "<path>")
				continue
			}
			_ = a.Go(ctx, arg)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "books":
			_ = a.Go(ctx, "/books")

		case "borrow":
			_ = a.Borrow(ctx, arg)

		case "return":
			_ = a.Return(ctx, arg)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.flush()
	}
}
