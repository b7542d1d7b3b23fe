package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements it.
type execIface interface {
	isSignedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Users(ctx context.Context) error
	Role(ctx context.Context, args []string) error
	Ban(ctx context.Context, args []string, banned bool) error
}

// runREPL reads commands from scanner until EOF or "exit" and dispatches them
// to a. The prompt shows statusFn's value.
//
//	Signed out: help, register, login, exit
//	Signed in:  help, whoami, users, role <id> <role>, ban <id>, unban <id>, logout, exit
//
// Command handlers report their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("okul [%s]> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn("Komutlar: whoami, users, role <id> <rol>, ban <id>, unban <id>, logout, exit")
			} else {
				printlnFn("Komutlar: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "users":
			_ = a.Users(ctx)

		case "role":
			_ = a.Role(ctx, args)

		case "ban":
			_ = a.Ban(ctx, args, true)

		case "unban":
			_ = a.Ban(ctx, args, false)

		case "exit", "quit":
			printlnFn("Güle güle!")
			return

		default:
			printlnFn("Bilinmeyen komut:", cmd)
		}
	}
}
