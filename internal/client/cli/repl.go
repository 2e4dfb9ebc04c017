package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// commands is the REPL's command surface; *App implements it and tests
// provide a recording stub.
type commands interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	AddTransaction(ctx context.Context) error
	ListTransactions(ctx context.Context, args []string) error
	DeleteTransaction(ctx context.Context, args []string) error
	Summary(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	SetBudget(ctx context.Context) error
	ListBudgets(ctx context.Context, args []string) error
	DeleteBudget(ctx context.Context, args []string) error
	AddGoal(ctx context.Context) error
	ListGoals(ctx context.Context) error
	UpdateGoal(ctx context.Context, args []string) error
	DeleteGoal(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = `Available commands:
  whoami | logout
  tx add | tx list [this-month|last-month|<month> <year>|<from> <to>] | tx delete <id>
  summary [period] | export [period]
  budget set | budget list [<month> <year>] | budget delete <id>
  goal add | goal list | goal update <id> | goal delete <id>
  help | exit`
)

// runREPL reads commands line by line and dispatches them to a until EOF
// or "exit". Command errors are reported by the commands themselves.
// Commands prompt through the same reader, so lines are never read ahead.
func runREPL(ctx context.Context, a commands, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "fintrack %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "tx":
			dispatchSub(ctx, w, "tx", args, map[string]func([]string) error{
				"add":    func([]string) error { return a.AddTransaction(ctx) },
				"list":   func(rest []string) error { return a.ListTransactions(ctx, rest) },
				"delete": func(rest []string) error { return a.DeleteTransaction(ctx, rest) },
			})
		case "summary":
			_ = a.Summary(ctx, args)
		case "export":
			_ = a.Export(ctx, args)
		case "budget":
			dispatchSub(ctx, w, "budget", args, map[string]func([]string) error{
				"set":    func([]string) error { return a.SetBudget(ctx) },
				"list":   func(rest []string) error { return a.ListBudgets(ctx, rest) },
				"delete": func(rest []string) error { return a.DeleteBudget(ctx, rest) },
			})
		case "goal":
			dispatchSub(ctx, w, "goal", args, map[string]func([]string) error{
				"add":    func([]string) error { return a.AddGoal(ctx) },
				"list":   func([]string) error { return a.ListGoals(ctx) },
				"update": func(rest []string) error { return a.UpdateGoal(ctx, rest) },
				"delete": func(rest []string) error { return a.DeleteGoal(ctx, rest) },
			})
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

func dispatchSub(_ context.Context, w io.Writer, group string, args []string, subs map[string]func([]string) error) {
	if len(args) == 0 {
		fmt.Fprintf(w, "Usage: %s <subcommand>, see help\n", group)
		return
	}
	fn, ok := subs[args[0]]
	if !ok {
		fmt.Fprintf(w, "Unknown command: %s %s\n", group, args[0])
		return
	}
	_ = fn(args[1:])
}
