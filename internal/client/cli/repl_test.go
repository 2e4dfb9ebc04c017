package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubCommands struct {
	loggedIn bool
	calls    []string
}

func (s *stubCommands) rec(name string, args ...string) error {
	s.calls = append(s.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

func (s *stubCommands) isLoggedIn() bool                        { return s.loggedIn }
func (s *stubCommands) Register(context.Context) error          { return s.rec("register") }
func (s *stubCommands) Login(context.Context) error             { return s.rec("login") }
func (s *stubCommands) Logout(context.Context) error            { return s.rec("logout") }
func (s *stubCommands) WhoAmI(context.Context) error            { return s.rec("whoami") }
func (s *stubCommands) AddTransaction(context.Context) error    { return s.rec("tx add") }
func (s *stubCommands) SetBudget(context.Context) error         { return s.rec("budget set") }
func (s *stubCommands) AddGoal(context.Context) error           { return s.rec("goal add") }
func (s *stubCommands) ListGoals(context.Context) error         { return s.rec("goal list") }
func (s *stubCommands) ListTransactions(_ context.Context, a []string) error {
	return s.rec("tx list", a...)
}
func (s *stubCommands) DeleteTransaction(_ context.Context, a []string) error {
	return s.rec("tx delete", a...)
}
func (s *stubCommands) Summary(_ context.Context, a []string) error { return s.rec("summary", a...) }
func (s *stubCommands) Export(_ context.Context, a []string) error  { return s.rec("export", a...) }
func (s *stubCommands) ListBudgets(_ context.Context, a []string) error {
	return s.rec("budget list", a...)
}
func (s *stubCommands) DeleteBudget(_ context.Context, a []string) error {
	return s.rec("budget delete", a...)
}
func (s *stubCommands) UpdateGoal(_ context.Context, a []string) error {
	return s.rec("goal update", a...)
}
func (s *stubCommands) DeleteGoal(_ context.Context, a []string) error {
	return s.rec("goal delete", a...)
}

func TestRunREPL_Dispatch(t *testing.T) {
	input := strings.Join([]string{
		"", "register", "login", "whoami",
		"tx add", "tx list last-month", "tx delete abc",
		"summary 3 2025", "export",
		"budget set", "budget list 1 2025", "budget delete b1",
		"goal add", "goal list", "goal update g1", "goal delete g1",
		"logout", "exit", "login",
	}, "\n")

	s := &stubCommands{}
	var out bytes.Buffer
	runREPL(context.Background(), s, func() string { return "" }, bufio.NewReader(strings.NewReader(input)), &out)

	assert.Equal(t, []string{
		"register", "login", "whoami",
		"tx add", "tx list last-month", "tx delete abc",
		"summary 3 2025", "export",
		"budget set", "budget list 1 2025", "budget delete b1",
		"goal add", "goal list", "goal update g1", "goal delete g1",
		"logout",
	}, s.calls)
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_HelpAndUnknown(t *testing.T) {
	s := &stubCommands{}
	var out bytes.Buffer
	runREPL(context.Background(), s, func() string { return "(x)" }, bufio.NewReader(strings.NewReader("help\nfoo\ntx\ntx nope\n")), &out)

	text := out.String()
	assert.Contains(t, text, "fintrack (x)> ")
	assert.Contains(t, text, helpLoggedOut)
	assert.Contains(t, text, "Unknown command: foo")
	assert.Contains(t, text, "Usage: tx <subcommand>")
	assert.Contains(t, text, "Unknown command: tx nope")
	assert.Empty(t, s.calls)

	s.loggedIn = true
	out.Reset()
	runREPL(context.Background(), s, func() string { return "" }, bufio.NewReader(strings.NewReader("help")), &out)
	assert.Contains(t, out.String(), "goal update <id>")
}
