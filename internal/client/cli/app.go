package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/fintrack/internal/client/api"
	"github.com/dmitrijs2005/fintrack/internal/client/config"
	"github.com/dmitrijs2005/fintrack/internal/client/session"
)

// apiClient is the slice of *api.Client the commands use.
type apiClient interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Profile(ctx context.Context) (*api.User, error)
	ListTransactions(ctx context.Context, f api.Filter) ([]api.Transaction, error)
	CreateTransaction(ctx context.Context, in api.TransactionInput) (*api.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	Summary(ctx context.Context, f api.Filter) (*api.Summary, error)
	Export(ctx context.Context, f api.Filter) (*api.ExportLink, error)
	ListBudgets(ctx context.Context, month, year int) ([]api.Budget, error)
	SetBudget(ctx context.Context, in api.BudgetInput) (*api.Budget, error)
	DeleteBudget(ctx context.Context, id string) error
	ListGoals(ctx context.Context) ([]api.Goal, error)
	CreateGoal(ctx context.Context, in api.GoalInput) (*api.Goal, error)
	UpdateGoal(ctx context.Context, id string, p api.GoalPatch) (*api.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	HTTPClient() *http.Client
}

type sessionStore interface {
	Load(ctx context.Context) (*session.Session, error)
	Save(ctx context.Context, s session.Session) error
	Clear(ctx context.Context) error
	Close() error
}

type App struct {
	config    *config.Config
	api       apiClient
	sessions  sessionStore
	user      *session.User
	reader    *bufio.Reader
	out       io.Writer
	exportDir string
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	store, err := session.Open(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	return &App{
		config:    c,
		api:       api.New(c.ServerURL, c.RequestTimeout, store),
		sessions:  store,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		exportDir: "exports",
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

// restoreSession picks up a session saved by an earlier run.
func (a *App) restoreSession(ctx context.Context) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
		return
	}
	u := s.User
	a.user = &u
}

func (a *App) Run(ctx context.Context) {
	defer a.sessions.Close()

	fmt.Fprintln(a.out, "Welcome to fintrack CLI (type 'help' for commands)")
	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "warning: %v\n", err)
	}
	a.restoreSession(ctx)

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Email)
}

// report prints err for the user. An authentication failure means the
// stored token is no longer accepted, so the local session is dropped.
func (a *App) report(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if api.IsAuthError(err) {
		if cerr := a.sessions.Clear(ctx); cerr != nil {
			fmt.Fprintf(a.out, "error: %v\n", cerr)
		}
		a.user = nil
		fmt.Fprintln(a.out, "Session expired or missing, please log in.")
		return err
	}
	fmt.Fprintf(a.out, "error: %v\n", err)
	return err
}
