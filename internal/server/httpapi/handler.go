package httpapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/server/auth"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/services"
)

type UserAPI interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
}

type TransactionAPI interface {
	Create(ctx context.Context, userID string, in services.TransactionInput) (*models.Transaction, error)
	List(ctx context.Context, userID string, q services.ListQuery) ([]*models.Transaction, error)
	Update(ctx context.Context, userID, id string, patch models.TransactionPatch) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
	Summary(ctx context.Context, userID string, q services.ListQuery) (*models.TransactionSummary, error)
}

type BudgetAPI interface {
	Upsert(ctx context.Context, userID string, in services.BudgetInput) (*models.Budget, error)
	List(ctx context.Context, userID string, month, year int) ([]*models.Budget, error)
	UpdateAmount(ctx context.Context, userID, id string, amount float64) (*models.Budget, error)
	Delete(ctx context.Context, userID, id string) error
}

type GoalAPI interface {
	Create(ctx context.Context, userID string, in services.GoalInput) (*models.Goal, error)
	List(ctx context.Context, userID string) ([]*models.Goal, error)
	Update(ctx context.Context, userID, id string, patch models.GoalPatch) (*models.Goal, error)
	Delete(ctx context.Context, userID, id string) error
}

type Exporter interface {
	Export(ctx context.Context, userID string, q services.ListQuery) (*services.ExportResult, error)
}

// Services bundles what the HTTP API dispatches to.
type Services struct {
	Users        UserAPI
	Transactions TransactionAPI
	Budgets      BudgetAPI
	Goals        GoalAPI
	Exporter     Exporter
	Tokens       TokenVerifier
}

type Handler struct {
	users        UserAPI
	transactions TransactionAPI
	budgets      BudgetAPI
	goals        GoalAPI
	exporter     Exporter
	validate     *validator.Validate
	log          logging.Logger
}

func NewHandler(s Services, log logging.Logger) *Handler {
	return &Handler{
		users:        s.Users,
		transactions: s.Transactions,
		budgets:      s.Budgets,
		goals:        s.Goals,
		exporter:     s.Exporter,
		validate:     newValidator(),
		log:          log,
	}
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Finance Tracker API is running"))
}

// userID reads the identity bound by Authenticate. Its absence means the
// route was mounted outside the gate.
func userID(r *http.Request) (string, bool) {
	return auth.UserIDFromContext(r.Context())
}

// withUser wraps handlers that need the bound identity.
func (h *Handler) withUser(fn func(w http.ResponseWriter, r *http.Request, uid string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(r)
		if !ok {
			h.log.Error(r.Context(), "no user bound to request", "path", r.URL.Path)
			unauthorized(w)
			return
		}
		fn(w, r, uid)
	}
}
