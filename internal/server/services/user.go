// Package services contains server-side business logic. Every resource
// operation takes the user id bound by the authorization gate and never
// trusts an owner id supplied in request data.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer mints identity tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token string
	User  *models.User
}

// UserService handles registration, login and profile lookup.
// Passwords are stored as bcrypt hashes only.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
	cost        int
	dummyHash   []byte
}

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer) (*UserService, error) {
	return newUserService(db, m, tokens, bcrypt.DefaultCost)
}

func newUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer, cost int) (*UserService, error) {
	// compared against when the email is unknown so both login failures
	// cost one bcrypt round
	dummy, err := bcrypt.GenerateFromPassword([]byte("fintrack-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("error preparing password hasher: %w", err)
	}
	return &UserService{db: db, repomanager: m, tokens: tokens, cost: cost, dummyHash: dummy}, nil
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new user. A taken email yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", common.ErrValidation)
	}
	if len(password) > maxPasswordBytes {
		return nil, validationError("password must be at most %d bytes", maxPasswordBytes)
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// FindByEmail looks a user up by normalized email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByEmail(ctx, NormalizeEmail(email))
}

// VerifyPassword reports whether raw matches hash.
func (s *UserService) VerifyPassword(raw string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(raw)) == nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.VerifyPassword(password, s.dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !s.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return &LoginResult{Token: token, User: user}, nil
}

// Profile returns the stored user for userID.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	if !validID(userID) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// validID reports whether id is a well-formed record id. Malformed ids are
// treated as not found rather than passed to storage.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(resource string) error {
	return fmt.Errorf("%w: %s", common.ErrorNotFound, resource)
}
