// Package session persists the signed-in user's token and profile in a
// local sqlite database so the CLI stays logged in between runs. The
// server is always the authority; a stored session is only a cache.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/fintrack/internal/client/migrations"
	"github.com/dmitrijs2005/fintrack/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fintrack/internal/dbx"
)

var ErrNoSession = errors.New("not logged in")

const (
	keyToken     = "token"
	keyUserID    = "user_id"
	keyUserName  = "user_name"
	keyUserEmail = "user_email"
)

var sessionKeys = []string{keyToken, keyUserID, keyUserName, keyUserEmail}

type User struct {
	ID    string
	Name  string
	Email string
}

type Session struct {
	Token string
	User  User
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database at path and applies
// its migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate session db: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored session atomically.
func (s *Store) Save(ctx context.Context, sess Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, sessionKeys...); err != nil {
			return err
		}
		return repo.SetMany(ctx, map[string]string{
			keyToken:     sess.Token,
			keyUserID:    sess.User.ID,
			keyUserName:  sess.User.Name,
			keyUserEmail: sess.User.Email,
		})
	})
}

// Load returns the stored session or ErrNoSession.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	values, err := metadata.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	if values[keyToken] == "" {
		return nil, ErrNoSession
	}
	return &Session{
		Token: values[keyToken],
		User: User{
			ID:    values[keyUserID],
			Name:  values[keyUserName],
			Email: values[keyUserEmail],
		},
	}, nil
}

// Token returns the stored token, or "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	tok, _, err := metadata.NewSQLiteRepository(s.db).Get(ctx, keyToken)
	return tok, err
}

// Clear forgets the session. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, sessionKeys...)
	})
}
