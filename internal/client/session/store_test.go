package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStore_SaveLoadClear(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	want := Session{Token: "tok", User: User{ID: "u1", Name: "Alice", Email: "alice@example.com"}}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)

	require.NoError(t, s.Clear(ctx))
	_, err = s.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.Clear(ctx))
}

func TestStore_SaveReplacesPreviousUser(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, Session{Token: "a", User: User{ID: "1", Name: "A", Email: "a@x.io"}}))
	require.NoError(t, s.Save(ctx, Session{Token: "b", User: User{ID: "2", Name: "B"}}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{Token: "b", User: User{ID: "2", Name: "B"}}, *got)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	s, path := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, Session{Token: "tok", User: User{ID: "u1"}}))
	require.NoError(t, s.Close())

	s2, err := Open(ctx, path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
}
