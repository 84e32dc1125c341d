package store_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-recipes-client/store"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Get(ctx, store.KeyAccessToken)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, fs.Set(ctx, store.KeyAccessToken, "token-value"))

	got, err := fs.Get(ctx, store.KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "token-value", got)

	require.NoError(t, fs.Remove(ctx, store.KeyAccessToken))

	_, err = fs.Get(ctx, store.KeyAccessToken)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestFileStore_RemoveMissingKeyIsNoOp(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Remove(context.Background(), "never-set"))
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Set(ctx, store.KeyRefreshToken, "refresh-value"))

	reopened, err := store.NewFileStore(dir)
	require.NoError(t, err)

	got, err := reopened.Get(ctx, store.KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, "refresh-value", got)
}

func TestFileStore_DataFileIsNotPlaintext(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Set(ctx, store.KeyAccessToken, "very-secret-token"))

	raw, err := os.ReadFile(filepath.Join(dir, "tokens.enc"))
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), "very-secret-token"))
	require.False(t, strings.Contains(string(raw), store.KeyAccessToken))
}

func TestFileStore_OverwritesExistingValue(t *testing.T) {
	ctx := context.Background()
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Set(ctx, store.KeyAccessToken, "first"))
	require.NoError(t, fs.Set(ctx, store.KeyAccessToken, "second"))

	got, err := fs.Get(ctx, store.KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "second", got)
}
