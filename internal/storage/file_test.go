package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-connect/internal/domain"
)

func TestFileSnapshotterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "state.json")
	f := NewFile(path)

	state := domain.State{
		CurrentUser: &domain.User{ID: "c1", Name: "Jane", Email: "jane@test.com", Role: domain.RoleCustomer},
		Products: []domain.Product{
			{ID: "p1", Name: "Tomatoes", Price: 3.5, Stock: 10, Sold: 2},
		},
		Cart: []domain.CartItem{
			{Product: domain.Product{ID: "p1", Price: 3.5}, Quantity: 2},
		},
		Wishlist: []string{"p1"},
	}
	require.NoError(t, f.Save(context.Background(), state))

	got, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestFileSnapshotterOverwrites(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "state.json"))

	require.NoError(t, f.Save(context.Background(), domain.State{Wishlist: []string{"a"}}))
	require.NoError(t, f.Save(context.Background(), domain.State{Wishlist: []string{"b"}}))

	got, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, got.Wishlist)
}

func TestFileSnapshotterLoadMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nope.json"))
	_, err := f.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileSnapshotterLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFile(path).Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileSnapshotterLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(filepath.Join(dir, "state.json"))
	require.NoError(t, f.Save(context.Background(), domain.State{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}
