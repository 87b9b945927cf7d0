package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"alcyxob/fitplan/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func openTestRepo(t *testing.T, path string) repository.SnapshotRepository {
	t.Helper()
	database, err := OpenSQLite(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseSQLite(database) })
	return NewSQLiteSnapshotRepository(database)
}

func TestSQLiteSnapshotRepository_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t, filepath.Join(t.TempDir(), "data", "fitplan.db"))

	_, err := repo.Load(ctx, "session/abc/progress")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Save(ctx, "session/abc/progress", []byte(`{"streakDays":1}`)))
	require.NoError(t, repo.Save(ctx, "session/abc/progress", []byte(`{"streakDays":2}`)))
	require.NoError(t, repo.Save(ctx, "session/abc/intake", []byte(`{"step":-1}`)))

	got, err := repo.Load(ctx, "session/abc/progress")
	require.NoError(t, err)
	assert.Equal(t, `{"streakDays":2}`, string(got))

	require.NoError(t, repo.Delete(ctx, "session/abc/progress", "session/abc/missing"))
	_, err = repo.Load(ctx, "session/abc/progress")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err = repo.Load(ctx, "session/abc/intake")
	require.NoError(t, err)
	assert.Equal(t, `{"step":-1}`, string(got))

	assert.NoError(t, repo.Delete(ctx))
}

func TestSQLiteSnapshotRepository_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fitplan.db")

	database, err := OpenSQLite(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, NewSQLiteSnapshotRepository(database).Save(ctx, "k", []byte(`true`)))
	require.NoError(t, CloseSQLite(database))

	repo := openTestRepo(t, path)
	got, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "true", string(got))
}
