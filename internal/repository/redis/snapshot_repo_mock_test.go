package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"alcyxob/fitplan/internal/repository"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSnapshotRepository_Commands(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	repo := NewRedisSnapshotRepository(client, 30*time.Minute)

	mock.ExpectSet("fitplan:session/abc/app-state", []byte(`{}`), 30*time.Minute).SetVal("OK")
	require.NoError(t, repo.Save(ctx, "session/abc/app-state", []byte(`{}`)))

	mock.ExpectGet("fitplan:session/abc/app-state").RedisNil()
	_, err := repo.Load(ctx, "session/abc/app-state")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	mock.ExpectGet("fitplan:session/abc/intake").SetErr(errors.New("READONLY"))
	_, err = repo.Load(ctx, "session/abc/intake")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	mock.ExpectDel("fitplan:a", "fitplan:b").SetVal(1)
	require.NoError(t, repo.Delete(ctx, "a", "b"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRedisSnapshotRepository_NegativeTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisSnapshotRepository(client, -time.Second)

	mock.ExpectSet("fitplan:k", []byte(`1`), 0).SetVal("OK")
	require.NoError(t, repo.Save(context.Background(), "k", []byte(`1`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
