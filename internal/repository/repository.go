package repository

import (
	"context"
	"strings"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Snapshot keys, one JSON document each.
const (
	KeyProgress        = "progress"
	KeyMonthlyPlans    = "monthly-plans"
	KeyAssessment      = "assessment"
	KeyAppState        = "app-state"
	KeyUserInfo        = "user-info"
	KeyThemePreference = "theme-preference"
	KeyIntake          = "intake"
)

// SessionKeys lists every key a session owns.
var SessionKeys = []string{
	KeyProgress,
	KeyMonthlyPlans,
	KeyAssessment,
	KeyAppState,
	KeyUserInfo,
	KeyThemePreference,
	KeyIntake,
}

// SnapshotRepository is an opaque key -> JSON document store.
type SnapshotRepository interface {
	// Load returns the stored document or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save creates or replaces the document at key.
	Save(ctx context.Context, key string, doc []byte) error
	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// prefixedRepository scopes every key under a fixed prefix.
type prefixedRepository struct {
	inner  SnapshotRepository
	prefix string
}

// WithPrefix returns a view of repo whose keys are namespaced under prefix.
func WithPrefix(repo SnapshotRepository, prefix string) SnapshotRepository {
	return &prefixedRepository{inner: repo, prefix: strings.TrimSuffix(prefix, "/") + "/"}
}

// SessionPrefix is the namespace for one session's snapshots.
func SessionPrefix(sessionID string) string {
	return "session/" + sessionID
}

func (r *prefixedRepository) Load(ctx context.Context, key string) ([]byte, error) {
	return r.inner.Load(ctx, r.prefix+key)
}

func (r *prefixedRepository) Save(ctx context.Context, key string, doc []byte) error {
	return r.inner.Save(ctx, r.prefix+key, doc)
}

func (r *prefixedRepository) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.prefix + k
	}
	return r.inner.Delete(ctx, full...)
}
