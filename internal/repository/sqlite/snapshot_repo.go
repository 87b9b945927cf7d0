package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fitplan/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// snapshotRow is one stored document.
type snapshotRow struct {
	Key       string    `gorm:"column:snapshot_key;primaryKey"`
	Payload   string    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (snapshotRow) TableName() string { return "snapshots" }

type sqliteSnapshotRepository struct {
	db *gorm.DB
}

// NewSQLiteSnapshotRepository stores snapshots in the "snapshots" table of db.
func NewSQLiteSnapshotRepository(db *gorm.DB) repository.SnapshotRepository {
	return &sqliteSnapshotRepository{db: db}
}

func (r *sqliteSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var row snapshotRow
	err := r.db.WithContext(ctx).Where("snapshot_key = ?", key).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return []byte(row.Payload), nil
}

func (r *sqliteSnapshotRepository) Save(ctx context.Context, key string, doc []byte) error {
	row := snapshotRow{Key: key, Payload: string(doc), UpdatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

func (r *sqliteSnapshotRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("snapshot_key IN ?", keys).Delete(&snapshotRow{}).Error; err != nil {
		return fmt.Errorf("%w: %v", repository.ErrDeleteFailed, err)
	}
	return nil
}
