package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateSnapshot is one persisted store state.
type StateSnapshot struct {
	Namespace string    `gorm:"primaryKey;size:128"`
	Payload   string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (StateSnapshot) TableName() string {
	return "state_snapshots"
}

// GormRepository stores snapshots in a relational table, one row per namespace.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM state repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&StateSnapshot{})
}

func (r *GormRepository) Load(ctx context.Context, namespace string, v any) (bool, error) {
	if namespace == "" {
		return false, ErrInvalidNamespace
	}
	var row StateSnapshot
	err := r.db.WithContext(ctx).Where("namespace = ?", namespace).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s state: %w", namespace, err)
	}
	if err := decode(namespace, []byte(row.Payload), v); err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormRepository) Save(ctx context.Context, namespace string, v any) error {
	data, err := encode(namespace, v)
	if err != nil {
		return err
	}
	row := StateSnapshot{
		Namespace: namespace,
		Payload:   string(data),
		UpdatedAt: time.Now(),
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write %s state: %w", namespace, err)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, namespace string) error {
	if err := r.db.WithContext(ctx).Delete(&StateSnapshot{}, "namespace = ?", namespace).Error; err != nil {
		return fmt.Errorf("failed to delete %s state: %w", namespace, err)
	}
	return nil
}
