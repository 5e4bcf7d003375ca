package gorm

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mercatto/catalog-api/internal/core/domain"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Save(ctx context.Context, entry *domain.AuditEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("save audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []domain.AuditEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}
