package database

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/core/fanoutqueue"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type FanoutRepositoryDatabase struct {
	db *gorm.DB
}

func NewFanoutRepositoryDatabase(db *gorm.DB) *FanoutRepositoryDatabase {
	return &FanoutRepositoryDatabase{db: db}
}

func (repo *FanoutRepositoryDatabase) Create(ctx context.Context, fanout *fanoutqueue.FanoutQueue) (*fanoutqueue.FanoutQueue, error) {
	if fanout.ID == uuid.Nil {
		fanout.ID = newID()
	}
	if fanout.Status == "" {
		fanout.Status = fanoutqueue.StatusPending
	}
	if err := repo.db.WithContext(ctx).Create(fanout).Error; err != nil {
		return nil, fmt.Errorf("queue fanout: %w", err)
	}
	return fanout, nil
}

// GetPending returns the oldest pending records first.
func (repo *FanoutRepositoryDatabase) GetPending(ctx context.Context, limit int) ([]*fanoutqueue.FanoutQueue, error) {
	var fanouts []*fanoutqueue.FanoutQueue
	err := repo.db.WithContext(ctx).
		Where("status = ?", fanoutqueue.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&fanouts).Error
	if err != nil {
		return nil, fmt.Errorf("pending fanouts: %w", err)
	}
	return fanouts, nil
}

func (repo *FanoutRepositoryDatabase) MarkDone(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&fanoutqueue.FanoutQueue{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       fanoutqueue.StatusDone,
			"processed_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("mark fanout done: %w", err)
	}
	return nil
}
