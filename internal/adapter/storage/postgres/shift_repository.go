package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/observability/telemetry"
	"github.com/seu-repo/quickpos/internal/ports"
)

type ShiftRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewShiftRepository(db *gorm.DB, log *zap.Logger) ports.ShiftRepository {
	return &ShiftRepository{
		db:  db,
		log: log,
	}
}

func (r *ShiftRepository) Save(ctx context.Context, shift *domain.Shift) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Save(shift).Error
	telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
	return err
}

func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*domain.Shift, error) {
	var shift domain.Shift
	err := r.db.WithContext(ctx).First(&shift, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

func (r *ShiftRepository) FindOpen(ctx context.Context) (*domain.Shift, error) {
	var shift domain.Shift
	err := r.db.WithContext(ctx).Where("is_open = ?", true).Order("opened_at desc").First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

func (r *ShiftRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Shift, error) {
	if limit <= 0 {
		limit = 20
	}
	var shifts []domain.Shift
	err := r.db.WithContext(ctx).Order("opened_at desc").Limit(limit).Offset(offset).Find(&shifts).Error
	return shifts, err
}
