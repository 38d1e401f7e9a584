package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/types"
)

type StageRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, stageID uuid.UUID) (*types.Stage, error)
	Create(ctx context.Context, tx *gorm.DB, stages []*types.Stage) ([]*types.Stage, error)
}

type stageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStageRepo(db *gorm.DB, baseLog *logger.Logger) StageRepo {
	return &stageRepo{db: db, log: baseLog.With("repo", "StageRepo")}
}

func (r *stageRepo) GetByID(ctx context.Context, tx *gorm.DB, stageID uuid.UUID) (*types.Stage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Stage
	err := transaction.WithContext(ctx).
		Where("id = ?", stageID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *stageRepo) Create(ctx context.Context, tx *gorm.DB, stages []*types.Stage) ([]*types.Stage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(stages) == 0 {
		return []*types.Stage{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&stages).Error; err != nil {
		return nil, err
	}
	return stages, nil
}
