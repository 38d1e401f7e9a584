package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/types"
)

type ProcessRepo interface {
	ListStagesByProcessID(ctx context.Context, tx *gorm.DB, processID uuid.UUID) ([]*types.ProcessStage, error)
	Create(ctx context.Context, tx *gorm.DB, process *types.Process) (*types.Process, error)
}

type processRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProcessRepo(db *gorm.DB, baseLog *logger.Logger) ProcessRepo {
	return &processRepo{db: db, log: baseLog.With("repo", "ProcessRepo")}
}

func (r *processRepo) ListStagesByProcessID(ctx context.Context, tx *gorm.DB, processID uuid.UUID) ([]*types.ProcessStage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProcessStage
	if err := transaction.WithContext(ctx).
		Where("process_id = ?", processID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *processRepo) Create(ctx context.Context, tx *gorm.DB, process *types.Process) (*types.Process, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(process).Error; err != nil {
		return nil, err
	}
	return process, nil
}
