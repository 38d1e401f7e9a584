package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/types"
)

type CandidateRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID) (*types.Candidate, error)
	Create(ctx context.Context, tx *gorm.DB, candidate *types.Candidate) (*types.Candidate, error)
	SetTestID(ctx context.Context, tx *gorm.DB, candidateID, testID uuid.UUID) error
}

type candidateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCandidateRepo(db *gorm.DB, baseLog *logger.Logger) CandidateRepo {
	return &candidateRepo{db: db, log: baseLog.With("repo", "CandidateRepo")}
}

func (r *candidateRepo) GetByID(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID) (*types.Candidate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Candidate
	err := transaction.WithContext(ctx).
		Where("id = ?", candidateID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *candidateRepo) Create(ctx context.Context, tx *gorm.DB, candidate *types.Candidate) (*types.Candidate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(candidate).Error; err != nil {
		return nil, err
	}
	return candidate, nil
}

// SetTestID is the self-healing write: a single targeted update, no lock and
// no version check. Concurrent healers compute the same inferred value from
// the same process stages, so last write wins harmlessly.
func (r *candidateRepo) SetTestID(ctx context.Context, tx *gorm.DB, candidateID, testID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Candidate{}).
		Where("id = ?", candidateID).
		Update("test_id", testID).Error; err != nil {
		return err
	}
	return nil
}
