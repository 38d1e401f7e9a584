package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/types"
)

type TestStageRepo interface {
	ListByTestID(ctx context.Context, tx *gorm.DB, testID uuid.UUID) ([]*types.TestStage, error)
	FindFirstByOrder(ctx context.Context, tx *gorm.DB, order int) (*types.TestStage, error)
	Create(ctx context.Context, tx *gorm.DB, links []*types.TestStage) ([]*types.TestStage, error)
}

type testStageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTestStageRepo(db *gorm.DB, baseLog *logger.Logger) TestStageRepo {
	return &testStageRepo{db: db, log: baseLog.With("repo", "TestStageRepo")}
}

func (r *testStageRepo) ListByTestID(ctx context.Context, tx *gorm.DB, testID uuid.UUID) ([]*types.TestStage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TestStage
	if err := transaction.WithContext(ctx).
		Where("test_id = ?", testID).
		Order(`"order" ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FindFirstByOrder is the test-agnostic fallback lookup: any link carrying the
// given order, regardless of owning test.
func (r *testStageRepo) FindFirstByOrder(ctx context.Context, tx *gorm.DB, order int) (*types.TestStage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.TestStage
	err := transaction.WithContext(ctx).
		Where(`"order" = ?`, order).
		Order("created_at ASC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *testStageRepo) Create(ctx context.Context, tx *gorm.DB, links []*types.TestStage) ([]*types.TestStage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(links) == 0 {
		return []*types.TestStage{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}
