package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/types"
)

type TraitGroupRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.TraitGroup, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.TraitGroup, error)
	Create(ctx context.Context, tx *gorm.DB, group *types.TraitGroup) (*types.TraitGroup, error)
	ListSelected(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*types.PersonalityTrait, error)
	ReplaceSelected(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, traits []*types.PersonalityTrait) ([]*types.PersonalityTrait, error)
}

type traitGroupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTraitGroupRepo(db *gorm.DB, baseLog *logger.Logger) TraitGroupRepo {
	return &traitGroupRepo{db: db, log: baseLog.With("repo", "TraitGroupRepo")}
}

func (r *traitGroupRepo) GetByID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.TraitGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.TraitGroup
	err := transaction.WithContext(ctx).
		Where("id = ?", groupID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *traitGroupRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.TraitGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.TraitGroup
	err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *traitGroupRepo) Create(ctx context.Context, tx *gorm.DB, group *types.TraitGroup) (*types.TraitGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (r *traitGroupRepo) ListSelected(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*types.PersonalityTrait, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PersonalityTrait
	if err := transaction.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order(`"order" ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ReplaceSelected flushes a synchronized edit buffer: the whole selection for
// the group is swapped in one transaction.
func (r *traitGroupRepo) ReplaceSelected(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, traits []*types.PersonalityTrait) ([]*types.PersonalityTrait, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	err := transaction.WithContext(ctx).Transaction(func(innerTx *gorm.DB) error {
		if err := innerTx.
			Unscoped().
			Where("group_id = ?", groupID).
			Delete(&types.PersonalityTrait{}).Error; err != nil {
			return err
		}
		if len(traits) == 0 {
			return nil
		}
		return innerTx.Create(&traits).Error
	})
	if err != nil {
		return nil, err
	}
	return traits, nil
}
