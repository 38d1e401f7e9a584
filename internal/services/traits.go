package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/vettia/assessment-backend/internal/platform/apierr"
	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/repos"
	"github.com/vettia/assessment-backend/internal/types"
)

const (
	traitWeightMax = 5.0
	traitWeightMin = 1.0
)

// WeightForPosition computes the priority weight for 1-based position p in a
// group of n selected traits. Position 1 always gets the maximum; for n > 1
// the weights fall linearly to the minimum at position n.
func WeightForPosition(p, n int) float64 {
	if n <= 1 {
		return traitWeightMax
	}
	w := traitWeightMax - float64(p-1)*(traitWeightMax-traitWeightMin)/float64(n-1)
	w = math.Round(w*100) / 100
	if w > traitWeightMax {
		w = traitWeightMax
	}
	if w < traitWeightMin {
		w = traitWeightMin
	}
	return w
}

// NormalizeWeights re-derives order and weight for the whole group from slice
// position. It must run over the entire selection after any structural
// mutation, and is idempotent on an unchanged list.
func NormalizeWeights(traits []*types.PersonalityTrait) {
	n := len(traits)
	for i, tr := range traits {
		tr.Order = i + 1
		tr.Weight = WeightForPosition(i+1, n)
	}
}

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

type TraitConfigService interface {
	GetGroup(ctx context.Context, groupID uuid.UUID) (*types.TraitGroup, []*types.PersonalityTrait, error)
	ReplaceTraits(ctx context.Context, groupID uuid.UUID, traitNames []string) ([]*types.PersonalityTrait, error)
	AppendTrait(ctx context.Context, groupID uuid.UUID, traitName string) ([]*types.PersonalityTrait, error)
	RemoveTrait(ctx context.Context, groupID, traitID uuid.UUID) ([]*types.PersonalityTrait, error)
	MoveTrait(ctx context.Context, groupID, traitID uuid.UUID, direction MoveDirection) ([]*types.PersonalityTrait, error)
}

type traitConfigService struct {
	log       *logger.Logger
	groupRepo repos.TraitGroupRepo
}

func NewTraitConfigService(log *logger.Logger, groupRepo repos.TraitGroupRepo) TraitConfigService {
	return &traitConfigService{
		log:       log.With("service", "TraitConfigService"),
		groupRepo: groupRepo,
	}
}

// traitEditSession buffers one group's selection between load and the
// explicit sync flush, tracking both lifecycles with the state machines.
type traitEditSession struct {
	group  *types.TraitGroup
	traits []*types.PersonalityTrait
	fetch  FetchState
	buffer BufferState
}

func (s *traitConfigService) loadSession(ctx context.Context, groupID uuid.UUID) (*traitEditSession, error) {
	session := &traitEditSession{fetch: FetchIdle, buffer: BufferClean}

	var err error
	if session.fetch, err = session.fetch.Transition(FetchLoading); err != nil {
		return nil, err
	}
	group, err := s.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		session.fetch, _ = session.fetch.Transition(FetchFailed)
		return nil, apierr.NewUpstreamFetch(fmt.Errorf("load trait group: %w", err))
	}
	if group == nil {
		session.fetch, _ = session.fetch.Transition(FetchFailed)
		return nil, apierr.NewNotFound(fmt.Errorf("trait group %s not found", groupID))
	}
	traits, err := s.groupRepo.ListSelected(ctx, nil, groupID)
	if err != nil {
		session.fetch, _ = session.fetch.Transition(FetchFailed)
		return nil, apierr.NewUpstreamFetch(fmt.Errorf("load selected traits: %w", err))
	}
	if session.fetch, err = session.fetch.Transition(FetchLoaded); err != nil {
		return nil, err
	}

	session.group = group
	session.traits = traits
	return session, nil
}

func (s *traitConfigService) syncSession(ctx context.Context, session *traitEditSession) ([]*types.PersonalityTrait, error) {
	var err error
	if session.buffer, err = session.buffer.Transition(BufferSyncing); err != nil {
		return nil, err
	}
	NormalizeWeights(session.traits)
	persisted, err := s.groupRepo.ReplaceSelected(ctx, nil, session.group.ID, session.traits)
	if err != nil {
		session.buffer, _ = session.buffer.Transition(BufferDirty)
		return nil, apierr.NewPersistence(fmt.Errorf("sync trait selection: %w", err))
	}
	if session.buffer, err = session.buffer.Transition(BufferClean); err != nil {
		return nil, err
	}
	return persisted, nil
}

func (s *traitConfigService) GetGroup(ctx context.Context, groupID uuid.UUID) (*types.TraitGroup, []*types.PersonalityTrait, error) {
	session, err := s.loadSession(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return session.group, session.traits, nil
}

func (s *traitConfigService) ReplaceTraits(ctx context.Context, groupID uuid.UUID, traitNames []string) ([]*types.PersonalityTrait, error) {
	session, err := s.loadSession(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if session.buffer, err = session.buffer.Transition(BufferDirty); err != nil {
		return nil, err
	}
	replacement := make([]*types.PersonalityTrait, 0, len(traitNames))
	for _, name := range traitNames {
		replacement = append(replacement, &types.PersonalityTrait{
			ID:        uuid.New(),
			GroupID:   session.group.ID,
			GroupName: session.group.Name,
			TraitName: name,
		})
	}
	session.traits = replacement
	return s.syncSession(ctx, session)
}

func (s *traitConfigService) AppendTrait(ctx context.Context, groupID uuid.UUID, traitName string) ([]*types.PersonalityTrait, error) {
	session, err := s.loadSession(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if session.buffer, err = session.buffer.Transition(BufferDirty); err != nil {
		return nil, err
	}
	session.traits = append(session.traits, &types.PersonalityTrait{
		ID:        uuid.New(),
		GroupID:   session.group.ID,
		GroupName: session.group.Name,
		TraitName: traitName,
	})
	return s.syncSession(ctx, session)
}

func (s *traitConfigService) RemoveTrait(ctx context.Context, groupID, traitID uuid.UUID) ([]*types.PersonalityTrait, error) {
	session, err := s.loadSession(ctx, groupID)
	if err != nil {
		return nil, err
	}
	idx := indexOfTrait(session.traits, traitID)
	if idx < 0 {
		return nil, apierr.NewNotFound(fmt.Errorf("trait %s not in group %s", traitID, groupID))
	}
	if session.buffer, err = session.buffer.Transition(BufferDirty); err != nil {
		return nil, err
	}
	session.traits = append(session.traits[:idx], session.traits[idx+1:]...)
	return s.syncSession(ctx, session)
}

func (s *traitConfigService) MoveTrait(ctx context.Context, groupID, traitID uuid.UUID, direction MoveDirection) ([]*types.PersonalityTrait, error) {
	session, err := s.loadSession(ctx, groupID)
	if err != nil {
		return nil, err
	}
	idx := indexOfTrait(session.traits, traitID)
	if idx < 0 {
		return nil, apierr.NewNotFound(fmt.Errorf("trait %s not in group %s", traitID, groupID))
	}

	swap := idx
	switch direction {
	case MoveUp:
		swap = idx - 1
	case MoveDown:
		swap = idx + 1
	default:
		return nil, apierr.NewValidation(fmt.Errorf("unknown move direction %q", direction))
	}
	if swap < 0 || swap >= len(session.traits) {
		// Moving past either end is a no-op, not an error.
		return session.traits, nil
	}

	if session.buffer, err = session.buffer.Transition(BufferDirty); err != nil {
		return nil, err
	}
	session.traits[idx], session.traits[swap] = session.traits[swap], session.traits[idx]
	return s.syncSession(ctx, session)
}

func indexOfTrait(traits []*types.PersonalityTrait, traitID uuid.UUID) int {
	for i, tr := range traits {
		if tr.ID == traitID {
			return i
		}
	}
	return -1
}
