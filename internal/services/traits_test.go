package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vettia/assessment-backend/internal/repos"
	"github.com/vettia/assessment-backend/internal/types"
)

func TestWeightForPositionSingleTrait(t *testing.T) {
	if got := WeightForPosition(1, 1); got != 5.0 {
		t.Fatalf("weight(1) for n=1: want=5.0 got=%v", got)
	}
}

func TestWeightForPositionEndpoints(t *testing.T) {
	for n := 2; n <= 10; n++ {
		if got := WeightForPosition(1, n); got != 5.0 {
			t.Fatalf("weight(1) for n=%d: want=5.0 got=%v", n, got)
		}
		if got := WeightForPosition(n, n); got != 1.0 {
			t.Fatalf("weight(%d) for n=%d: want=1.0 got=%v", n, n, got)
		}
	}
}

func TestWeightForPositionMonotonicNonIncreasing(t *testing.T) {
	for n := 1; n <= 12; n++ {
		prev := WeightForPosition(1, n)
		for p := 2; p <= n; p++ {
			w := WeightForPosition(p, n)
			if w > prev {
				t.Fatalf("weights increase at p=%d n=%d: %v -> %v", p, n, prev, w)
			}
			prev = w
		}
	}
}

func TestNormalizeWeightsThreeTraits(t *testing.T) {
	traits := makeTraits("A", "B", "C")
	NormalizeWeights(traits)

	wantWeights := []float64{5.0, 3.0, 1.0}
	for i, tr := range traits {
		if tr.Weight != wantWeights[i] {
			t.Fatalf("trait %s weight: want=%v got=%v", tr.TraitName, wantWeights[i], tr.Weight)
		}
		if tr.Order != i+1 {
			t.Fatalf("trait %s order: want=%d got=%d", tr.TraitName, i+1, tr.Order)
		}
	}
}

func TestNormalizeWeightsIdempotent(t *testing.T) {
	traits := makeTraits("A", "B", "C", "D", "E")
	NormalizeWeights(traits)
	before := snapshotWeights(traits)
	NormalizeWeights(traits)
	after := snapshotWeights(traits)
	for name, w := range before {
		if after[name] != w {
			t.Fatalf("re-normalization changed %s: %v -> %v", name, w, after[name])
		}
	}
}

func TestNormalizeWeightsReorderPreservesContract(t *testing.T) {
	traits := makeTraits("A", "B", "C")
	NormalizeWeights(traits)

	// Reorder to [B, A, C] and re-normalize the whole group.
	traits[0], traits[1] = traits[1], traits[0]
	NormalizeWeights(traits)

	got := snapshotWeights(traits)
	if got["B"] != 5.0 || got["A"] != 3.0 || got["C"] != 1.0 {
		t.Fatalf("after reorder: want B=5 A=3 C=1 got=%v", got)
	}
}

func TestTraitConfigServiceMoveUpRenormalizes(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	groupRepo := repos.NewTraitGroupRepo(db, log)
	svc := NewTraitConfigService(log, groupRepo)
	ctx := context.Background()

	group := &types.TraitGroup{ID: uuid.New(), Name: "leadership"}
	if _, err := groupRepo.Create(ctx, nil, group); err != nil {
		t.Fatalf("create group: %v", err)
	}
	selected, err := svc.ReplaceTraits(ctx, group.ID, []string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("ReplaceTraits: %v", err)
	}
	if len(selected) != 3 {
		t.Fatalf("selected count: want=3 got=%d", len(selected))
	}

	var traitB uuid.UUID
	for _, tr := range selected {
		if tr.TraitName == "B" {
			traitB = tr.ID
		}
	}
	moved, err := svc.MoveTrait(ctx, group.ID, traitB, MoveUp)
	if err != nil {
		t.Fatalf("MoveTrait: %v", err)
	}

	byName := map[string]*types.PersonalityTrait{}
	for _, tr := range moved {
		byName[tr.TraitName] = tr
	}
	if byName["B"].Weight != 5.0 || byName["A"].Weight != 3.0 || byName["C"].Weight != 1.0 {
		t.Fatalf("after move up: want B=5 A=3 C=1 got B=%v A=%v C=%v",
			byName["B"].Weight, byName["A"].Weight, byName["C"].Weight)
	}

	// Persisted order must match the buffer that was synced.
	persisted, err := groupRepo.ListSelected(ctx, nil, group.ID)
	if err != nil {
		t.Fatalf("ListSelected: %v", err)
	}
	if persisted[0].TraitName != "B" || persisted[0].Order != 1 {
		t.Fatalf("persisted head: want B/1 got %s/%d", persisted[0].TraitName, persisted[0].Order)
	}
}

func TestTraitConfigServiceRemoveRenormalizesRemainder(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	groupRepo := repos.NewTraitGroupRepo(db, log)
	svc := NewTraitConfigService(log, groupRepo)
	ctx := context.Background()

	group := &types.TraitGroup{ID: uuid.New(), Name: "teamwork"}
	if _, err := groupRepo.Create(ctx, nil, group); err != nil {
		t.Fatalf("create group: %v", err)
	}
	selected, err := svc.ReplaceTraits(ctx, group.ID, []string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("ReplaceTraits: %v", err)
	}

	remaining, err := svc.RemoveTrait(ctx, group.ID, selected[1].ID)
	if err != nil {
		t.Fatalf("RemoveTrait: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("remaining count: want=2 got=%d", len(remaining))
	}
	if remaining[0].Weight != 5.0 || remaining[1].Weight != 1.0 {
		t.Fatalf("remaining weights: want [5 1] got [%v %v]", remaining[0].Weight, remaining[1].Weight)
	}
}

func TestTraitConfigServiceMovePastEndIsNoop(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	groupRepo := repos.NewTraitGroupRepo(db, log)
	svc := NewTraitConfigService(log, groupRepo)
	ctx := context.Background()

	group := &types.TraitGroup{ID: uuid.New(), Name: "grit"}
	if _, err := groupRepo.Create(ctx, nil, group); err != nil {
		t.Fatalf("create group: %v", err)
	}
	selected, err := svc.ReplaceTraits(ctx, group.ID, []string{"A", "B"})
	if err != nil {
		t.Fatalf("ReplaceTraits: %v", err)
	}

	got, err := svc.MoveTrait(ctx, group.ID, selected[0].ID, MoveUp)
	if err != nil {
		t.Fatalf("MoveTrait: %v", err)
	}
	if got[0].TraitName != "A" {
		t.Fatalf("head after no-op move: want=A got=%s", got[0].TraitName)
	}
}

func makeTraits(names ...string) []*types.PersonalityTrait {
	groupID := uuid.New()
	out := make([]*types.PersonalityTrait, 0, len(names))
	for _, n := range names {
		out = append(out, &types.PersonalityTrait{ID: uuid.New(), GroupID: groupID, TraitName: n})
	}
	return out
}

func snapshotWeights(traits []*types.PersonalityTrait) map[string]float64 {
	out := make(map[string]float64, len(traits))
	for _, tr := range traits {
		out[tr.TraitName] = tr.Weight
	}
	return out
}
