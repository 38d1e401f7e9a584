package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vettia/assessment-backend/internal/repos"
	"github.com/vettia/assessment-backend/internal/types"
)

const traitPoolFixture = `groups:
  - name: leadership
    available: [Vision, Decisiveness, Empathy]
    selected: [Vision, Decisiveness]
`

func TestSeedTraitPoolsIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	groupRepo := repos.NewTraitGroupRepo(db, log)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "traits.yaml")
	if err := os.WriteFile(path, []byte(traitPoolFixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if err := SeedTraitPools(ctx, log, path, groupRepo); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedTraitPools(ctx, log, path, groupRepo); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var count int64
	if err := db.Model(&types.TraitGroup{}).Where("name = ?", "leadership").Count(&count).Error; err != nil {
		t.Fatalf("count groups: %v", err)
	}
	if count != 1 {
		t.Fatalf("group count after re-seed: want=1 got=%d", count)
	}

	group, err := groupRepo.GetByName(ctx, nil, "leadership")
	if err != nil || group == nil {
		t.Fatalf("GetByName: group=%v err=%v", group, err)
	}
	selected, err := groupRepo.ListSelected(ctx, nil, group.ID)
	if err != nil {
		t.Fatalf("ListSelected: %v", err)
	}
	if len(selected) != 2 {
		t.Fatalf("selected count after re-seed: want=2 got=%d", len(selected))
	}
	if selected[0].Weight != 5.0 || selected[1].Weight != 1.0 {
		t.Fatalf("seeded weights: want [5 1] got [%v %v]", selected[0].Weight, selected[1].Weight)
	}
}
