package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/repos"
	"github.com/vettia/assessment-backend/internal/types"
)

type traitPoolSpec struct {
	Groups []struct {
		Name      string   `yaml:"name"`
		Available []string `yaml:"available"`
		Selected  []string `yaml:"selected"`
	} `yaml:"groups"`
}

// SeedTraitPools loads trait-group definitions from a YAML file and creates
// any group that does not exist yet. Selected traits get normalized weights on
// the way in. Intended for bootstrap/dev environments, gated by
// TRAIT_POOL_FILE.
func SeedTraitPools(ctx context.Context, log *logger.Logger, path string, groupRepo repos.TraitGroupRepo) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read trait pool file: %w", err)
	}
	var spec traitPoolSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return fmt.Errorf("parse trait pool file: %w", err)
	}

	for _, g := range spec.Groups {
		existing, err := groupRepo.GetByName(ctx, nil, g.Name)
		if err != nil {
			return fmt.Errorf("look up trait group %q: %w", g.Name, err)
		}
		if existing != nil {
			log.Debug("Trait group already present, skipping", "group", g.Name)
			continue
		}

		available, err := json.Marshal(g.Available)
		if err != nil {
			return fmt.Errorf("encode available traits for %q: %w", g.Name, err)
		}
		group := &types.TraitGroup{
			ID:              uuid.New(),
			Name:            g.Name,
			AvailableTraits: datatypes.JSON(available),
		}
		if _, err := groupRepo.Create(ctx, nil, group); err != nil {
			return fmt.Errorf("create trait group %q: %w", g.Name, err)
		}

		selected := make([]*types.PersonalityTrait, 0, len(g.Selected))
		for _, name := range g.Selected {
			selected = append(selected, &types.PersonalityTrait{
				ID:        uuid.New(),
				GroupID:   group.ID,
				GroupName: group.Name,
				TraitName: name,
			})
		}
		NormalizeWeights(selected)
		if _, err := groupRepo.ReplaceSelected(ctx, nil, group.ID, selected); err != nil {
			return fmt.Errorf("seed selected traits for %q: %w", g.Name, err)
		}
		log.Info("Trait group seeded", "group", g.Name, "selected", len(selected))
	}
	return nil
}
