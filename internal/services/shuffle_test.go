package services

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/vettia/assessment-backend/internal/types"
)

func TestShuffleOutputIsPermutation(t *testing.T) {
	src := rand.New(rand.NewSource(7))
	randomizer := NewOptionRandomizerWithSource(src.Intn)

	for _, size := range []int{0, 1, 2, 5, 12} {
		q := questionWithOptions(size)
		before := optionIDSet(q.Options)
		randomizer.ShuffleQuestions([]*types.Question{q})
		after := optionIDSet(q.Options)

		if len(before) != len(after) {
			t.Fatalf("size %d: option count changed %d -> %d", size, len(before), len(after))
		}
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("size %d: option multiset changed", size)
			}
		}
	}
}

func TestShufflePreservesCategoryLinkage(t *testing.T) {
	src := rand.New(rand.NewSource(11))
	randomizer := NewOptionRandomizerWithSource(src.Intn)

	q := questionWithOptions(6)
	catByOption := map[uuid.UUID]string{}
	for i := range q.Options {
		catID := uuid.New()
		q.Options[i].CategoryID = &catID
		q.Options[i].CategoryName = catID.String()
		catByOption[q.Options[i].ID] = q.Options[i].CategoryName
	}

	randomizer.ShuffleQuestions([]*types.Question{q})

	for _, opt := range q.Options {
		if catByOption[opt.ID] != opt.CategoryName {
			t.Fatalf("category linkage broken for option %s", opt.ID)
		}
	}
}

func TestShuffleReordersWithBiasedSource(t *testing.T) {
	// intn always returning 0 rotates any list of length >= 2.
	randomizer := NewOptionRandomizerWithSource(func(n int) int { return 0 })

	q := questionWithOptions(4)
	original := make([]uuid.UUID, len(q.Options))
	for i, opt := range q.Options {
		original[i] = opt.ID
	}

	randomizer.ShuffleQuestions([]*types.Question{q})

	same := true
	for i, opt := range q.Options {
		if opt.ID != original[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("shuffle left a 4-option list untouched under a rotating source")
	}
}

func questionWithOptions(n int) *types.Question {
	q := &types.Question{ID: uuid.New(), Text: "q"}
	for i := 0; i < n; i++ {
		q.Options = append(q.Options, types.Option{ID: uuid.New(), Position: i})
	}
	return q
}

func optionIDSet(options []types.Option) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.ID.String())
	}
	sort.Strings(out)
	return out
}
