package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vettia/assessment-backend/internal/types"
)

// OptionRandomizer permutes each opinion question's options independently with
// an unbiased Fisher-Yates shuffle. Option identity and category linkage pass
// through untouched; only relative position changes. There is no shared seed
// across questions or requests, so repeated fetches may present different
// orders.
type OptionRandomizer struct {
	mu   sync.Mutex
	intn func(n int) int
}

func NewOptionRandomizer() *OptionRandomizer {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &OptionRandomizer{intn: src.Intn}
}

// NewOptionRandomizerWithSource exists for deterministic tests.
func NewOptionRandomizerWithSource(intn func(n int) int) *OptionRandomizer {
	return &OptionRandomizer{intn: intn}
}

func (r *OptionRandomizer) ShuffleQuestions(questions []*types.Question) {
	for _, q := range questions {
		r.shuffleOptions(q.Options)
	}
}

func (r *OptionRandomizer) shuffleOptions(options []types.Option) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(options) - 1; i > 0; i-- {
		j := r.intn(i + 1)
		options[i], options[j] = options[j], options[i]
	}
}
