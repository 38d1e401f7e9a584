package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/vettia/assessment-backend/internal/platform/apierr"
	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/repos"
	"github.com/vettia/assessment-backend/internal/types"
)

const (
	traceStageListLoaded    = "stage_list_loaded"
	traceOrdinalMatch       = "ordinal_match"
	traceOrdinalLegacyRetry = "ordinal_legacy_retry"
	traceFirstLinkFallback  = "first_link_fallback"
	traceStableIDMatch      = "stable_id_match"
	traceGlobalOrdinal      = "global_ordinal_search"
	traceGlobalStableID     = "global_stable_id_lookup"
	traceUpstreamFetchFail  = "upstream_fetch_failed"
	traceStageNotFound      = "stage_not_found"
)

// There is no invalidation hook for the stage-link cache: an admin reorder or
// detach elsewhere can serve the old link order until the TTL expires.
const stageLinkCacheTTL = 5 * time.Minute

// ResolvedStage carries the stage to serve plus, when resolution went through
// a test's link list, the matched link.
type ResolvedStage struct {
	Stage *types.Stage
	Link  *types.TestStage
}

type StageResolver interface {
	Resolve(ctx context.Context, ref StageRef, testID *uuid.UUID, trace *ResolutionTrace) (*ResolvedStage, error)
}

type stageResolver struct {
	log           *logger.Logger
	testStageRepo repos.TestStageRepo
	stageRepo     repos.StageRepo
	cache         *goredis.Client
}

func NewStageResolver(log *logger.Logger, testStageRepo repos.TestStageRepo, stageRepo repos.StageRepo, cache *goredis.Client) StageResolver {
	return &stageResolver{
		log:           log.With("service", "StageResolver"),
		testStageRepo: testStageRepo,
		stageRepo:     stageRepo,
		cache:         cache,
	}
}

// Resolve walks the strategy cascade in order, stopping at the first hit:
// test-scoped lookup, then the test-agnostic global search, then not-found.
// Store failures along the way are recorded in the trace and treated as "no
// data from this source" rather than aborting.
func (s *stageResolver) Resolve(ctx context.Context, ref StageRef, testID *uuid.UUID, trace *ResolutionTrace) (*ResolvedStage, error) {
	if testID != nil {
		if resolved := s.resolveWithinTest(ctx, ref, *testID, trace); resolved != nil {
			return resolved, nil
		}
	}

	if resolved := s.resolveGlobal(ctx, ref, trace); resolved != nil {
		return resolved, nil
	}

	trace.Append(traceStageNotFound, map[string]any{
		"kind":      string(ref.Kind),
		"ordinal":   ref.Ordinal,
		"stable_id": ref.StableID,
	})
	return nil, apierr.NewNotFound(fmt.Errorf("no stage resolvable for reference"))
}

func (s *stageResolver) resolveWithinTest(ctx context.Context, ref StageRef, testID uuid.UUID, trace *ResolutionTrace) *ResolvedStage {
	links, err := s.loadStageLinks(ctx, testID)
	if err != nil {
		s.log.Warn("Stage link list load failed, continuing to global search", "test_id", testID, "error", err)
		trace.Append(traceUpstreamFetchFail, map[string]any{"source": "test_stage_list", "test_id": testID.String(), "error": err.Error()})
		return nil
	}
	trace.Append(traceStageListLoaded, map[string]any{"test_id": testID.String(), "count": len(links)})

	var link *types.TestStage
	switch ref.Kind {
	case StageRefOrdinal:
		link = s.matchOrdinal(ref.Ordinal, links, trace)
	case StageRefStableID:
		link = s.matchStableID(ref.StableID, links, trace)
	}
	if link == nil {
		return nil
	}
	return s.hydrate(ctx, link, trace)
}

// matchOrdinal implements the dual ordinal convention: external ordinals are
// 1-based, internal order is 0-based, and a miss on target order 1 retries
// order 0 (a legacy numbering kept for compatibility). Any
// remaining miss, including out-of-range targets, falls back to the first link
// of the sorted list: serving an available stage beats serving nothing.
func (s *stageResolver) matchOrdinal(ordinal int, links []*types.TestStage, trace *ResolutionTrace) *types.TestStage {
	if len(links) == 0 {
		return nil
	}

	target := ordinal - 1
	if target >= 0 && target < len(links) {
		if link := findByOrder(links, target); link != nil {
			trace.Append(traceOrdinalMatch, map[string]any{"ordinal": ordinal, "order": target})
			return link
		}
		if target == 1 {
			if link := findByOrder(links, 0); link != nil {
				trace.Append(traceOrdinalLegacyRetry, map[string]any{"ordinal": ordinal, "order": 0})
				return link
			}
		}
	}

	first := links[0]
	trace.Append(traceFirstLinkFallback, map[string]any{"ordinal": ordinal, "order": first.Order})
	return first
}

func (s *stageResolver) matchStableID(stableID string, links []*types.TestStage, trace *ResolutionTrace) *types.TestStage {
	stageID, err := uuid.Parse(stableID)
	if err != nil {
		return nil
	}
	for _, link := range links {
		if link.StageID == stageID {
			trace.Append(traceStableIDMatch, map[string]any{"stage_id": stableID})
			return link
		}
	}
	return nil
}

func (s *stageResolver) resolveGlobal(ctx context.Context, ref StageRef, trace *ResolutionTrace) *ResolvedStage {
	switch ref.Kind {
	case StageRefOrdinal:
		link, err := s.testStageRepo.FindFirstByOrder(ctx, nil, ref.Ordinal-1)
		if err != nil {
			trace.Append(traceUpstreamFetchFail, map[string]any{"source": "global_order_search", "error": err.Error()})
			return nil
		}
		trace.Append(traceGlobalOrdinal, map[string]any{"order": ref.Ordinal - 1, "found": link != nil})
		if link == nil {
			return nil
		}
		return s.hydrate(ctx, link, trace)
	case StageRefStableID:
		stageID, err := uuid.Parse(ref.StableID)
		if err != nil {
			return nil
		}
		stage, err := s.stageRepo.GetByID(ctx, nil, stageID)
		if err != nil {
			trace.Append(traceUpstreamFetchFail, map[string]any{"source": "global_stage_lookup", "error": err.Error()})
			return nil
		}
		trace.Append(traceGlobalStableID, map[string]any{"stage_id": ref.StableID, "found": stage != nil})
		if stage == nil {
			return nil
		}
		return &ResolvedStage{Stage: stage}
	}
	return nil
}

func (s *stageResolver) hydrate(ctx context.Context, link *types.TestStage, trace *ResolutionTrace) *ResolvedStage {
	stage, err := s.stageRepo.GetByID(ctx, nil, link.StageID)
	if err != nil {
		trace.Append(traceUpstreamFetchFail, map[string]any{"source": "stage_lookup", "stage_id": link.StageID.String(), "error": err.Error()})
		return nil
	}
	if stage == nil {
		trace.Append(traceUpstreamFetchFail, map[string]any{"source": "stage_lookup", "stage_id": link.StageID.String(), "error": "stage row missing"})
		return nil
	}
	return &ResolvedStage{Stage: stage, Link: link}
}

func (s *stageResolver) loadStageLinks(ctx context.Context, testID uuid.UUID) ([]*types.TestStage, error) {
	key := "stagelinks:" + testID.String()
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached []*types.TestStage
			if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
				return cached, nil
			}
		}
	}

	links, err := s.testStageRepo.ListByTestID(ctx, nil, testID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(links) > 0 {
		if raw, err := json.Marshal(links); err == nil {
			if err := s.cache.Set(ctx, key, raw, stageLinkCacheTTL).Err(); err != nil {
				s.log.Debug("Stage link cache write failed", "test_id", testID, "error", err)
			}
		}
	}
	return links, nil
}

func findByOrder(links []*types.TestStage, order int) *types.TestStage {
	for _, link := range links {
		if link.Order == order {
			return link
		}
	}
	return nil
}
