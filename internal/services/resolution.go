package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vettia/assessment-backend/internal/platform/apierr"
	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/repos"
	"github.com/vettia/assessment-backend/internal/types"
)

const (
	traceRequestDecoded = "request_decoded"
	traceCandidateLoad  = "candidate_loaded"
	traceHealRetry      = "heal_retry"
)

type ResolutionRequest struct {
	StageRef    string
	CandidateID *uuid.UUID
	TestID      *uuid.UUID
}

type ResolutionResult struct {
	StageTitle       string            `json:"stage_title"`
	StageDescription string            `json:"stage_description"`
	Questions        []*types.Question `json:"questions"`
	TestID           *uuid.UUID        `json:"test_id"`
	Trace            []TraceEntry      `json:"resolution_trace"`
}

// ResolutionService drives one stateless resolution pass: decode the stage
// reference, load and (if needed) heal the candidate's test association,
// resolve the stage through the fallback cascade, fetch and conditionally
// shuffle the question set.
type ResolutionService interface {
	Resolve(ctx context.Context, req ResolutionRequest) (*ResolutionResult, error)
}

type resolutionService struct {
	log           *logger.Logger
	candidateRepo repos.CandidateRepo
	resolver      StageResolver
	healer        CandidateHealer
	fetcher       QuestionFetcher
}

func NewResolutionService(log *logger.Logger, candidateRepo repos.CandidateRepo, resolver StageResolver, healer CandidateHealer, fetcher QuestionFetcher) ResolutionService {
	return &resolutionService{
		log:           log.With("service", "ResolutionService"),
		candidateRepo: candidateRepo,
		resolver:      resolver,
		healer:        healer,
		fetcher:       fetcher,
	}
}

func (s *resolutionService) Resolve(ctx context.Context, req ResolutionRequest) (*ResolutionResult, error) {
	stageRefRaw := strings.TrimSpace(req.StageRef)
	if stageRefRaw == "" {
		return nil, apierr.NewValidation(fmt.Errorf("stage_ref is required"))
	}

	trace := NewResolutionTrace()
	ref := ParseStageRef(stageRefRaw)
	trace.Append(traceRequestDecoded, map[string]any{
		"stage_ref": stageRefRaw,
		"kind":      string(ref.Kind),
	})

	testID := req.TestID
	var healedID *uuid.UUID
	associationWasMissing := false

	if req.CandidateID != nil {
		candidate, err := s.candidateRepo.GetByID(ctx, nil, *req.CandidateID)
		if err != nil {
			s.log.Warn("Candidate load failed, resolving without candidate context", "candidate_id", req.CandidateID, "error", err)
			trace.Append(traceUpstreamFetchFail, map[string]any{"source": "candidate", "error": err.Error()})
		} else if candidate == nil {
			trace.Append(traceCandidateLoad, map[string]any{"found": false})
		} else {
			trace.Append(traceCandidateLoad, map[string]any{"found": true, "has_test": candidate.TestID != nil})
			if candidate.TestID == nil {
				associationWasMissing = true
			}
			if inferred := s.healer.EnsureTestID(ctx, candidate, trace); inferred != nil {
				testID = inferred
				if associationWasMissing {
					healedID = inferred
				}
			}
		}
	}

	resolved, err := s.resolver.Resolve(ctx, ref, testID, trace)
	if err != nil {
		return &ResolutionResult{Trace: trace.Entries(), TestID: testID}, err
	}

	questions, err := s.fetcher.FetchForStage(ctx, resolved.Stage, trace)
	if err != nil {
		return &ResolutionResult{Trace: trace.Entries(), TestID: testID}, apierr.NewUpstreamFetch(fmt.Errorf("fetch questions: %w", err))
	}

	// One retry after a lazy repair: if the candidate had no association when
	// the request arrived and healing produced one, re-run resolution with the
	// healed test id before accepting an empty question set.
	if len(questions) == 0 && associationWasMissing && healedID != nil {
		trace.Append(traceHealRetry, map[string]any{"test_id": healedID.String()})
		if retryResolved, retryErr := s.resolver.Resolve(ctx, ref, healedID, trace); retryErr == nil {
			resolved = retryResolved
			if retryQuestions, fetchErr := s.fetcher.FetchForStage(ctx, resolved.Stage, trace); fetchErr == nil {
				questions = retryQuestions
			}
		}
	}

	if questions == nil {
		questions = []*types.Question{}
	}

	result := &ResolutionResult{
		StageTitle:       resolved.Stage.Title,
		StageDescription: resolved.Stage.Description,
		Questions:        questions,
		TestID:           testID,
		Trace:            trace.Entries(),
	}
	s.log.Debug("Resolution succeeded",
		"stage_id", resolved.Stage.ID,
		"question_count", len(questions),
		"trace_len", len(result.Trace),
	)
	return result, nil
}
