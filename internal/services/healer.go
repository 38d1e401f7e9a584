package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/repos"
	"github.com/vettia/assessment-backend/internal/types"
)

const (
	traceHealSkipped     = "heal_skipped"
	traceHealScan        = "heal_scan"
	traceHealInferred    = "heal_inferred"
	traceHealPersistFail = "heal_persist_failed"
	traceHealNoSource    = "heal_no_source"
)

// CandidateHealer repairs a candidate missing a test association by scanning
// the candidate's enrollment process stages for the first one that carries a
// test id, then persisting that value onto the candidate.
type CandidateHealer interface {
	EnsureTestID(ctx context.Context, candidate *types.Candidate, trace *ResolutionTrace) *uuid.UUID
}

type candidateHealer struct {
	log           *logger.Logger
	candidateRepo repos.CandidateRepo
	processRepo   repos.ProcessRepo
}

func NewCandidateHealer(log *logger.Logger, candidateRepo repos.CandidateRepo, processRepo repos.ProcessRepo) CandidateHealer {
	return &candidateHealer{
		log:           log.With("service", "CandidateHealer"),
		candidateRepo: candidateRepo,
		processRepo:   processRepo,
	}
}

// EnsureTestID is idempotent: once a candidate carries a test id the scan is
// skipped entirely. A failed persistence write is recorded in the trace and
// the inferred value is still used for the current resolution; the repair is
// simply not durable this time.
func (s *candidateHealer) EnsureTestID(ctx context.Context, candidate *types.Candidate, trace *ResolutionTrace) *uuid.UUID {
	if candidate == nil {
		return nil
	}
	if candidate.TestID != nil {
		trace.Append(traceHealSkipped, map[string]any{"reason": "test_id_present"})
		return candidate.TestID
	}
	if candidate.ProcessID == nil {
		trace.Append(traceHealNoSource, map[string]any{"reason": "no_process"})
		return nil
	}

	stages, err := s.processRepo.ListStagesByProcessID(ctx, nil, *candidate.ProcessID)
	if err != nil {
		s.log.Warn("Process stage scan failed", "candidate_id", candidate.ID, "error", err)
		trace.Append(traceUpstreamFetchFail, map[string]any{"source": "process_stages", "error": err.Error()})
		return nil
	}
	trace.Append(traceHealScan, map[string]any{"process_id": candidate.ProcessID.String(), "stage_count": len(stages)})

	var inferred *uuid.UUID
	for _, stage := range stages {
		if stage.TestID != nil {
			inferred = stage.TestID
			break
		}
	}
	if inferred == nil {
		trace.Append(traceHealNoSource, map[string]any{"reason": "no_stage_with_test"})
		return nil
	}

	trace.Append(traceHealInferred, map[string]any{"test_id": inferred.String()})
	if err := s.candidateRepo.SetTestID(ctx, nil, candidate.ID, *inferred); err != nil {
		s.log.Warn("Healing write failed, continuing with in-memory value", "candidate_id", candidate.ID, "error", err)
		trace.Append(traceHealPersistFail, map[string]any{"error": err.Error()})
	} else {
		candidate.TestID = inferred
	}
	return inferred
}
