package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vettia/assessment-backend/internal/repos"
	"github.com/vettia/assessment-backend/internal/types"
)

// countingProcessRepo wraps the real repo to count inference scans.
type countingProcessRepo struct {
	inner     repos.ProcessRepo
	scanCalls int
}

func (r *countingProcessRepo) ListStagesByProcessID(ctx context.Context, tx *gorm.DB, processID uuid.UUID) ([]*types.ProcessStage, error) {
	r.scanCalls++
	return r.inner.ListStagesByProcessID(ctx, tx, processID)
}

func (r *countingProcessRepo) Create(ctx context.Context, tx *gorm.DB, process *types.Process) (*types.Process, error) {
	return r.inner.Create(ctx, tx, process)
}

func seedProcessWithTest(t *testing.T, db *gorm.DB, testID uuid.UUID) uuid.UUID {
	t.Helper()
	process := &types.Process{ID: uuid.New(), Name: "hiring"}
	if err := db.Create(process).Error; err != nil {
		t.Fatalf("create process: %v", err)
	}
	stages := []*types.ProcessStage{
		{ID: uuid.New(), ProcessID: process.ID, Position: 0, Name: "screening"},
		{ID: uuid.New(), ProcessID: process.ID, Position: 1, Name: "assessment", TestID: &testID},
	}
	for _, st := range stages {
		if err := db.Create(st).Error; err != nil {
			t.Fatalf("create process stage: %v", err)
		}
	}
	return process.ID
}

func TestHealerInfersAndPersistsTestID(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	candidateRepo := repos.NewCandidateRepo(db, log)
	procRepo := &countingProcessRepo{inner: repos.NewProcessRepo(db, log)}
	healer := NewCandidateHealer(log, candidateRepo, procRepo)
	ctx := context.Background()

	testID, _ := seedTestWithStages(t, db, types.QuestionTypeMultipleChoice, 0, 1)
	processID := seedProcessWithTest(t, db, testID)

	candidate := &types.Candidate{ID: uuid.New(), ProcessID: &processID}
	if err := db.Create(candidate).Error; err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	trace := NewResolutionTrace()
	inferred := healer.EnsureTestID(ctx, candidate, trace)
	if inferred == nil || *inferred != testID {
		t.Fatalf("inferred test id: want=%s got=%v", testID, inferred)
	}
	if procRepo.scanCalls != 1 {
		t.Fatalf("scan calls: want=1 got=%d", procRepo.scanCalls)
	}

	// The repair must be durable.
	reloaded, err := candidateRepo.GetByID(ctx, nil, candidate.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.TestID == nil || *reloaded.TestID != testID {
		t.Fatalf("persisted test id: want=%s got=%v", testID, reloaded.TestID)
	}

	// Second pass finds the association present and skips the scan.
	trace2 := NewResolutionTrace()
	again := healer.EnsureTestID(ctx, reloaded, trace2)
	if again == nil || *again != testID {
		t.Fatalf("second pass: want=%s got=%v", testID, again)
	}
	if procRepo.scanCalls != 1 {
		t.Fatalf("second pass re-entered the scan: calls=%d", procRepo.scanCalls)
	}
	if !traceHasAction(trace2, traceHealSkipped) {
		t.Fatalf("trace missing %s", traceHealSkipped)
	}
}

// brokenWriteCandidateRepo reads normally but refuses the healing write.
type brokenWriteCandidateRepo struct {
	inner repos.CandidateRepo
}

func (r *brokenWriteCandidateRepo) GetByID(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID) (*types.Candidate, error) {
	return r.inner.GetByID(ctx, tx, candidateID)
}

func (r *brokenWriteCandidateRepo) Create(ctx context.Context, tx *gorm.DB, candidate *types.Candidate) (*types.Candidate, error) {
	return r.inner.Create(ctx, tx, candidate)
}

func (r *brokenWriteCandidateRepo) SetTestID(ctx context.Context, tx *gorm.DB, candidateID, testID uuid.UUID) error {
	return errors.New("write refused")
}

func TestHealerContinuesWhenPersistenceFails(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	realRepo := repos.NewCandidateRepo(db, log)
	candidateRepo := &brokenWriteCandidateRepo{inner: realRepo}
	procRepo := repos.NewProcessRepo(db, log)
	healer := NewCandidateHealer(log, candidateRepo, procRepo)
	ctx := context.Background()

	testID, _ := seedTestWithStages(t, db, types.QuestionTypeMultipleChoice, 0)
	processID := seedProcessWithTest(t, db, testID)

	candidate := &types.Candidate{ID: uuid.New(), ProcessID: &processID}
	if err := db.Create(candidate).Error; err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	trace := NewResolutionTrace()
	inferred := healer.EnsureTestID(ctx, candidate, trace)
	if inferred == nil || *inferred != testID {
		t.Fatalf("inferred despite failed write: want=%s got=%v", testID, inferred)
	}
	if !traceHasAction(trace, traceHealPersistFail) {
		t.Fatalf("trace missing %s: %+v", traceHealPersistFail, trace.Entries())
	}

	// The repair was not durable: the stored row still has no association.
	reloaded, err := realRepo.GetByID(ctx, nil, candidate.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.TestID != nil {
		t.Fatalf("failed write must not persist a test id, got %v", reloaded.TestID)
	}
}

func TestHealerNoStageCarriesTestID(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	candidateRepo := repos.NewCandidateRepo(db, log)
	procRepo := repos.NewProcessRepo(db, log)
	healer := NewCandidateHealer(log, candidateRepo, procRepo)
	ctx := context.Background()

	process := &types.Process{ID: uuid.New(), Name: "empty"}
	if err := db.Create(process).Error; err != nil {
		t.Fatalf("create process: %v", err)
	}
	stage := &types.ProcessStage{ID: uuid.New(), ProcessID: process.ID, Position: 0}
	if err := db.Create(stage).Error; err != nil {
		t.Fatalf("create process stage: %v", err)
	}
	candidate := &types.Candidate{ID: uuid.New(), ProcessID: &process.ID}
	if err := db.Create(candidate).Error; err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	trace := NewResolutionTrace()
	if inferred := healer.EnsureTestID(ctx, candidate, trace); inferred != nil {
		t.Fatalf("want no inference, got %v", inferred)
	}
	if !traceHasAction(trace, traceHealNoSource) {
		t.Fatalf("trace missing %s", traceHealNoSource)
	}
}
