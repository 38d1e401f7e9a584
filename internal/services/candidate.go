package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vettia/assessment-backend/internal/platform/apierr"
	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/repos"
	"github.com/vettia/assessment-backend/internal/types"
)

type CreateCandidateInput struct {
	Email      string
	Name       string
	InviteCode string
	TestID     *uuid.UUID
	ProcessID  *uuid.UUID
}

type CandidateService interface {
	Create(ctx context.Context, input CreateCandidateInput) (*types.Candidate, error)
}

type candidateService struct {
	log           *logger.Logger
	candidateRepo repos.CandidateRepo
}

func NewCandidateService(log *logger.Logger, candidateRepo repos.CandidateRepo) CandidateService {
	return &candidateService{
		log:           log.With("service", "CandidateService"),
		candidateRepo: candidateRepo,
	}
}

// Invite codes are stored hashed only; validation of codes at session start is
// an external collaborator's job.
func (s *candidateService) Create(ctx context.Context, input CreateCandidateInput) (*types.Candidate, error) {
	code := strings.TrimSpace(input.InviteCode)
	if code == "" {
		return nil, apierr.NewValidation(fmt.Errorf("invite code is required"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash invite code: %w", err)
	}

	candidate := &types.Candidate{
		ID:             uuid.New(),
		Email:          strings.TrimSpace(input.Email),
		Name:           strings.TrimSpace(input.Name),
		TestID:         input.TestID,
		ProcessID:      input.ProcessID,
		InviteCodeHash: string(hash),
	}
	created, err := s.candidateRepo.Create(ctx, nil, candidate)
	if err != nil {
		return nil, apierr.NewPersistence(fmt.Errorf("create candidate: %w", err))
	}
	s.log.Info("Candidate created", "candidate_id", created.ID, "has_test", created.TestID != nil)
	return created, nil
}
