package app

import (
	goredis "github.com/redis/go-redis/v9"

	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/services"
)

type Services struct {
	Resolver    services.StageResolver
	Healer      services.CandidateHealer
	Fetcher     services.QuestionFetcher
	Resolution  services.ResolutionService
	TraitConfig services.TraitConfigService
	Candidate   services.CandidateService
	AdminToken  services.AdminTokenService
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, cache *goredis.Client) Services {
	log.Info("Wiring services...")
	randomizer := services.NewOptionRandomizer()
	resolver := services.NewStageResolver(log, reposet.TestStage, reposet.Stage, cache)
	healer := services.NewCandidateHealer(log, reposet.Candidate, reposet.Process)
	fetcher := services.NewQuestionFetcher(log, reposet.Question, reposet.Category, randomizer)
	return Services{
		Resolver:    resolver,
		Healer:      healer,
		Fetcher:     fetcher,
		Resolution:  services.NewResolutionService(log, reposet.Candidate, resolver, healer, fetcher),
		TraitConfig: services.NewTraitConfigService(log, reposet.TraitGroup),
		Candidate:   services.NewCandidateService(log, reposet.Candidate),
		AdminToken:  services.NewAdminTokenService(log, cfg.JWTSecretKey, cfg.AdminTokenTTL),
	}
}
