package app

import (
	"gorm.io/gorm"

	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/repos"
)

type Repos struct {
	TestStage  repos.TestStageRepo
	Stage      repos.StageRepo
	Question   repos.QuestionRepo
	Category   repos.CategoryRepo
	Candidate  repos.CandidateRepo
	Process    repos.ProcessRepo
	TraitGroup repos.TraitGroupRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		TestStage:  repos.NewTestStageRepo(db, log),
		Stage:      repos.NewStageRepo(db, log),
		Question:   repos.NewQuestionRepo(db, log),
		Category:   repos.NewCategoryRepo(db, log),
		Candidate:  repos.NewCandidateRepo(db, log),
		Process:    repos.NewProcessRepo(db, log),
		TraitGroup: repos.NewTraitGroupRepo(db, log),
	}
}
