package app

import (
	"github.com/vettia/assessment-backend/internal/handlers"
	"github.com/vettia/assessment-backend/internal/platform/logger"
)

type Handlers struct {
	Resolution *handlers.ResolutionHandler
	TraitGroup *handlers.TraitGroupHandler
	Candidate  *handlers.CandidateHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Resolution: handlers.NewResolutionHandler(log, services.Resolution),
		TraitGroup: handlers.NewTraitGroupHandler(log, services.TraitConfig),
		Candidate:  handlers.NewCandidateHandler(log, services.Candidate),
	}
}
