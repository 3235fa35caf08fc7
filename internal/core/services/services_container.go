package services

import (
	portsrepo "github.com/railsathi/railsathi_backend/internal/core/ports/repositories"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
	"github.com/railsathi/railsathi_backend/internal/upstream"
	"github.com/railsathi/railsathi_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Search goes first; the lookup services record into it.
	container.Search = NewSearchService(repos.KVRepo)

	// Providers are tried in declaration order; RailStack is primary.
	railstack := upstream.NewRailStackClient(cfg.RailStackBaseURL, cfg.RailStackAPIKey, cfg.UpstreamTimeout)
	trainvista := upstream.NewTrainVistaClient(cfg.TrainVistaBaseURL, cfg.TrainVistaAPIKey, cfg.UpstreamTimeout)

	pnrProviders := []upstream.PNRProvider{}
	if cfg.RailStackBaseURL != "" {
		pnrProviders = append(pnrProviders, railstack)
	}
	if cfg.TrainVistaBaseURL != "" {
		pnrProviders = append(pnrProviders, trainvista)
	}

	container.PNR = NewPNRService(pnrProviders, container.Search)
	container.Journey = NewJourneyService(repos.JourneyRepo, repos.KVRepo, container.PNR)
	container.Train = NewTrainService(trainvista, container.Search)
	container.Station = NewStationService(repos.StationRepo)
	container.QnA = NewQnAService(repos.QnARepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PNRLookupSvc     = (*PNRService)(nil)
	_ portssvc.JourneySvcFacade = (*JourneyService)(nil)
	_ portssvc.QnASvcFacade     = (*QnAService)(nil)
)
