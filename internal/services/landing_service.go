package services

import (
	"context"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

// LandingService backs the post-login landing page: which modules to show on
// the dashboard tiles.
type LandingService interface {
	ListInstalledModules(ctx context.Context) ([]models.ModuleSummary, error)
}

// fallbackModuleLimit caps the fallback listing only; the primary
// installed-applications listing is never truncated.
const fallbackModuleLimit = 20

type landingService struct {
	modules repositories.ModuleRepository
}

func NewLandingService(modules repositories.ModuleRepository) LandingService {
	return &landingService{modules: modules}
}

// ListInstalledModules lists installed application modules. When no installed
// module is flagged as an application the tiles would be empty, so it falls
// back to showing up to fallbackModuleLimit installed modules of any kind.
func (s *landingService) ListInstalledModules(ctx context.Context) ([]models.ModuleSummary, error) {
	mods, err := s.modules.FindInstalledApplications(ctx)
	if err != nil {
		return nil, err
	}
	if len(mods) == 0 {
		mods, err = s.modules.FindInstalled(ctx, fallbackModuleLimit)
		if err != nil {
			return nil, err
		}
	}

	summaries := make([]models.ModuleSummary, 0, len(mods))
	for _, m := range mods {
		summaries = append(summaries, m.Summarize())
	}
	return summaries, nil
}
