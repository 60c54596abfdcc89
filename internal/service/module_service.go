package service

import (
	"englishpath/internal/content"
	"englishpath/internal/models"
)

// CountsReader provides per-module completion tallies for a user
type CountsReader interface {
	ModuleCounts(userID int64) (map[models.ModuleKey]models.ModuleCount, error)
}

// ModuleService derives the module list shown on the learner's dashboard
type ModuleService struct {
	catalog *content.Catalog
	counts  CountsReader
}

// NewModuleService creates a new module service
func NewModuleService(catalog *content.Catalog, counts CountsReader) *ModuleService {
	return &ModuleService{catalog: catalog, counts: counts}
}

// ComputeModuleList returns every catalogue module in canonical order with
// its progress and status. It only reads a snapshot of the counts.
func (s *ModuleService) ComputeModuleList(userID int64) ([]models.ModuleDescriptor, error) {
	counts, err := s.counts.ModuleCounts(userID)
	if err != nil {
		return nil, err
	}
	return BuildModuleList(s.catalog, counts), nil
}

// BuildModuleList applies the unlock policy to a set of counts
func BuildModuleList(catalog *content.Catalog, counts map[models.ModuleKey]models.ModuleCount) []models.ModuleDescriptor {
	modules := catalog.Modules()
	list := make([]models.ModuleDescriptor, 0, len(modules))
	for _, m := range modules {
		progress := counts[m.Key].Percent()
		list = append(list, models.ModuleDescriptor{
			ID:          m.Key,
			Title:       m.Title,
			Description: m.Description,
			Progress:    progress,
			Status:      moduleStatus(m, counts[m.Key], counts),
			ImageURL:    m.ImageURL,
			Path:        m.Path,
		})
	}
	return list
}

func moduleStatus(m content.Module, count models.ModuleCount, counts map[models.ModuleKey]models.ModuleCount) models.ModuleStatus {
	if count.Total > 0 && count.Percent() == 100 {
		return models.StatusCompleted
	}
	for _, prereq := range m.Prerequisites {
		if counts[prereq].Percent() <= content.UnlockThreshold {
			return models.StatusLocked
		}
	}
	return models.StatusInProgress
}
