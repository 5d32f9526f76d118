package service

import (
	"context"

	"facilityassist/internal/model"
	"facilityassist/internal/repository"
)

// UnitService defines the read-only use cases around units.
type UnitService interface {
	// List returns all units ordered by name.
	List(ctx context.Context) ([]model.Unit, error)
}

type unitService struct {
	repo repository.UnitRepository
}

// NewUnitService constructs a new UnitService.
func NewUnitService(repo repository.UnitRepository) UnitService {
	return &unitService{repo: repo}
}

func (s *unitService) List(ctx context.Context) ([]model.Unit, error) {
	return s.repo.List(ctx)
}
