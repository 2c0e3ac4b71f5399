package worksite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shiftledger/attendance-backend-go/internal/domain/worksite"
)

type WorkSiteServiceImpl struct {
	worksite.WorkSiteRepository
}

func toResponse(site worksite.WorkSite) worksite.WorkSiteResponse {
	return worksite.WorkSiteResponse{
		ID:           site.ID,
		Name:         site.Name,
		Address:      site.Address,
		CheckInToken: site.CheckInToken,
		Active:       site.Active,
		Description:  site.Description,
		CreatedAt:    site.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    site.UpdatedAt.Format(time.RFC3339),
	}
}

// ResolveToken implements worksite.WorkSiteService.
func (s *WorkSiteServiceImpl) ResolveToken(ctx context.Context, token string) (worksite.WorkSite, error) {
	return s.WorkSiteRepository.ResolveToken(ctx, token)
}

// List implements worksite.WorkSiteService.
func (s *WorkSiteServiceImpl) List(ctx context.Context, includeInactive bool) ([]worksite.WorkSiteResponse, error) {
	sites, err := s.WorkSiteRepository.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list work sites: %w", err)
	}

	responses := make([]worksite.WorkSiteResponse, 0, len(sites))
	for _, site := range sites {
		responses = append(responses, toResponse(site))
	}

	return responses, nil
}

// Get implements worksite.WorkSiteService.
func (s *WorkSiteServiceImpl) Get(ctx context.Context, id string) (worksite.WorkSiteResponse, error) {
	site, err := s.WorkSiteRepository.GetByID(ctx, id)
	if err != nil {
		return worksite.WorkSiteResponse{}, err
	}

	return toResponse(site), nil
}

// Create implements worksite.WorkSiteService.
func (s *WorkSiteServiceImpl) Create(ctx context.Context, req worksite.CreateWorkSiteRequest) (worksite.WorkSiteResponse, error) {
	if err := req.Validate(); err != nil {
		return worksite.WorkSiteResponse{}, err
	}

	site := worksite.WorkSite{
		Name:         req.Name,
		Address:      req.Address,
		Description:  req.Description,
		CheckInToken: uuid.NewString(),
		Active:       true,
	}

	created, err := s.WorkSiteRepository.Create(ctx, site)
	if err != nil {
		return worksite.WorkSiteResponse{}, fmt.Errorf("failed to create work site: %w", err)
	}

	return toResponse(created), nil
}

// Update implements worksite.WorkSiteService.
func (s *WorkSiteServiceImpl) Update(ctx context.Context, req worksite.UpdateWorkSiteRequest) (worksite.WorkSiteResponse, error) {
	if err := req.Validate(); err != nil {
		return worksite.WorkSiteResponse{}, err
	}

	site, err := s.WorkSiteRepository.GetByID(ctx, req.ID)
	if err != nil {
		return worksite.WorkSiteResponse{}, err
	}

	if req.Name != nil {
		site.Name = *req.Name
	}
	if req.Address != nil {
		site.Address = *req.Address
	}
	if req.Description != nil {
		site.Description = req.Description
	}

	if err := s.WorkSiteRepository.Update(ctx, site); err != nil {
		return worksite.WorkSiteResponse{}, err
	}

	if req.Active != nil && *req.Active != site.Active {
		if err := s.WorkSiteRepository.SetActive(ctx, site.ID, *req.Active); err != nil {
			return worksite.WorkSiteResponse{}, err
		}
		site.Active = *req.Active
	}

	return toResponse(site), nil
}

// Deactivate implements worksite.WorkSiteService.
func (s *WorkSiteServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.WorkSiteRepository.SetActive(ctx, id, false)
}

// RegenerateToken implements worksite.WorkSiteService.
func (s *WorkSiteServiceImpl) RegenerateToken(ctx context.Context, id string) (worksite.WorkSiteResponse, error) {
	site, err := s.WorkSiteRepository.UpdateToken(ctx, id, uuid.NewString())
	if err != nil {
		return worksite.WorkSiteResponse{}, err
	}

	return toResponse(site), nil
}

func NewWorkSiteService(repo worksite.WorkSiteRepository) worksite.WorkSiteService {
	return &WorkSiteServiceImpl{WorkSiteRepository: repo}
}
