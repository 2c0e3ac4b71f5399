package worksite

import (
	"context"
)

// WorkSiteService defines business logic for work-site administration.
type WorkSiteService interface {
	// ResolveToken maps a check-in token to an active work site.
	ResolveToken(ctx context.Context, token string) (WorkSite, error)

	List(ctx context.Context, includeInactive bool) ([]WorkSiteResponse, error)

	Get(ctx context.Context, id string) (WorkSiteResponse, error)

	Create(ctx context.Context, req CreateWorkSiteRequest) (WorkSiteResponse, error)

	Update(ctx context.Context, req UpdateWorkSiteRequest) (WorkSiteResponse, error)

	// Deactivate takes a site out of rotation; its token stops resolving.
	Deactivate(ctx context.Context, id string) error

	// RegenerateToken replaces the site's check-in token with a fresh one,
	// invalidating any previously distributed QR codes.
	RegenerateToken(ctx context.Context, id string) (WorkSiteResponse, error)
}
