package worksite

import "context"

type WorkSiteRepository interface {
	// ResolveToken returns the site matching a check-in token, active sites
	// only. Unknown and inactive tokens both yield ErrWorkSiteNotFound.
	ResolveToken(ctx context.Context, token string) (WorkSite, error)

	GetByID(ctx context.Context, id string) (WorkSite, error)
	List(ctx context.Context, includeInactive bool) ([]WorkSite, error)
	Create(ctx context.Context, site WorkSite) (WorkSite, error)
	Update(ctx context.Context, site WorkSite) error
	SetActive(ctx context.Context, id string, active bool) error
	UpdateToken(ctx context.Context, id string, token string) (WorkSite, error)
}
