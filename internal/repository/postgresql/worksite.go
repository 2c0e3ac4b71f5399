package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftledger/attendance-backend-go/internal/domain/worksite"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/database"
)

type workSiteRepository struct {
	db *database.DB
}

// ResolveToken implements worksite.WorkSiteRepository.
func (w *workSiteRepository) ResolveToken(ctx context.Context, token string) (worksite.WorkSite, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT id, name, address, check_in_token, active, description, created_at, updated_at
		FROM work_sites
		WHERE check_in_token = $1
		  AND active = TRUE
	`

	var site worksite.WorkSite
	err := q.QueryRow(ctx, query, token).Scan(
		&site.ID, &site.Name, &site.Address, &site.CheckInToken, &site.Active,
		&site.Description, &site.CreatedAt, &site.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return worksite.WorkSite{}, worksite.ErrWorkSiteNotFound
		}
		return worksite.WorkSite{}, fmt.Errorf("failed to resolve check-in token: %w", err)
	}

	return site, nil
}

// GetByID implements worksite.WorkSiteRepository.
func (w *workSiteRepository) GetByID(ctx context.Context, id string) (worksite.WorkSite, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT id, name, address, check_in_token, active, description, created_at, updated_at
		FROM work_sites
		WHERE id = $1
	`

	var site worksite.WorkSite
	err := q.QueryRow(ctx, query, id).Scan(
		&site.ID, &site.Name, &site.Address, &site.CheckInToken, &site.Active,
		&site.Description, &site.CreatedAt, &site.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return worksite.WorkSite{}, worksite.ErrWorkSiteNotFound
		}
		return worksite.WorkSite{}, fmt.Errorf("failed to get work site: %w", err)
	}

	return site, nil
}

// List implements worksite.WorkSiteRepository.
func (w *workSiteRepository) List(ctx context.Context, includeInactive bool) ([]worksite.WorkSite, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT id, name, address, check_in_token, active, description, created_at, updated_at
		FROM work_sites
		WHERE ($1 OR active = TRUE)
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list work sites: %w", err)
	}
	defer rows.Close()

	var sites []worksite.WorkSite
	for rows.Next() {
		var site worksite.WorkSite
		if err := rows.Scan(
			&site.ID, &site.Name, &site.Address, &site.CheckInToken, &site.Active,
			&site.Description, &site.CreatedAt, &site.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work site: %w", err)
		}
		sites = append(sites, site)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work sites: %w", err)
	}

	return sites, nil
}

// Create implements worksite.WorkSiteRepository.
func (w *workSiteRepository) Create(ctx context.Context, site worksite.WorkSite) (worksite.WorkSite, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO work_sites (name, address, check_in_token, active, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		site.Name,
		site.Address,
		site.CheckInToken,
		site.Active,
		site.Description,
	).Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)

	if err != nil {
		return worksite.WorkSite{}, fmt.Errorf("failed to create work site: %w", err)
	}

	return site, nil
}

// Update implements worksite.WorkSiteRepository.
func (w *workSiteRepository) Update(ctx context.Context, site worksite.WorkSite) error {
	q := GetQuerier(ctx, w.db)

	query := `
		UPDATE work_sites
		SET name = $2, address = $3, description = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, site.ID, site.Name, site.Address, site.Description)
	if err != nil {
		return fmt.Errorf("failed to update work site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worksite.ErrWorkSiteNotFound
	}

	return nil
}

// SetActive implements worksite.WorkSiteRepository.
func (w *workSiteRepository) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, w.db)

	query := `
		UPDATE work_sites
		SET active = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("failed to set work site active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worksite.ErrWorkSiteNotFound
	}

	return nil
}

// UpdateToken implements worksite.WorkSiteRepository.
func (w *workSiteRepository) UpdateToken(ctx context.Context, id string, token string) (worksite.WorkSite, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		UPDATE work_sites
		SET check_in_token = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, address, check_in_token, active, description, created_at, updated_at
	`

	var site worksite.WorkSite
	err := q.QueryRow(ctx, query, id, token).Scan(
		&site.ID, &site.Name, &site.Address, &site.CheckInToken, &site.Active,
		&site.Description, &site.CreatedAt, &site.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return worksite.WorkSite{}, worksite.ErrWorkSiteNotFound
		}
		return worksite.WorkSite{}, fmt.Errorf("failed to rotate check-in token: %w", err)
	}

	return site, nil
}

func NewWorkSiteRepository(db *database.DB) worksite.WorkSiteRepository {
	return &workSiteRepository{db: db}
}
