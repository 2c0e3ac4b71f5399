package worksite

import (
	"github.com/shiftledger/attendance-backend-go/internal/pkg/validator"
)

type CreateWorkSiteRequest struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateWorkSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must be at most 100 characters",
		})
	}
	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateWorkSiteRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

func (r *UpdateWorkSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Name != nil && len(*r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must be at most 100 characters",
		})
	}
	if r.Address != nil && validator.IsEmpty(*r.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkSiteResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	CheckInToken string  `json:"check_in_token"`
	Active       bool    `json:"active"`
	Description  *string `json:"description,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
