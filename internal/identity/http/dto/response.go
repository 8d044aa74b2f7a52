package dto

import (
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/trustcore/internal/identity/domain"
)

// PrincipalResponse is the API view of a principal with PII decrypted.
// The password hash never leaves the server.
type PrincipalResponse struct {
	ID        uuid.UUID `json:"id"`
	Company   string    `json:"company"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Cargo     string    `json:"cargo"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPrincipalResponse builds a PrincipalResponse from a domain principal.
func NewPrincipalResponse(principal *identityDomain.Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:        principal.ID,
		Company:   principal.Company,
		Name:      principal.Name,
		Surname:   principal.Surname,
		Email:     principal.Email,
		Cargo:     principal.Cargo,
		Role:      principal.Role,
		Status:    principal.Status,
		CreatedAt: principal.CreatedAt,
		UpdatedAt: principal.UpdatedAt,
	}
}

// ListPrincipalsResponse wraps a page of principals.
type ListPrincipalsResponse struct {
	Principals []PrincipalResponse `json:"principals"`
	Offset     int                 `json:"offset"`
	Limit      int                 `json:"limit"`
}

// MapPrincipalsToListResponse converts domain principals to the list response.
func MapPrincipalsToListResponse(
	principals []*identityDomain.Principal,
	offset, limit int,
) ListPrincipalsResponse {
	mapped := make([]PrincipalResponse, 0, len(principals))
	for _, principal := range principals {
		mapped = append(mapped, NewPrincipalResponse(principal))
	}

	return ListPrincipalsResponse{
		Principals: mapped,
		Offset:     offset,
		Limit:      limit,
	}
}
