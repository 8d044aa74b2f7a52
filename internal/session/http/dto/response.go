package dto

import (
	"github.com/google/uuid"

	identityDomain "github.com/allisson/trustcore/internal/identity/domain"
)

// LoginResponse carries the session token and the authenticated principal.
// The token appears here exactly once; only its hash is persisted.
type LoginResponse struct {
	Token     string            `json:"token"`
	Principal PrincipalResponse `json:"principal"`
}

// PrincipalResponse is the decrypted principal view returned after login.
type PrincipalResponse struct {
	ID      uuid.UUID `json:"id"`
	Company string    `json:"company"`
	Name    string    `json:"name"`
	Surname string    `json:"surname"`
	Email   string    `json:"email"`
	Cargo   string    `json:"cargo"`
	Role    string    `json:"role"`
	Status  string    `json:"status"`
}

// NewPrincipalResponse builds a PrincipalResponse from a domain principal.
func NewPrincipalResponse(principal *identityDomain.Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:      principal.ID,
		Company: principal.Company,
		Name:    principal.Name,
		Surname: principal.Surname,
		Email:   principal.Email,
		Cargo:   principal.Cargo,
		Role:    principal.Role,
		Status:  principal.Status,
	}
}
