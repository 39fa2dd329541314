package company

import "time"

type CompanyResponse struct {
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	TIN       string     `json:"tin"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// UpdateCompanyRequest leaves nil fields unchanged; an empty string clears one.
type UpdateCompanyRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=150"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	TIN     *string `json:"tin" binding:"omitempty,max=32"`
}
