package domain

import "strings"

// CompanyProfile is printed on the payslip header. Every field is optional.
type CompanyProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	TIN     string `json:"tin"`
}

func (p CompanyProfile) Trimmed() CompanyProfile {
	return CompanyProfile{
		Name:    strings.TrimSpace(p.Name),
		Address: strings.TrimSpace(p.Address),
		TIN:     strings.TrimSpace(p.TIN),
	}
}
