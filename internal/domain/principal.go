package domain

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Principal is the authenticated caller. It is resolved from the JWT by the
// auth middleware and passed explicitly to every employee-scoped query.
type Principal struct {
	Username   string
	Role       string
	EmployeeID string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanSee reports whether the principal may read data owned by empID.
func (p Principal) CanSee(empID string) bool {
	if p.IsAdmin() {
		return true
	}
	return p.Role == RoleEmployee && p.EmployeeID != "" && p.EmployeeID == empID
}
