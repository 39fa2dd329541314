package rbac

import (
	"go-payroll/internal/domain"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Resources guarded by RBACAuthorize.
const (
	ResourceEmployee = "employee"
	ResourcePayroll  = "payroll"
	ResourcePayslip  = "payslip"
	ResourceUser     = "user"
	ResourceCompany  = "company"
	ResourceBulk     = "bulk"
)

const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"
)

type policy struct {
	Role     string
	Resource string
	Action   string
}

// Admin may do everything. Employees read, and the payroll service narrows
// their reads to their own rows.
var defaultPolicies = []policy{
	{domain.RoleAdmin, "*", "*"},
	{domain.RoleEmployee, ResourcePayroll, ActionRead},
	{domain.RoleEmployee, ResourcePayslip, ActionRead},
	{domain.RoleEmployee, ResourceCompany, ActionRead},
}
