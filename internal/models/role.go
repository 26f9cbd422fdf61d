package models

import (
	"fmt"

	"github.com/propdash/portfolio-service/internal/utils"
)

type Role string

const (
	RoleExecutive    Role = "executive"
	RoleAssetManager Role = "asset-manager"
	RoleFinance      Role = "finance"
	RoleEmployee     Role = "employee"
)

// AllRoles in display order.
var AllRoles = []Role{RoleExecutive, RoleAssetManager, RoleFinance, RoleEmployee}

type View string

const (
	ViewDashboard  View = "dashboard"
	ViewProperties View = "properties"
	ViewTenants    View = "tenants"
	ViewMap        View = "map"
	ViewFinancial  View = "financial"
)

// ParseRole converts the wire form ("asset-manager", ...) to a Role.
func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", utils.ErrUnknownRole, s)
}

func (r Role) Label() string {
	switch r {
	case RoleExecutive:
		return "Executive View"
	case RoleAssetManager:
		return "Asset Manager View"
	case RoleFinance:
		return "Finance View"
	case RoleEmployee:
		return "Employee View"
	default:
		return "Unknown View"
	}
}

// HasFinancialAccess reports whether the role may see financial data.
func (r Role) HasFinancialAccess() bool {
	return r == RoleExecutive || r == RoleFinance
}

// AvailableViews lists the dashboard views a role may navigate to.
func (r Role) AvailableViews() []View {
	switch r {
	case RoleExecutive, RoleAssetManager:
		return []View{ViewDashboard, ViewProperties, ViewTenants, ViewMap, ViewFinancial}
	case RoleFinance:
		return []View{ViewDashboard, ViewProperties, ViewFinancial}
	case RoleEmployee:
		return []View{ViewMap}
	default:
		return []View{ViewDashboard}
	}
}
