package domain

const (
	RouteLogin          = "/login"
	RouteAdminDashboard = "/admin/dashboard"
	RouteUserDashboard  = "/user/dashboard"

	// Legacy dashboard aliases still targeted by guard redirects.
	RouteAdminDashboardAlias = "/app-admin-dashboard"
	RouteUserDashboardAlias  = "/app-user-dashboard"
)

// IsDefaultDashboard reports whether path is one of the landing routes that
// must never be remembered as an intended destination.
func IsDefaultDashboard(path string) bool {
	switch path {
	case RouteAdminDashboard, RouteUserDashboard,
		RouteAdminDashboardAlias, RouteUserDashboardAlias:
		return true
	}
	return false
}
